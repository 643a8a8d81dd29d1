package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postguard/internal/client/client"
	"github.com/dmitrijs2005/postguard/internal/common"
	pb "github.com/dmitrijs2005/postguard/internal/proto"
)

const timeLayout = "2006-01-02 15:04:05"

var errorMessages = []struct {
	err error
	msg string
}{
	{common.ErrCredentialMismatch, "Passwords do not match"},
	{common.ErrDuplicateEmail, "This email is already registered"},
	{common.ErrInvalidAge, "Age must be between 1 and 100"},
	{errAgeNotNumber, "Age must be a number"},
	{common.ErrInvalidEmail, "Please enter an email"},
	{common.ErrInvalidCredentials, "Invalid email or password"},
	{common.ErrEmptyPost, "Post text is empty"},
	{common.ErrTokenExpired, "Your session has expired. Please log in again."},
	{common.ErrNoSession, "Your session has ended. Please log in again."},
	{common.ErrInvalidToken, "Your session has ended. Please log in again."},
	{common.ErrClassificationUnavailable, "The moderation service is unavailable right now. Please try again later."},
	{common.ErrExportDisabled, "History export is not enabled on this server."},
	{client.ErrNotLoggedIn, "Please log in first."},
	{client.ErrUnavailable, "Server unavailable."},
}

func describeError(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return fmt.Sprintf("Error: %s", err)
}

func lockedOutMessage(until time.Time) string {
	return fmt.Sprintf("You are temporarily locked out due to posting too many negative posts. Please try again after %s.",
		until.Format(timeLayout))
}

// submitMessages renders a moderation result as the lines shown to the user.
func submitMessages(res *pb.SubmitResponse) []string {
	switch res.Outcome {
	case pb.OutcomeRejectedLockedOut:
		if res.LockoutUntil != nil {
			return []string{lockedOutMessage(*res.LockoutUntil)}
		}
		return []string{"You are temporarily locked out from posting."}
	case pb.OutcomeRejectedAgeRestricted:
		return []string{"As you are under 18, you can only post positive posts."}
	case pb.OutcomeRejectedIrrelevantNegative:
		return []string{"Negative and irrelevant posts cannot be posted."}
	case pb.OutcomeRejectedClassificationUnavailable:
		return []string{describeError(common.ErrClassificationUnavailable)}
	case pb.OutcomeAccepted:
	default:
		return []string{fmt.Sprintf("Unexpected result: %s", res.Outcome)}
	}

	lines := []string{"Post published successfully."}
	if res.Sentiment == "Negative" {
		lines = append(lines, "Your post is negative.")
	} else {
		lines = append(lines, "Your post is positive.")
	}

	switch res.Signal {
	case pb.SignalLockoutWarning:
		lines = append(lines, fmt.Sprintf(
			"You have posted %d negative posts. One more negative post will restrict you from posting.",
			res.Session.NegativeCount))
	case pb.SignalLockoutActivated:
		if res.LockoutUntil != nil {
			lines = append(lines, fmt.Sprintf(
				"You have posted too many negative posts. You are now restricted from posting until %s.",
				res.LockoutUntil.Format(timeLayout)))
		}
	}
	return lines
}
