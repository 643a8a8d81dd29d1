package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/postguard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errAgeNotNumber = errors.New("age is not a number")

// Register prompts for email, password twice and age, then creates the
// account. The account is not logged in afterwards.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	ageText, err := getSimpleText(a.reader, "Enter age", a.out)
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		return a.fail(errAgeNotNumber)
	}

	if err := a.client.Register(ctx, email, string(password), string(confirm), age); err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, "Registration successful! Please log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return a.fail(err)
	}

	a.email = sess.Email
	fmt.Fprintln(a.out, "Login successful!")
	if sess.LockoutUntil != nil && sess.LockoutUntil.After(a.clock.Now()) {
		fmt.Fprintln(a.out, lockedOutMessage(*sess.LockoutUntil))
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.email = ""
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, "Logged out successfully!")
	return nil
}
