package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/postguard/internal/common"
	"github.com/dmitrijs2005/postguard/internal/cryptox"
	"github.com/dmitrijs2005/postguard/internal/logging"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/dmitrijs2005/postguard/internal/server/store"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	minAge = 1
	maxAge = 100
)

type AccountService struct {
	store  store.AccountStore
	clock  clockwork.Clock
	logger logging.Logger
}

func NewAccountService(st store.AccountStore, clock clockwork.Clock, l logging.Logger) *AccountService {
	return &AccountService{store: st, clock: clock, logger: l.With("module", "accounts")}
}

// Register creates an account with zero counters, empty history and no
// lockout. Checks run in order: credential confirmation, age range, email,
// uniqueness.
func (s *AccountService) Register(ctx context.Context, email, password, confirm string, age int) (*models.Account, error) {
	if password != confirm {
		return nil, common.ErrCredentialMismatch
	}

	if age < minAge || age > maxAge {
		return nil, common.ErrInvalidAge
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, common.ErrInvalidEmail
	}

	cred := cryptox.HashPassword([]byte(password))
	acc := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordSalt: cred.Salt,
		PasswordHash: cred.Hash,
		Age:          age,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.store.Create(ctx, acc); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info(ctx, "account registered", "email", email)
	return acc, nil
}

// Find returns the stored account for email or common.ErrorNotFound.
func (s *AccountService) Find(ctx context.Context, email string) (*models.Account, error) {
	return s.store.Find(ctx, email)
}
