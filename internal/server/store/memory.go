package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/postguard/internal/common"
	"github.com/dmitrijs2005/postguard/internal/server/models"
)

// MemoryStore keeps accounts in a map. It never shares memory with callers.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*models.Account)}
}

func (s *MemoryStore) Create(_ context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[a.Email]; ok {
		return common.ErrorAlreadyExists
	}
	s.accounts[a.Email] = a.Clone()
	return nil
}

func (s *MemoryStore) Find(_ context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[a.Email] = a.Clone()
	return nil
}
