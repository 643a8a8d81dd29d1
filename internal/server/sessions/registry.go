// Package sessions tracks the live sessions of logged-in accounts.
//
// Every account has at most one live session. Work on a session runs under
// a per-email mutex so operations on one account are serialised while
// different accounts proceed in parallel.
package sessions

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/postguard/internal/common"
	"github.com/dmitrijs2005/postguard/internal/server/models"
)

type Registry struct {
	mu      sync.Mutex
	byID    map[string]*models.Session
	byEmail map[string]string
	locks   map[string]*sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]*models.Session),
		byEmail: make(map[string]string),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Lock acquires the per-account lock for email and returns its release func.
func (r *Registry) Lock(email string) (unlock func()) {
	r.mu.Lock()
	l, ok := r.locks[email]
	if !ok {
		l = &sync.Mutex{}
		r.locks[email] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Put installs s as the live session of its account and returns the session
// it replaced, if any. The caller must hold Lock(s.Email).
func (r *Registry) Put(s *models.Session) *models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var prev *models.Session
	if id, ok := r.byEmail[s.Email]; ok {
		prev = r.byID[id]
		delete(r.byID, id)
	}
	r.byID[s.ID] = s
	r.byEmail[s.Email] = s.ID
	return prev
}

// Remove discards the session with the given id. The caller must hold the
// account lock.
func (r *Registry) Remove(id string) (*models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	if r.byEmail[s.Email] == id {
		delete(r.byEmail, s.Email)
	}
	return s, true
}

// Get returns a copy of the live session. It does not take the account
// lock; use Do for a copy consistent with in-flight work.
func (r *Registry) Get(id string) (*models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Do runs fn against the live session with the account lock held. fn may
// mutate the session. It returns common.ErrNoSession if id is not live, or
// stops being live while the lock is acquired.
func (r *Registry) Do(id string, fn func(s *models.Session) error) error {
	r.mu.Lock()
	s, ok := r.byID[id]
	r.mu.Unlock()
	if !ok {
		return common.ErrNoSession
	}

	unlock := r.Lock(s.Email)
	defer unlock()

	r.mu.Lock()
	live, ok := r.byID[id]
	r.mu.Unlock()
	if !ok || live != s {
		return common.ErrNoSession
	}

	return fn(s)
}

// Lookup returns the live session of email, if any. The caller must hold
// Lock(email).
func (r *Registry) Lookup(email string) (*models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, false
	}
	return r.byID[id], true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ExtendToken records exp as the expiry of the newest token issued for id.
// The caller must hold the account lock.
func (r *Registry) ExtendToken(id string, exp time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byID[id]; ok {
		s.TokenExpiresAt = exp
	}
}

// ExpiredBefore lists the ids of sessions whose newest token expired
// before t.
func (r *Registry) ExpiredBefore(t time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for id, s := range r.byID {
		if s.TokenExpiresAt.Before(t) {
			ids = append(ids, id)
		}
	}
	return ids
}

// IDs lists every live session id.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	return ids
}
