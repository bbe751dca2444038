package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/sqlpractice/internal/hints"
	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/store"
)

var (
	// ErrSessionNotFound is returned for an unknown session ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrRegistryFull is returned by Create once the live-session cap is hit.
	ErrRegistryFull = errors.New("live session limit reached")
)

// Registry holds the live sessions of the HTTP shell. Every session owns
// its own engine and state; the registry only maps IDs to them.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	pending  int // slots reserved by Create calls still opening an engine

	events store.EventRepo
	hints  *hints.Service
	max    int
}

// NewRegistry creates a Registry. events and hintSvc may be nil. max caps
// the number of live sessions; zero means unlimited.
func NewRegistry(events store.EventRepo, hintSvc *hints.Service, max int) *Registry {
	return &Registry{
		sessions: make(map[string]*session.Session),
		events:   events,
		hints:    hintSvc,
		max:      max,
	}
}

// Create starts a new session. The slot is reserved before the engine is
// opened so concurrent callers can never exceed max.
func (r *Registry) Create(ctx context.Context) (*session.Session, error) {
	r.mu.Lock()
	if r.max > 0 && len(r.sessions)+r.pending >= r.max {
		r.mu.Unlock()
		return nil, fmt.Errorf("create session: %w (%d)", ErrRegistryFull, r.max)
	}
	r.pending++
	r.mu.Unlock()

	s, err := session.New(ctx, session.Options{Events: r.events, Hints: r.hints})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending--
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	r.sessions[s.ID()] = s
	return s, nil
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Remove closes and forgets a session.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.Close(ctx)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll closes every session.
func (r *Registry) CloseAll(ctx context.Context) {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*session.Session)
	r.mu.Unlock()

	for _, s := range sessions {
		_ = s.Close(ctx)
	}
}
