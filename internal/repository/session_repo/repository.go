package session_repo

import (
	"context"
	"sync"
	"time"

	"tosipeli/internal/model"
	"tosipeli/internal/repository"
)

const (
	// defaultIdleTTL sessions untouched for this long are forgotten
	defaultIdleTTL = 12 * time.Hour
	// purgeInterval how often expired sessions are swept
	purgeInterval = time.Minute
)

type entry struct {
	playCount     int
	authenticated bool
	touchedAt     time.Time
}

// repo keeps play sessions in memory only; a restart or an expired
// session starts from zero, like a fresh browser session
type repo struct {
	mtx       sync.RWMutex
	sessions  map[string]*entry
	idleTTL   time.Duration
	lastPurge time.Time
	now       func() time.Time
}

func NewSessionRepository() repository.PlaySessionRepository {
	return newRepository(defaultIdleTTL, time.Now)
}

func newRepository(idleTTL time.Duration, now func() time.Time) *repo {
	return &repo{
		sessions:  make(map[string]*entry),
		idleTTL:   idleTTL,
		lastPurge: now(),
		now:       now,
	}
}

// Get returns the zero state for unknown or expired sessions.
// LastPreferences is not tracked here.
func (r *repo) Get(_ context.Context, sessionID string) (model.PlaySessionState, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	e, ok := r.sessions[sessionID]
	if !ok || r.expired(e) {
		return model.PlaySessionState{}, nil
	}

	return model.PlaySessionState{
		PlayCount:     e.playCount,
		Authenticated: e.authenticated,
	}, nil
}

// IncrementPlayCount returns the new play count
func (r *repo) IncrementPlayCount(_ context.Context, sessionID string) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e := r.touch(sessionID)
	e.playCount++
	return e.playCount, nil
}

func (r *repo) SetAuthenticated(_ context.Context, sessionID string, authenticated bool) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e := r.touch(sessionID)
	e.authenticated = authenticated
	return nil
}

// touch must be called with the write lock held
func (r *repo) touch(sessionID string) *entry {
	now := r.now()
	if now.Sub(r.lastPurge) >= purgeInterval {
		for id, e := range r.sessions {
			if r.expired(e) {
				delete(r.sessions, id)
			}
		}
		r.lastPurge = now
	}

	e, ok := r.sessions[sessionID]
	if !ok || r.expired(e) {
		e = &entry{}
		r.sessions[sessionID] = e
	}
	e.touchedAt = now
	return e
}

func (r *repo) expired(e *entry) bool {
	return r.now().Sub(e.touchedAt) > r.idleTTL
}

func (r *repo) len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.sessions)
}
