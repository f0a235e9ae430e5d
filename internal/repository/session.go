package repository

import (
	"context"
	"sync"
	"time"

	"github.com/agentconnect/profiles-server-go/internal/model"
)

type SessionRepository interface {
	Save(ctx context.Context, session *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// Delete reports whether a session with the given id existed.
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteExpired removes every session whose expiry is at or before now
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

type sessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *sessionRepo) Save(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions[copied.ID] = &copied
	return nil
}

func (r *sessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false, nil
	}
	delete(r.sessions, id)
	return true, nil
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, session := range r.sessions {
		if !session.ExpiresAt.After(now) {
			delete(r.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *sessionRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}
