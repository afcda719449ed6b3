package repository

import (
	"context"
	"sort"
	"sync"

	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
)

// MemorySessionRepository keeps sessions in memory.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]sessionDomain.Session
}

// NewMemorySessionRepository creates a new MemorySessionRepository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]sessionDomain.Session)}
}

// Create stores a new session.
func (r *MemorySessionRepository) Create(_ context.Context, session *sessionDomain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; ok {
		return sessionDomain.ErrSessionIDCollision
	}
	r.sessions[session.ID] = *session
	return nil
}

// Update replaces an existing session.
func (r *MemorySessionRepository) Update(_ context.Context, session *sessionDomain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return sessionDomain.ErrSessionNotFound
	}
	r.sessions[session.ID] = *session
	return nil
}

// Get returns a session by id.
func (r *MemorySessionRepository) Get(_ context.Context, id string) (*sessionDomain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, sessionDomain.ErrSessionNotFound
	}
	return &session, nil
}

// GetForUpdate returns a session by id. Exclusivity comes from the MemoryTxManager.
func (r *MemorySessionRepository) GetForUpdate(ctx context.Context, id string) (*sessionDomain.Session, error) {
	return r.Get(ctx, id)
}

// ListByTemplate returns the sessions of a template, oldest first.
func (r *MemorySessionRepository) ListByTemplate(
	_ context.Context,
	templateID int64,
	offset, limit int,
) ([]*sessionDomain.Session, error) {
	r.mu.RLock()
	matched := make([]*sessionDomain.Session, 0)
	for _, session := range r.sessions {
		if session.TemplateID == templateID {
			session := session
			matched = append(matched, &session)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	result := make([]*sessionDomain.Session, 0)
	for i := offset; i < len(matched) && len(result) < limit; i++ {
		result = append(result, matched[i])
	}
	return result, nil
}

// Snapshot implements database.Snapshotter.
func (r *MemorySessionRepository) Snapshot() func() {
	r.mu.RLock()
	saved := make(map[string]sessionDomain.Session, len(r.sessions))
	for k, v := range r.sessions {
		saved[k] = v
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.sessions = saved
	}
}
