package repository

import (
	"context"
	"sync"

	"github.com/allisson/soulbound/internal/events/domain"
)

// MemoryEventRepository keeps outbox events in memory, in insertion order.
//
// The outbox only grows, so transactions are rolled back from an undo log rather than a copy
// of every event: rows appended since Snapshot are truncated and overwritten rows are put back.
type MemoryEventRepository struct {
	mu      sync.RWMutex
	events  []domain.Event
	undo    []undoEntry
	logging bool
}

type undoEntry struct {
	index int
	prev  domain.Event
}

// NewMemoryEventRepository creates a new MemoryEventRepository.
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{}
}

// Create appends a new outbox event.
func (r *MemoryEventRepository) Create(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

// GetPending returns up to limit pending events, oldest first.
func (r *MemoryEventRepository) GetPending(_ context.Context, limit int) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Event, 0)
	for i := range r.events {
		if len(result) >= limit {
			break
		}
		if r.events[i].Status == domain.StatusPending {
			event := r.events[i]
			result = append(result, &event)
		}
	}
	return result, nil
}

// List returns events newest first.
func (r *MemoryEventRepository) List(_ context.Context, offset, limit int) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Event, 0)
	for i := len(r.events) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		event := r.events[i]
		result = append(result, &event)
	}
	return result, nil
}

// Update persists the delivery state of an event.
func (r *MemoryEventRepository) Update(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID == event.ID {
			if r.logging {
				r.undo = append(r.undo, undoEntry{index: i, prev: r.events[i]})
			}
			r.events[i].Status = event.Status
			r.events[i].Retries = event.Retries
			r.events[i].LastError = event.LastError
			r.events[i].ProcessedAt = event.ProcessedAt
			r.events[i].UpdatedAt = event.UpdatedAt
			return nil
		}
	}
	return nil
}

// Snapshot implements database.Snapshotter. It starts an undo log and returns the rollback.
func (r *MemoryEventRepository) Snapshot() func() {
	r.mu.Lock()
	base := len(r.events)
	r.undo = r.undo[:0]
	r.logging = true
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		for i := len(r.undo) - 1; i >= 0; i-- {
			if entry := r.undo[i]; entry.index < base {
				r.events[entry.index] = entry.prev
			}
		}
		if base < len(r.events) {
			r.events = r.events[:base]
		}
		r.reset()
	}
}

// Commit implements database.Committer.
func (r *MemoryEventRepository) Commit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
}

func (r *MemoryEventRepository) reset() {
	r.undo = nil
	r.logging = false
}
