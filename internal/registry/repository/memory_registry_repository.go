package repository

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/allisson/soulbound/internal/errors"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
)

// MemoryIssuerRepository keeps issuers in memory.
type MemoryIssuerRepository struct {
	mu      sync.RWMutex
	issuers map[string]registryDomain.Issuer
}

// NewMemoryIssuerRepository creates a new MemoryIssuerRepository.
func NewMemoryIssuerRepository() *MemoryIssuerRepository {
	return &MemoryIssuerRepository{issuers: make(map[string]registryDomain.Issuer)}
}

// Create stores a new issuer.
func (r *MemoryIssuerRepository) Create(_ context.Context, issuer *registryDomain.Issuer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issuers[issuer.Address]; ok {
		return apperrors.Wrap(apperrors.ErrConflict, "issuer already exists")
	}
	r.issuers[issuer.Address] = *issuer
	return nil
}

// Update replaces an existing issuer.
func (r *MemoryIssuerRepository) Update(_ context.Context, issuer *registryDomain.Issuer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issuers[issuer.Address]; !ok {
		return registryDomain.ErrIssuerNotFound
	}
	r.issuers[issuer.Address] = *issuer
	return nil
}

// Get returns an issuer by address.
func (r *MemoryIssuerRepository) Get(_ context.Context, address string) (*registryDomain.Issuer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	issuer, ok := r.issuers[address]
	if !ok {
		return nil, registryDomain.ErrIssuerNotFound
	}
	return &issuer, nil
}

// List returns authorized issuers ordered by creation time.
func (r *MemoryIssuerRepository) List(_ context.Context, offset, limit int) ([]*registryDomain.Issuer, error) {
	authorized := r.authorized()
	result := make([]*registryDomain.Issuer, 0)
	for i := offset; i < len(authorized) && len(result) < limit; i++ {
		result = append(result, authorized[i])
	}
	return result, nil
}

// Count returns the number of authorized issuers.
func (r *MemoryIssuerRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.authorized())), nil
}

func (r *MemoryIssuerRepository) authorized() []*registryDomain.Issuer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*registryDomain.Issuer, 0, len(r.issuers))
	for _, issuer := range r.issuers {
		if issuer.Authorized {
			issuer := issuer
			result = append(result, &issuer)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Address < result[j].Address
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Snapshot implements database.Snapshotter.
func (r *MemoryIssuerRepository) Snapshot() func() {
	r.mu.RLock()
	saved := make(map[string]registryDomain.Issuer, len(r.issuers))
	for k, v := range r.issuers {
		saved[k] = v
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.issuers = saved
	}
}

// MemoryStateRepository keeps the registry state in memory.
type MemoryStateRepository struct {
	mu    sync.RWMutex
	state *registryDomain.State
}

// NewMemoryStateRepository creates a new MemoryStateRepository.
func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{}
}

// Get returns the registry state.
func (r *MemoryStateRepository) Get(_ context.Context) (*registryDomain.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state == nil {
		return nil, registryDomain.ErrRegistryNotInitialized
	}
	state := *r.state
	return &state, nil
}

// GetForUpdate returns the registry state. Exclusivity comes from the MemoryTxManager.
func (r *MemoryStateRepository) GetForUpdate(ctx context.Context) (*registryDomain.State, error) {
	return r.Get(ctx)
}

// Create stores the registry state.
func (r *MemoryStateRepository) Create(_ context.Context, state *registryDomain.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != nil {
		return apperrors.Wrap(apperrors.ErrConflict, "registry state already exists")
	}
	s := *state
	r.state = &s
	return nil
}

// Update replaces the registry state.
func (r *MemoryStateRepository) Update(_ context.Context, state *registryDomain.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return registryDomain.ErrRegistryNotInitialized
	}
	s := *state
	r.state = &s
	return nil
}

// Snapshot implements database.Snapshotter.
func (r *MemoryStateRepository) Snapshot() func() {
	r.mu.RLock()
	var saved *registryDomain.State
	if r.state != nil {
		s := *r.state
		saved = &s
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.state = saved
	}
}
