package repository

import (
	"context"
	"sort"
	"sync"

	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
)

// MemoryTokenRepository keeps tokens in memory.
type MemoryTokenRepository struct {
	mu     sync.RWMutex
	tokens map[int64]ledgerDomain.Token
}

// NewMemoryTokenRepository creates a new MemoryTokenRepository.
func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{tokens: make(map[int64]ledgerDomain.Token)}
}

// Create stores a new token.
func (r *MemoryTokenRepository) Create(_ context.Context, token *ledgerDomain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.ID] = *token
	return nil
}

// Update replaces an existing token.
func (r *MemoryTokenRepository) Update(_ context.Context, token *ledgerDomain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token.ID]; !ok {
		return ledgerDomain.ErrTokenNotFound
	}
	r.tokens[token.ID] = *token
	return nil
}

// Get returns a token by id.
func (r *MemoryTokenRepository) Get(_ context.Context, id int64) (*ledgerDomain.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokens[id]
	if !ok {
		return nil, ledgerDomain.ErrTokenNotFound
	}
	return &token, nil
}

// GetForUpdate returns a token by id. Exclusivity comes from the MemoryTxManager.
func (r *MemoryTokenRepository) GetForUpdate(ctx context.Context, id int64) (*ledgerDomain.Token, error) {
	return r.Get(ctx, id)
}

// ListByOwner returns the tokens of owner in id order, revoked ones included.
func (r *MemoryTokenRepository) ListByOwner(
	_ context.Context,
	owner string,
	offset, limit int,
) ([]*ledgerDomain.Token, error) {
	r.mu.RLock()
	owned := make([]*ledgerDomain.Token, 0)
	for _, token := range r.tokens {
		if token.Owner == owner {
			token := token
			owned = append(owned, &token)
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	result := make([]*ledgerDomain.Token, 0)
	for i := offset; i < len(owned) && len(result) < limit; i++ {
		result = append(result, owned[i])
	}
	return result, nil
}

// CountActiveByOwner counts the non-revoked tokens of owner.
func (r *MemoryTokenRepository) CountActiveByOwner(_ context.Context, owner string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, token := range r.tokens {
		if token.Owner == owner && !token.IsRevoked() {
			count++
		}
	}
	return count, nil
}

// Snapshot implements database.Snapshotter.
func (r *MemoryTokenRepository) Snapshot() func() {
	r.mu.RLock()
	saved := make(map[int64]ledgerDomain.Token, len(r.tokens))
	for k, v := range r.tokens {
		saved[k] = v
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.tokens = saved
	}
}

type templateClaimKey struct {
	owner      string
	templateID int64
}

type sessionClaimKey struct {
	owner     string
	sessionID string
}

// MemoryClaimRepository keeps claim markers in memory.
type MemoryClaimRepository struct {
	mu             sync.RWMutex
	templateClaims map[templateClaimKey]int64
	sessionClaims  map[sessionClaimKey]int64
}

// NewMemoryClaimRepository creates a new MemoryClaimRepository.
func NewMemoryClaimRepository() *MemoryClaimRepository {
	return &MemoryClaimRepository{
		templateClaims: make(map[templateClaimKey]int64),
		sessionClaims:  make(map[sessionClaimKey]int64),
	}
}

// CreateTemplateClaim stores an (owner, template) marker.
func (r *MemoryClaimRepository) CreateTemplateClaim(_ context.Context, claim *ledgerDomain.TemplateClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := templateClaimKey{owner: claim.Owner, templateID: claim.TemplateID}
	if _, ok := r.templateClaims[key]; ok {
		return ledgerDomain.ErrAlreadyClaimedTemplate
	}
	r.templateClaims[key] = claim.TokenID
	return nil
}

// CreateSessionClaim stores an (owner, session) marker.
func (r *MemoryClaimRepository) CreateSessionClaim(_ context.Context, claim *ledgerDomain.SessionClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionClaimKey{owner: claim.Owner, sessionID: claim.SessionID}
	if _, ok := r.sessionClaims[key]; ok {
		return ledgerDomain.ErrAlreadyClaimedSession
	}
	r.sessionClaims[key] = claim.TokenID
	return nil
}

// DeleteTemplateClaim removes an (owner, template) marker.
func (r *MemoryClaimRepository) DeleteTemplateClaim(_ context.Context, owner string, templateID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.templateClaims, templateClaimKey{owner: owner, templateID: templateID})
	return nil
}

// DeleteSessionClaim removes an (owner, session) marker.
func (r *MemoryClaimRepository) DeleteSessionClaim(_ context.Context, owner string, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessionClaims, sessionClaimKey{owner: owner, sessionID: sessionID})
	return nil
}

// HasTemplateClaim reports whether an (owner, template) marker exists.
func (r *MemoryClaimRepository) HasTemplateClaim(_ context.Context, owner string, templateID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templateClaims[templateClaimKey{owner: owner, templateID: templateID}]
	return ok, nil
}

// HasSessionClaim reports whether an (owner, session) marker exists.
func (r *MemoryClaimRepository) HasSessionClaim(_ context.Context, owner string, sessionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessionClaims[sessionClaimKey{owner: owner, sessionID: sessionID}]
	return ok, nil
}

// Snapshot implements database.Snapshotter.
func (r *MemoryClaimRepository) Snapshot() func() {
	r.mu.RLock()
	templateClaims := make(map[templateClaimKey]int64, len(r.templateClaims))
	for k, v := range r.templateClaims {
		templateClaims[k] = v
	}
	sessionClaims := make(map[sessionClaimKey]int64, len(r.sessionClaims))
	for k, v := range r.sessionClaims {
		sessionClaims[k] = v
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.templateClaims = templateClaims
		r.sessionClaims = sessionClaims
	}
}
