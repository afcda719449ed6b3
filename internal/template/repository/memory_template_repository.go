package repository

import (
	"context"
	"sort"
	"sync"

	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

// MemoryTemplateRepository keeps templates in memory.
type MemoryTemplateRepository struct {
	mu        sync.RWMutex
	templates map[int64]templateDomain.Template
}

// NewMemoryTemplateRepository creates a new MemoryTemplateRepository.
func NewMemoryTemplateRepository() *MemoryTemplateRepository {
	return &MemoryTemplateRepository{templates: make(map[int64]templateDomain.Template)}
}

// Create stores a new template.
func (r *MemoryTemplateRepository) Create(_ context.Context, template *templateDomain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[template.ID] = *template
	return nil
}

// Update replaces an existing template.
func (r *MemoryTemplateRepository) Update(_ context.Context, template *templateDomain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[template.ID]; !ok {
		return templateDomain.ErrTemplateNotFound
	}
	r.templates[template.ID] = *template
	return nil
}

// Get returns a template by id.
func (r *MemoryTemplateRepository) Get(_ context.Context, id int64) (*templateDomain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	template, ok := r.templates[id]
	if !ok {
		return nil, templateDomain.ErrTemplateNotFound
	}
	return &template, nil
}

// GetForUpdate returns a template by id. Exclusivity comes from the MemoryTxManager.
func (r *MemoryTemplateRepository) GetForUpdate(ctx context.Context, id int64) (*templateDomain.Template, error) {
	return r.Get(ctx, id)
}

// ListByIssuer returns the templates owned by issuer in id order.
func (r *MemoryTemplateRepository) ListByIssuer(
	_ context.Context,
	issuer string,
	offset, limit int,
) ([]*templateDomain.Template, error) {
	r.mu.RLock()
	owned := make([]*templateDomain.Template, 0)
	for _, template := range r.templates {
		if template.Issuer == issuer {
			template := template
			owned = append(owned, &template)
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	result := make([]*templateDomain.Template, 0)
	for i := offset; i < len(owned) && len(result) < limit; i++ {
		result = append(result, owned[i])
	}
	return result, nil
}

// Snapshot implements database.Snapshotter.
func (r *MemoryTemplateRepository) Snapshot() func() {
	r.mu.RLock()
	saved := make(map[int64]templateDomain.Template, len(r.templates))
	for k, v := range r.templates {
		saved[k] = v
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.templates = saved
	}
}
