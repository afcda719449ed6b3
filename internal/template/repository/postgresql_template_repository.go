// Package repository implements persistence for credential templates on PostgreSQL, MySQL and
// in memory.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/soulbound/internal/database"
	apperrors "github.com/allisson/soulbound/internal/errors"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

const templateColumns = `id, name, description, issuer, active, created_at, updated_at`

// PostgreSQLTemplateRepository implements Template persistence for PostgreSQL.
type PostgreSQLTemplateRepository struct {
	db *sql.DB
}

// NewPostgreSQLTemplateRepository creates a new PostgreSQL Template repository instance.
func NewPostgreSQLTemplateRepository(db *sql.DB) *PostgreSQLTemplateRepository {
	return &PostgreSQLTemplateRepository{db: db}
}

// Create inserts a new template.
func (p *PostgreSQLTemplateRepository) Create(ctx context.Context, template *templateDomain.Template) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO templates (` + templateColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(ctx, query, template.ID, template.Name, template.Description,
		template.Issuer, template.Active, template.CreatedAt, template.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create template")
	}
	return nil
}

// Update persists the mutable fields of a template.
func (p *PostgreSQLTemplateRepository) Update(ctx context.Context, template *templateDomain.Template) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE templates SET name = $1, description = $2, active = $3, updated_at = $4 WHERE id = $5`

	_, err := querier.ExecContext(ctx, query, template.Name, template.Description, template.Active,
		template.UpdatedAt, template.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update template")
	}
	return nil
}

// Get retrieves a template by id.
func (p *PostgreSQLTemplateRepository) Get(ctx context.Context, id int64) (*templateDomain.Template, error) {
	return p.get(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1`, id)
}

// GetForUpdate retrieves a template and locks its row until the transaction ends.
func (p *PostgreSQLTemplateRepository) GetForUpdate(ctx context.Context, id int64) (*templateDomain.Template, error) {
	return p.get(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1 FOR UPDATE`, id)
}

func (p *PostgreSQLTemplateRepository) get(ctx context.Context, query string, id int64) (*templateDomain.Template, error) {
	querier := database.GetTx(ctx, p.db)

	template, err := scanTemplate(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, templateDomain.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get template")
	}
	return template, nil
}

// ListByIssuer returns the templates owned by issuer in id order.
func (p *PostgreSQLTemplateRepository) ListByIssuer(
	ctx context.Context,
	issuer string,
	offset, limit int,
) ([]*templateDomain.Template, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + templateColumns + ` FROM templates
			  WHERE issuer = $1
			  ORDER BY id ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, issuer, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list templates")
	}
	defer rows.Close() //nolint:errcheck

	return scanTemplates(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*templateDomain.Template, error) {
	var template templateDomain.Template
	if err := row.Scan(
		&template.ID,
		&template.Name,
		&template.Description,
		&template.Issuer,
		&template.Active,
		&template.CreatedAt,
		&template.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &template, nil
}

func scanTemplates(rows *sql.Rows) ([]*templateDomain.Template, error) {
	templates := make([]*templateDomain.Template, 0)
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan template")
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate templates")
	}
	return templates, nil
}
