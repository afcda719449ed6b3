package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/soulbound/internal/database"
	apperrors "github.com/allisson/soulbound/internal/errors"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

// MySQLTemplateRepository implements Template persistence for MySQL.
type MySQLTemplateRepository struct {
	db *sql.DB
}

// NewMySQLTemplateRepository creates a new MySQL Template repository instance.
func NewMySQLTemplateRepository(db *sql.DB) *MySQLTemplateRepository {
	return &MySQLTemplateRepository{db: db}
}

// Create inserts a new template.
func (m *MySQLTemplateRepository) Create(ctx context.Context, template *templateDomain.Template) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO templates (` + templateColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, template.ID, template.Name, template.Description,
		template.Issuer, template.Active, template.CreatedAt, template.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create template")
	}
	return nil
}

// Update persists the mutable fields of a template.
func (m *MySQLTemplateRepository) Update(ctx context.Context, template *templateDomain.Template) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE templates SET name = ?, description = ?, active = ?, updated_at = ? WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, template.Name, template.Description, template.Active,
		template.UpdatedAt, template.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update template")
	}
	return nil
}

// Get retrieves a template by id.
func (m *MySQLTemplateRepository) Get(ctx context.Context, id int64) (*templateDomain.Template, error) {
	return m.get(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
}

// GetForUpdate retrieves a template and locks its row until the transaction ends.
func (m *MySQLTemplateRepository) GetForUpdate(ctx context.Context, id int64) (*templateDomain.Template, error) {
	return m.get(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ? FOR UPDATE`, id)
}

func (m *MySQLTemplateRepository) get(ctx context.Context, query string, id int64) (*templateDomain.Template, error) {
	querier := database.GetTx(ctx, m.db)

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
func (m *MySQLTemplateRepository) ListByIssuer(
	ctx context.Context,
	issuer string,
	offset, limit int,
) ([]*templateDomain.Template, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + templateColumns + ` FROM templates
			  WHERE issuer = ?
			  ORDER BY id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, issuer, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list templates")
	}
	defer rows.Close() //nolint:errcheck

	return scanTemplates(rows)
}
