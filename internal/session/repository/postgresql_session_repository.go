// Package repository implements persistence for claim sessions on PostgreSQL, MySQL and in
// memory.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/soulbound/internal/database"
	apperrors "github.com/allisson/soulbound/internal/errors"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
)

const sessionColumns = `id, template_id, issuer, max_mints, current_mints, expires_at, active, title, created_at, updated_at`

// PostgreSQLSessionRepository implements Session persistence for PostgreSQL.
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// NewPostgreSQLSessionRepository creates a new PostgreSQL Session repository instance.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{db: db}
}

// Create inserts a new session. A duplicate id is reported as ErrSessionIDCollision.
func (p *PostgreSQLSessionRepository) Create(ctx context.Context, session *sessionDomain.Session) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO sessions (` + sessionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(ctx, query, session.ID, session.TemplateID, session.Issuer,
		session.MaxMints, session.CurrentMints, session.ExpiresAt, session.Active, session.Title,
		session.CreatedAt, session.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return sessionDomain.ErrSessionIDCollision
		}
		return apperrors.Wrap(err, "failed to create session")
	}
	return nil
}

// Update persists the counter and activity flag of a session.
func (p *PostgreSQLSessionRepository) Update(ctx context.Context, session *sessionDomain.Session) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE sessions SET current_mints = $1, active = $2, updated_at = $3 WHERE id = $4`

	_, err := querier.ExecContext(ctx, query, session.CurrentMints, session.Active, session.UpdatedAt, session.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update session")
	}
	return nil
}

// Get retrieves a session by id.
func (p *PostgreSQLSessionRepository) Get(ctx context.Context, id string) (*sessionDomain.Session, error) {
	return p.get(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
}

// GetForUpdate retrieves a session and locks its row until the transaction ends.
func (p *PostgreSQLSessionRepository) GetForUpdate(ctx context.Context, id string) (*sessionDomain.Session, error) {
	return p.get(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1 FOR UPDATE`, id)
}

func (p *PostgreSQLSessionRepository) get(ctx context.Context, query string, id string) (*sessionDomain.Session, error) {
	querier := database.GetTx(ctx, p.db)

	session, err := scanSession(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sessionDomain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}
	return session, nil
}

// ListByTemplate returns the sessions of a template, oldest first.
func (p *PostgreSQLSessionRepository) ListByTemplate(
	ctx context.Context,
	templateID int64,
	offset, limit int,
) ([]*sessionDomain.Session, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + sessionColumns + ` FROM sessions
			  WHERE template_id = $1
			  ORDER BY created_at ASC, id ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, templateID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list sessions")
	}
	defer rows.Close() //nolint:errcheck

	return scanSessions(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*sessionDomain.Session, error) {
	var session sessionDomain.Session
	if err := row.Scan(
		&session.ID,
		&session.TemplateID,
		&session.Issuer,
		&session.MaxMints,
		&session.CurrentMints,
		&session.ExpiresAt,
		&session.Active,
		&session.Title,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func scanSessions(rows *sql.Rows) ([]*sessionDomain.Session, error) {
	sessions := make([]*sessionDomain.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan session")
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate sessions")
	}
	return sessions, nil
}
