package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/soulbound/internal/database"
	apperrors "github.com/allisson/soulbound/internal/errors"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
)

// MySQLSessionRepository implements Session persistence for MySQL.
type MySQLSessionRepository struct {
	db *sql.DB
}

// NewMySQLSessionRepository creates a new MySQL Session repository instance.
func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}

// Create inserts a new session. A duplicate id is reported as ErrSessionIDCollision.
func (m *MySQLSessionRepository) Create(ctx context.Context, session *sessionDomain.Session) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
func (m *MySQLSessionRepository) Update(ctx context.Context, session *sessionDomain.Session) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE sessions SET current_mints = ?, active = ?, updated_at = ? WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, session.CurrentMints, session.Active, session.UpdatedAt, session.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update session")
	}
	return nil
}

// Get retrieves a session by id.
func (m *MySQLSessionRepository) Get(ctx context.Context, id string) (*sessionDomain.Session, error) {
	return m.get(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
}

// GetForUpdate retrieves a session and locks its row until the transaction ends.
func (m *MySQLSessionRepository) GetForUpdate(ctx context.Context, id string) (*sessionDomain.Session, error) {
	return m.get(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ? FOR UPDATE`, id)
}

func (m *MySQLSessionRepository) get(ctx context.Context, query string, id string) (*sessionDomain.Session, error) {
	querier := database.GetTx(ctx, m.db)

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
func (m *MySQLSessionRepository) ListByTemplate(
	ctx context.Context,
	templateID int64,
	offset, limit int,
) ([]*sessionDomain.Session, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + sessionColumns + ` FROM sessions
			  WHERE template_id = ?
			  ORDER BY created_at ASC, id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, templateID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list sessions")
	}
	defer rows.Close() //nolint:errcheck

	return scanSessions(rows)
}
