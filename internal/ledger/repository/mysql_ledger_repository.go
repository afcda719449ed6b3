package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/soulbound/internal/database"
	apperrors "github.com/allisson/soulbound/internal/errors"
	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
)

// MySQLTokenRepository implements Token persistence for MySQL.
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository creates a new MySQL Token repository instance.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

// Create inserts a new token.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *ledgerDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO tokens (` + tokenColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, token.ID, token.Owner, token.Name, token.Description,
		token.Issuer, token.TemplateID, token.SessionID, token.Status, token.MintedAt,
		token.RevokedAt, token.RevokedBy)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// Update persists the revocation state of a token. Owner and copied text never change.
func (m *MySQLTokenRepository) Update(ctx context.Context, token *ledgerDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tokens SET status = ?, revoked_at = ?, revoked_by = ? WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, token.Status, token.RevokedAt, token.RevokedBy, token.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update token")
	}
	return nil
}

// Get retrieves a token by id.
func (m *MySQLTokenRepository) Get(ctx context.Context, id int64) (*ledgerDomain.Token, error) {
	return m.get(ctx, `SELECT `+tokenColumns+` FROM tokens WHERE id = ?`, id)
}

// GetForUpdate retrieves a token and locks its row until the transaction ends.
func (m *MySQLTokenRepository) GetForUpdate(ctx context.Context, id int64) (*ledgerDomain.Token, error) {
	return m.get(ctx, `SELECT `+tokenColumns+` FROM tokens WHERE id = ? FOR UPDATE`, id)
}

func (m *MySQLTokenRepository) get(ctx context.Context, query string, id int64) (*ledgerDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	token, err := scanToken(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token")
	}
	return token, nil
}

// ListByOwner returns the tokens of owner in id order, revoked ones included.
func (m *MySQLTokenRepository) ListByOwner(
	ctx context.Context,
	owner string,
	offset, limit int,
) ([]*ledgerDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + tokenColumns + ` FROM tokens
			  WHERE owner = ?
			  ORDER BY id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, owner, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tokens")
	}
	defer rows.Close() //nolint:errcheck

	return scanTokens(rows)
}

// CountActiveByOwner counts the non-revoked tokens of owner.
func (m *MySQLTokenRepository) CountActiveByOwner(ctx context.Context, owner string) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	query := `SELECT COUNT(*) FROM tokens WHERE owner = ? AND status = ?`
	if err := querier.QueryRowContext(ctx, query, owner, ledgerDomain.StatusActive).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count tokens")
	}
	return count, nil
}

// MySQLClaimRepository implements claim marker persistence for MySQL. The primary
// keys (owner, template_id) and (owner, session_id) back the uniqueness checks of the ledger.
type MySQLClaimRepository struct {
	db *sql.DB
}

// NewMySQLClaimRepository creates a new MySQL claim repository instance.
func NewMySQLClaimRepository(db *sql.DB) *MySQLClaimRepository {
	return &MySQLClaimRepository{db: db}
}

// CreateTemplateClaim inserts an (owner, template) marker.
func (m *MySQLClaimRepository) CreateTemplateClaim(ctx context.Context, claim *ledgerDomain.TemplateClaim) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO template_claims (owner, template_id, token_id) VALUES (?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, claim.Owner, claim.TemplateID, claim.TokenID); err != nil {
		if database.IsUniqueViolation(err) {
			return ledgerDomain.ErrAlreadyClaimedTemplate
		}
		return apperrors.Wrap(err, "failed to create template claim")
	}
	return nil
}

// CreateSessionClaim inserts an (owner, session) marker.
func (m *MySQLClaimRepository) CreateSessionClaim(ctx context.Context, claim *ledgerDomain.SessionClaim) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO session_claims (owner, session_id, token_id) VALUES (?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, claim.Owner, claim.SessionID, claim.TokenID); err != nil {
		if database.IsUniqueViolation(err) {
			return ledgerDomain.ErrAlreadyClaimedSession
		}
		return apperrors.Wrap(err, "failed to create session claim")
	}
	return nil
}

// DeleteTemplateClaim removes an (owner, template) marker.
func (m *MySQLClaimRepository) DeleteTemplateClaim(ctx context.Context, owner string, templateID int64) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM template_claims WHERE owner = ? AND template_id = ?`

	if _, err := querier.ExecContext(ctx, query, owner, templateID); err != nil {
		return apperrors.Wrap(err, "failed to delete template claim")
	}
	return nil
}

// DeleteSessionClaim removes an (owner, session) marker.
func (m *MySQLClaimRepository) DeleteSessionClaim(ctx context.Context, owner string, sessionID string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM session_claims WHERE owner = ? AND session_id = ?`

	if _, err := querier.ExecContext(ctx, query, owner, sessionID); err != nil {
		return apperrors.Wrap(err, "failed to delete session claim")
	}
	return nil
}

// HasTemplateClaim reports whether an (owner, template) marker exists.
func (m *MySQLClaimRepository) HasTemplateClaim(ctx context.Context, owner string, templateID int64) (bool, error) {
	return exists(ctx, database.GetTx(ctx, m.db),
		`SELECT EXISTS (SELECT 1 FROM template_claims WHERE owner = ? AND template_id = ?)`, owner, templateID)
}

// HasSessionClaim reports whether an (owner, session) marker exists.
func (m *MySQLClaimRepository) HasSessionClaim(ctx context.Context, owner string, sessionID string) (bool, error) {
	return exists(ctx, database.GetTx(ctx, m.db),
		`SELECT EXISTS (SELECT 1 FROM session_claims WHERE owner = ? AND session_id = ?)`, owner, sessionID)
}
