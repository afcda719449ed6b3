// Package repository implements persistence for tokens and claim markers on PostgreSQL, MySQL
// and in memory.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/soulbound/internal/database"
	apperrors "github.com/allisson/soulbound/internal/errors"
	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
)

const tokenColumns = `id, owner, name, description, issuer, template_id, session_id, status, minted_at, revoked_at, revoked_by`

// PostgreSQLTokenRepository implements Token persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL Token repository instance.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// Create inserts a new token.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *ledgerDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tokens (` + tokenColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(ctx, query, token.ID, token.Owner, token.Name, token.Description,
		token.Issuer, token.TemplateID, token.SessionID, token.Status, token.MintedAt,
		token.RevokedAt, token.RevokedBy)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// Update persists the revocation state of a token. Owner and copied text never change.
func (p *PostgreSQLTokenRepository) Update(ctx context.Context, token *ledgerDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET status = $1, revoked_at = $2, revoked_by = $3 WHERE id = $4`

	_, err := querier.ExecContext(ctx, query, token.Status, token.RevokedAt, token.RevokedBy, token.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update token")
	}
	return nil
}

// Get retrieves a token by id.
func (p *PostgreSQLTokenRepository) Get(ctx context.Context, id int64) (*ledgerDomain.Token, error) {
	return p.get(ctx, `SELECT `+tokenColumns+` FROM tokens WHERE id = $1`, id)
}

// GetForUpdate retrieves a token and locks its row until the transaction ends.
func (p *PostgreSQLTokenRepository) GetForUpdate(ctx context.Context, id int64) (*ledgerDomain.Token, error) {
	return p.get(ctx, `SELECT `+tokenColumns+` FROM tokens WHERE id = $1 FOR UPDATE`, id)
}

func (p *PostgreSQLTokenRepository) get(ctx context.Context, query string, id int64) (*ledgerDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

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
func (p *PostgreSQLTokenRepository) ListByOwner(
	ctx context.Context,
	owner string,
	offset, limit int,
) ([]*ledgerDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + tokenColumns + ` FROM tokens
			  WHERE owner = $1
			  ORDER BY id ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, owner, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tokens")
	}
	defer rows.Close() //nolint:errcheck

	return scanTokens(rows)
}

// CountActiveByOwner counts the non-revoked tokens of owner.
func (p *PostgreSQLTokenRepository) CountActiveByOwner(ctx context.Context, owner string) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	query := `SELECT COUNT(*) FROM tokens WHERE owner = $1 AND status = $2`
	if err := querier.QueryRowContext(ctx, query, owner, ledgerDomain.StatusActive).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count tokens")
	}
	return count, nil
}

// PostgreSQLClaimRepository implements claim marker persistence for PostgreSQL. The primary
// keys (owner, template_id) and (owner, session_id) back the uniqueness checks of the ledger.
type PostgreSQLClaimRepository struct {
	db *sql.DB
}

// NewPostgreSQLClaimRepository creates a new PostgreSQL claim repository instance.
func NewPostgreSQLClaimRepository(db *sql.DB) *PostgreSQLClaimRepository {
	return &PostgreSQLClaimRepository{db: db}
}

// CreateTemplateClaim inserts an (owner, template) marker.
func (p *PostgreSQLClaimRepository) CreateTemplateClaim(ctx context.Context, claim *ledgerDomain.TemplateClaim) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO template_claims (owner, template_id, token_id) VALUES ($1, $2, $3)`

	if _, err := querier.ExecContext(ctx, query, claim.Owner, claim.TemplateID, claim.TokenID); err != nil {
		if database.IsUniqueViolation(err) {
			return ledgerDomain.ErrAlreadyClaimedTemplate
		}
		return apperrors.Wrap(err, "failed to create template claim")
	}
	return nil
}

// CreateSessionClaim inserts an (owner, session) marker.
func (p *PostgreSQLClaimRepository) CreateSessionClaim(ctx context.Context, claim *ledgerDomain.SessionClaim) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO session_claims (owner, session_id, token_id) VALUES ($1, $2, $3)`

	if _, err := querier.ExecContext(ctx, query, claim.Owner, claim.SessionID, claim.TokenID); err != nil {
		if database.IsUniqueViolation(err) {
			return ledgerDomain.ErrAlreadyClaimedSession
		}
		return apperrors.Wrap(err, "failed to create session claim")
	}
	return nil
}

// DeleteTemplateClaim removes an (owner, template) marker.
func (p *PostgreSQLClaimRepository) DeleteTemplateClaim(ctx context.Context, owner string, templateID int64) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM template_claims WHERE owner = $1 AND template_id = $2`

	if _, err := querier.ExecContext(ctx, query, owner, templateID); err != nil {
		return apperrors.Wrap(err, "failed to delete template claim")
	}
	return nil
}

// DeleteSessionClaim removes an (owner, session) marker.
func (p *PostgreSQLClaimRepository) DeleteSessionClaim(ctx context.Context, owner string, sessionID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM session_claims WHERE owner = $1 AND session_id = $2`

	if _, err := querier.ExecContext(ctx, query, owner, sessionID); err != nil {
		return apperrors.Wrap(err, "failed to delete session claim")
	}
	return nil
}

// HasTemplateClaim reports whether an (owner, template) marker exists.
func (p *PostgreSQLClaimRepository) HasTemplateClaim(ctx context.Context, owner string, templateID int64) (bool, error) {
	return exists(ctx, database.GetTx(ctx, p.db),
		`SELECT EXISTS (SELECT 1 FROM template_claims WHERE owner = $1 AND template_id = $2)`, owner, templateID)
}

// HasSessionClaim reports whether an (owner, session) marker exists.
func (p *PostgreSQLClaimRepository) HasSessionClaim(ctx context.Context, owner string, sessionID string) (bool, error) {
	return exists(ctx, database.GetTx(ctx, p.db),
		`SELECT EXISTS (SELECT 1 FROM session_claims WHERE owner = $1 AND session_id = $2)`, owner, sessionID)
}

func exists(ctx context.Context, querier database.Querier, query string, args ...any) (bool, error) {
	var found bool
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, apperrors.Wrap(err, "failed to check claim")
	}
	return found, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanToken(row rowScanner) (*ledgerDomain.Token, error) {
	var token ledgerDomain.Token
	if err := row.Scan(
		&token.ID,
		&token.Owner,
		&token.Name,
		&token.Description,
		&token.Issuer,
		&token.TemplateID,
		&token.SessionID,
		&token.Status,
		&token.MintedAt,
		&token.RevokedAt,
		&token.RevokedBy,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func scanTokens(rows *sql.Rows) ([]*ledgerDomain.Token, error) {
	tokens := make([]*ledgerDomain.Token, 0)
	for rows.Next() {
		token, err := scanToken(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan token")
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tokens")
	}
	return tokens, nil
}
