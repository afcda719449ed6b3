// Package repository implements persistence for the Issuer Registry on PostgreSQL, MySQL and
// in memory.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/soulbound/internal/database"
	apperrors "github.com/allisson/soulbound/internal/errors"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
)

const issuerColumns = `address, name, organization, authorized, created_at, updated_at`

// PostgreSQLIssuerRepository implements Issuer persistence for PostgreSQL.
type PostgreSQLIssuerRepository struct {
	db *sql.DB
}

// NewPostgreSQLIssuerRepository creates a new PostgreSQL Issuer repository instance.
func NewPostgreSQLIssuerRepository(db *sql.DB) *PostgreSQLIssuerRepository {
	return &PostgreSQLIssuerRepository{db: db}
}

// Create inserts a new issuer.
func (p *PostgreSQLIssuerRepository) Create(ctx context.Context, issuer *registryDomain.Issuer) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO issuers (` + issuerColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(ctx, query, issuer.Address, issuer.Name, issuer.Organization,
		issuer.Authorized, issuer.CreatedAt, issuer.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "issuer already exists")
		}
		return apperrors.Wrap(err, "failed to create issuer")
	}
	return nil
}

// Update persists name, organization and authorization of an existing issuer.
func (p *PostgreSQLIssuerRepository) Update(ctx context.Context, issuer *registryDomain.Issuer) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE issuers SET name = $1, organization = $2, authorized = $3, updated_at = $4
			  WHERE address = $5`

	result, err := querier.ExecContext(ctx, query, issuer.Name, issuer.Organization,
		issuer.Authorized, issuer.UpdatedAt, issuer.Address)
	if err != nil {
		return apperrors.Wrap(err, "failed to update issuer")
	}
	return checkRowsAffected(result, registryDomain.ErrIssuerNotFound)
}

// Get retrieves an issuer by address, authorized or not.
func (p *PostgreSQLIssuerRepository) Get(ctx context.Context, address string) (*registryDomain.Issuer, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + issuerColumns + ` FROM issuers WHERE address = $1`

	issuer, err := scanIssuer(querier.QueryRowContext(ctx, query, address))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registryDomain.ErrIssuerNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get issuer")
	}
	return issuer, nil
}

// List returns authorized issuers ordered by creation time.
func (p *PostgreSQLIssuerRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*registryDomain.Issuer, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + issuerColumns + ` FROM issuers
			  WHERE authorized = TRUE
			  ORDER BY created_at ASC, address ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list issuers")
	}
	defer rows.Close() //nolint:errcheck

	return scanIssuers(rows)
}

// Count returns the number of authorized issuers.
func (p *PostgreSQLIssuerRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM issuers WHERE authorized = TRUE`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count issuers")
	}
	return count, nil
}

// PostgreSQLStateRepository implements registry state persistence for PostgreSQL. The state
// is a single row with id 1.
type PostgreSQLStateRepository struct {
	db *sql.DB
}

// NewPostgreSQLStateRepository creates a new PostgreSQL registry state repository instance.
func NewPostgreSQLStateRepository(db *sql.DB) *PostgreSQLStateRepository {
	return &PostgreSQLStateRepository{db: db}
}

// Get returns the registry state.
func (p *PostgreSQLStateRepository) Get(ctx context.Context) (*registryDomain.State, error) {
	return p.get(ctx, `SELECT admin, paused, updated_at FROM registry_state WHERE id = 1`)
}

// GetForUpdate returns the registry state and locks its row until the transaction ends.
func (p *PostgreSQLStateRepository) GetForUpdate(ctx context.Context) (*registryDomain.State, error) {
	return p.get(ctx, `SELECT admin, paused, updated_at FROM registry_state WHERE id = 1 FOR UPDATE`)
}

func (p *PostgreSQLStateRepository) get(ctx context.Context, query string) (*registryDomain.State, error) {
	querier := database.GetTx(ctx, p.db)

	var state registryDomain.State
	err := querier.QueryRowContext(ctx, query).Scan(&state.Admin, &state.Paused, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registryDomain.ErrRegistryNotInitialized
		}
		return nil, apperrors.Wrap(err, "failed to get registry state")
	}
	return &state, nil
}

// Create inserts the registry state row. It fails with ErrConflict when it already exists.
func (p *PostgreSQLStateRepository) Create(ctx context.Context, state *registryDomain.State) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO registry_state (id, admin, paused, updated_at) VALUES (1, $1, $2, $3)`

	_, err := querier.ExecContext(ctx, query, state.Admin, state.Paused, state.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "registry state already exists")
		}
		return apperrors.Wrap(err, "failed to create registry state")
	}
	return nil
}

// Update persists the administrator and pause flag.
func (p *PostgreSQLStateRepository) Update(ctx context.Context, state *registryDomain.State) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE registry_state SET admin = $1, paused = $2, updated_at = $3 WHERE id = 1`

	result, err := querier.ExecContext(ctx, query, state.Admin, state.Paused, state.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to update registry state")
	}
	return checkRowsAffected(result, registryDomain.ErrRegistryNotInitialized)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIssuer(row rowScanner) (*registryDomain.Issuer, error) {
	var issuer registryDomain.Issuer
	if err := row.Scan(
		&issuer.Address,
		&issuer.Name,
		&issuer.Organization,
		&issuer.Authorized,
		&issuer.CreatedAt,
		&issuer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &issuer, nil
}

func scanIssuers(rows *sql.Rows) ([]*registryDomain.Issuer, error) {
	issuers := make([]*registryDomain.Issuer, 0)
	for rows.Next() {
		issuer, err := scanIssuer(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan issuer")
		}
		issuers = append(issuers, issuer)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate issuers")
	}
	return issuers, nil
}

func checkRowsAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
