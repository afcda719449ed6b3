package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/soulbound/internal/database"
	apperrors "github.com/allisson/soulbound/internal/errors"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
)

// MySQLIssuerRepository implements Issuer persistence for MySQL.
type MySQLIssuerRepository struct {
	db *sql.DB
}

// NewMySQLIssuerRepository creates a new MySQL Issuer repository instance.
func NewMySQLIssuerRepository(db *sql.DB) *MySQLIssuerRepository {
	return &MySQLIssuerRepository{db: db}
}

// Create inserts a new issuer.
func (m *MySQLIssuerRepository) Create(ctx context.Context, issuer *registryDomain.Issuer) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO issuers (` + issuerColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

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
func (m *MySQLIssuerRepository) Update(ctx context.Context, issuer *registryDomain.Issuer) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE issuers SET name = ?, organization = ?, authorized = ?, updated_at = ?
			  WHERE address = ?`

	_, err := querier.ExecContext(ctx, query, issuer.Name, issuer.Organization,
		issuer.Authorized, issuer.UpdatedAt, issuer.Address)
	if err != nil {
		return apperrors.Wrap(err, "failed to update issuer")
	}
	// MySQL reports zero affected rows for unchanged values, so existence is not checked here.
	return nil
}

// Get retrieves an issuer by address, authorized or not.
func (m *MySQLIssuerRepository) Get(ctx context.Context, address string) (*registryDomain.Issuer, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + issuerColumns + ` FROM issuers WHERE address = ?`

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
func (m *MySQLIssuerRepository) List(ctx context.Context, offset, limit int) ([]*registryDomain.Issuer, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + issuerColumns + ` FROM issuers
			  WHERE authorized = TRUE
			  ORDER BY created_at ASC, address ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list issuers")
	}
	defer rows.Close() //nolint:errcheck

	return scanIssuers(rows)
}

// Count returns the number of authorized issuers.
func (m *MySQLIssuerRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM issuers WHERE authorized = TRUE`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count issuers")
	}
	return count, nil
}

// MySQLStateRepository implements registry state persistence for MySQL.
type MySQLStateRepository struct {
	db *sql.DB
}

// NewMySQLStateRepository creates a new MySQL registry state repository instance.
func NewMySQLStateRepository(db *sql.DB) *MySQLStateRepository {
	return &MySQLStateRepository{db: db}
}

// Get returns the registry state.
func (m *MySQLStateRepository) Get(ctx context.Context) (*registryDomain.State, error) {
	return m.get(ctx, `SELECT admin, paused, updated_at FROM registry_state WHERE id = 1`)
}

// GetForUpdate returns the registry state and locks its row until the transaction ends.
func (m *MySQLStateRepository) GetForUpdate(ctx context.Context) (*registryDomain.State, error) {
	return m.get(ctx, `SELECT admin, paused, updated_at FROM registry_state WHERE id = 1 FOR UPDATE`)
}

func (m *MySQLStateRepository) get(ctx context.Context, query string) (*registryDomain.State, error) {
	querier := database.GetTx(ctx, m.db)

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
func (m *MySQLStateRepository) Create(ctx context.Context, state *registryDomain.State) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO registry_state (id, admin, paused, updated_at) VALUES (1, ?, ?, ?)`

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
func (m *MySQLStateRepository) Update(ctx context.Context, state *registryDomain.State) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE registry_state SET admin = ?, paused = ?, updated_at = ? WHERE id = 1`

	if _, err := querier.ExecContext(ctx, query, state.Admin, state.Paused, state.UpdatedAt); err != nil {
		return apperrors.Wrap(err, "failed to update registry state")
	}
	return nil
}
