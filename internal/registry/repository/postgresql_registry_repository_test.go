package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/soulbound/internal/errors"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
)

func TestPostgreSQLIssuerRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success_Create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO issuers`)).
			WithArgs(addrA, "Acme", "Acme Inc", true, now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLIssuerRepository(db)
		err = repo.Create(ctx, &registryDomain.Issuer{
			Address: addrA, Name: "Acme", Organization: "Acme Inc", Authorized: true, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_CreateUniqueViolation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO issuers`)).
			WillReturnError(&pq.Error{Code: "23505"})

		err = NewPostgreSQLIssuerRepository(db).Create(ctx, &registryDomain.Issuer{Address: addrA})
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("Success_Get", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		rows := sqlmock.NewRows([]string{"address", "name", "organization", "authorized", "created_at", "updated_at"}).
			AddRow(addrA, "Acme", "Acme Inc", true, now, now)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM issuers WHERE address = $1`)).
			WithArgs(addrA).
			WillReturnRows(rows)

		issuer, err := NewPostgreSQLIssuerRepository(db).Get(ctx, addrA)
		require.NoError(t, err)
		assert.Equal(t, "Acme", issuer.Name)
		assert.True(t, issuer.Authorized)
	})

	t.Run("Error_GetNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`FROM issuers WHERE address = $1`)).
			WithArgs(addrA).
			WillReturnRows(sqlmock.NewRows([]string{"address"}))

		_, err = NewPostgreSQLIssuerRepository(db).Get(ctx, addrA)
		assert.ErrorIs(t, err, registryDomain.ErrIssuerNotFound)
	})

	t.Run("Error_UpdateNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE issuers SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewPostgreSQLIssuerRepository(db).Update(ctx, &registryDomain.Issuer{Address: addrA})
		assert.ErrorIs(t, err, registryDomain.ErrIssuerNotFound)
	})

	t.Run("Success_ListAndCount", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		rows := sqlmock.NewRows([]string{"address", "name", "organization", "authorized", "created_at", "updated_at"}).
			AddRow(addrA, "A", "", true, now, now).
			AddRow(addrB, "B", "", true, now, now)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE authorized = TRUE`)).
			WithArgs(10, 0).
			WillReturnRows(rows)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM issuers`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

		repo := NewPostgreSQLIssuerRepository(db)
		issuers, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.Len(t, issuers, 2)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_ListQueryFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE authorized = TRUE`)).
			WillReturnError(errors.New("connection reset"))

		_, err = NewPostgreSQLIssuerRepository(db).List(ctx, 0, 10)
		assert.ErrorContains(t, err, "failed to list issuers")
	})
}

func TestPostgreSQLStateRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Error_NotInitialized", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`FROM registry_state WHERE id = 1`)).
			WillReturnRows(sqlmock.NewRows([]string{"admin", "paused", "updated_at"}))

		_, err = NewPostgreSQLStateRepository(db).Get(ctx)
		assert.ErrorIs(t, err, registryDomain.ErrRegistryNotInitialized)
	})

	t.Run("Success_GetForUpdateLocksRow", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = 1 FOR UPDATE`)).
			WillReturnRows(sqlmock.NewRows([]string{"admin", "paused", "updated_at"}).AddRow(addrA, true, now))

		state, err := NewPostgreSQLStateRepository(db).GetForUpdate(ctx)
		require.NoError(t, err)
		assert.Equal(t, addrA, state.Admin)
		assert.True(t, state.Paused)
	})

	t.Run("Success_CreateAndUpdate", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO registry_state`)).
			WithArgs(addrA, false, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE registry_state SET`)).
			WithArgs(addrB, false, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLStateRepository(db)
		require.NoError(t, repo.Create(ctx, &registryDomain.State{Admin: addrA, UpdatedAt: now}))
		require.NoError(t, repo.Update(ctx, &registryDomain.State{Admin: addrB, UpdatedAt: now}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
