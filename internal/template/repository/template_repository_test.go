package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

const (
	issuerA = "0x00000000000000000000000000000000000000a1"
	issuerB = "0x00000000000000000000000000000000000000b2"
)

var templateRowColumns = []string{"id", "name", "description", "issuer", "active", "created_at", "updated_at"}

func TestMemoryTemplateRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success_CreateGetUpdate", func(t *testing.T) {
		repo := NewMemoryTemplateRepository()
		require.NoError(t, repo.Create(ctx, &templateDomain.Template{ID: 1, Name: "Workshop", Issuer: issuerA, Active: true, CreatedAt: now}))

		template, err := repo.GetForUpdate(ctx, 1)
		require.NoError(t, err)
		template.Active = false
		require.NoError(t, repo.Update(ctx, template))

		template, err = repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.False(t, template.Active)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := NewMemoryTemplateRepository()
		_, err := repo.Get(ctx, 9)
		assert.ErrorIs(t, err, templateDomain.ErrTemplateNotFound)
		assert.ErrorIs(t, repo.Update(ctx, &templateDomain.Template{ID: 9}), templateDomain.ErrTemplateNotFound)
	})

	t.Run("Success_ListByIssuer", func(t *testing.T) {
		repo := NewMemoryTemplateRepository()
		for id := int64(1); id <= 4; id++ {
			issuer := issuerA
			if id%2 == 0 {
				issuer = issuerB
			}
			require.NoError(t, repo.Create(ctx, &templateDomain.Template{ID: id, Issuer: issuer}))
		}

		templates, err := repo.ListByIssuer(ctx, issuerA, 0, 10)
		require.NoError(t, err)
		require.Len(t, templates, 2)
		assert.Equal(t, int64(1), templates[0].ID)
		assert.Equal(t, int64(3), templates[1].ID)

		templates, err = repo.ListByIssuer(ctx, issuerB, 1, 10)
		require.NoError(t, err)
		require.Len(t, templates, 1)
		assert.Equal(t, int64(4), templates[0].ID)
	})

	t.Run("Success_SnapshotRestores", func(t *testing.T) {
		repo := NewMemoryTemplateRepository()
		restore := repo.Snapshot()
		require.NoError(t, repo.Create(ctx, &templateDomain.Template{ID: 1}))
		restore()

		_, err := repo.Get(ctx, 1)
		assert.ErrorIs(t, err, templateDomain.ErrTemplateNotFound)
	})
}

func TestPostgreSQLTemplateRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success_Create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO templates`)).
			WithArgs(int64(1), "Workshop", "Attended", issuerA, true, now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = NewPostgreSQLTemplateRepository(db).Create(ctx, &templateDomain.Template{
			ID: 1, Name: "Workshop", Description: "Attended", Issuer: issuerA, Active: true, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_GetForUpdate", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`FROM templates WHERE id = $1 FOR UPDATE`)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(templateRowColumns).AddRow(int64(1), "Workshop", "Attended", issuerA, true, now, now))

		template, err := NewPostgreSQLTemplateRepository(db).GetForUpdate(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Workshop", template.Name)
		assert.True(t, template.IsOwnedBy(issuerA))
	})

	t.Run("Error_GetNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`FROM templates WHERE id = $1`)).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(templateRowColumns))

		_, err = NewPostgreSQLTemplateRepository(db).Get(ctx, 2)
		assert.ErrorIs(t, err, templateDomain.ErrTemplateNotFound)
	})

	t.Run("Success_ListByIssuer", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE issuer = $1`)).
			WithArgs(issuerA, 50, 0).
			WillReturnRows(sqlmock.NewRows(templateRowColumns).
				AddRow(int64(1), "A", "a", issuerA, true, now, now).
				AddRow(int64(3), "C", "c", issuerA, false, now, now))

		templates, err := NewPostgreSQLTemplateRepository(db).ListByIssuer(ctx, issuerA, 0, 50)
		require.NoError(t, err)
		assert.Len(t, templates, 2)
	})
}

func TestMySQLTemplateRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE templates SET name = ?, description = ?, active = ?, updated_at = ? WHERE id = ?`)).
		WithArgs("Workshop 2", "Updated", true, now, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewMySQLTemplateRepository(db).Update(context.Background(), &templateDomain.Template{
		ID: 1, Name: "Workshop 2", Description: "Updated", Active: true, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
