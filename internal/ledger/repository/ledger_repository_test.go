package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
)

const (
	ownerA    = "0x00000000000000000000000000000000000000a1"
	issuerB   = "0x00000000000000000000000000000000000000b2"
	sessionID = "0x1111111111111111111111111111111111111111111111111111111111111111"
)

var tokenRowColumns = []string{
	"id", "owner", "name", "description", "issuer", "template_id", "session_id", "status", "minted_at", "revoked_at", "revoked_by",
}

func newToken(id int64, owner string, mintedAt time.Time) *ledgerDomain.Token {
	return &ledgerDomain.Token{
		ID:          id,
		Owner:       owner,
		Name:        "Workshop",
		Description: "Attended",
		Issuer:      issuerB,
		TemplateID:  1,
		Status:      ledgerDomain.StatusActive,
		MintedAt:    mintedAt,
	}
}

func TestMemoryTokenRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success_ListAndCount", func(t *testing.T) {
		repo := NewMemoryTokenRepository()
		for id := int64(3); id >= 1; id-- {
			require.NoError(t, repo.Create(ctx, newToken(id, ownerA, now)))
		}
		require.NoError(t, repo.Create(ctx, newToken(4, issuerB, now)))

		revoked, err := repo.GetForUpdate(ctx, 2)
		require.NoError(t, err)
		revoked.Revoke(issuerB, now)
		require.NoError(t, repo.Update(ctx, revoked))

		tokens, err := repo.ListByOwner(ctx, ownerA, 0, 10)
		require.NoError(t, err)
		require.Len(t, tokens, 3)
		assert.Equal(t, []int64{1, 2, 3}, []int64{tokens[0].ID, tokens[1].ID, tokens[2].ID})

		count, err := repo.CountActiveByOwner(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := NewMemoryTokenRepository()
		_, err := repo.Get(ctx, 1)
		assert.ErrorIs(t, err, ledgerDomain.ErrTokenNotFound)
		assert.ErrorIs(t, repo.Update(ctx, newToken(1, ownerA, now)), ledgerDomain.ErrTokenNotFound)
	})
}

func TestMemoryClaimRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateCheckDelete", func(t *testing.T) {
		repo := NewMemoryClaimRepository()
		require.NoError(t, repo.CreateTemplateClaim(ctx, &ledgerDomain.TemplateClaim{Owner: ownerA, TemplateID: 1, TokenID: 1}))
		require.NoError(t, repo.CreateSessionClaim(ctx, &ledgerDomain.SessionClaim{Owner: ownerA, SessionID: sessionID, TokenID: 1}))

		claimed, err := repo.HasTemplateClaim(ctx, ownerA, 1)
		require.NoError(t, err)
		assert.True(t, claimed)
		claimed, err = repo.HasSessionClaim(ctx, ownerA, sessionID)
		require.NoError(t, err)
		assert.True(t, claimed)

		require.NoError(t, repo.DeleteTemplateClaim(ctx, ownerA, 1))
		require.NoError(t, repo.DeleteSessionClaim(ctx, ownerA, sessionID))

		claimed, err = repo.HasTemplateClaim(ctx, ownerA, 1)
		require.NoError(t, err)
		assert.False(t, claimed)
		claimed, err = repo.HasSessionClaim(ctx, ownerA, sessionID)
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("Error_DuplicateMarkers", func(t *testing.T) {
		repo := NewMemoryClaimRepository()
		require.NoError(t, repo.CreateTemplateClaim(ctx, &ledgerDomain.TemplateClaim{Owner: ownerA, TemplateID: 1, TokenID: 1}))
		err := repo.CreateTemplateClaim(ctx, &ledgerDomain.TemplateClaim{Owner: ownerA, TemplateID: 1, TokenID: 2})
		assert.ErrorIs(t, err, ledgerDomain.ErrAlreadyClaimedTemplate)

		require.NoError(t, repo.CreateSessionClaim(ctx, &ledgerDomain.SessionClaim{Owner: ownerA, SessionID: sessionID, TokenID: 1}))
		err = repo.CreateSessionClaim(ctx, &ledgerDomain.SessionClaim{Owner: ownerA, SessionID: sessionID, TokenID: 2})
		assert.ErrorIs(t, err, ledgerDomain.ErrAlreadyClaimedSession)
	})

	t.Run("Success_SnapshotRestores", func(t *testing.T) {
		repo := NewMemoryClaimRepository()
		restore := repo.Snapshot()
		require.NoError(t, repo.CreateTemplateClaim(ctx, &ledgerDomain.TemplateClaim{Owner: ownerA, TemplateID: 1, TokenID: 1}))
		restore()

		claimed, err := repo.HasTemplateClaim(ctx, ownerA, 1)
		require.NoError(t, err)
		assert.False(t, claimed)
	})
}

func TestPostgreSQLTokenRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success_Create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		sid := sessionID
		token := newToken(1, ownerA, now)
		token.SessionID = &sid
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tokens`)).
			WithArgs(int64(1), ownerA, "Workshop", "Attended", issuerB, int64(1), &sid, ledgerDomain.StatusActive, now, nil, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewPostgreSQLTokenRepository(db).Create(ctx, token))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_GetWithNullSession", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`FROM tokens WHERE id = $1`)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(tokenRowColumns).
				AddRow(int64(1), ownerA, "Workshop", "Attended", issuerB, int64(1), nil, "active", now, nil, nil))

		token, err := NewPostgreSQLTokenRepository(db).Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, token.SessionID)
		assert.Equal(t, ledgerDomain.StatusActive, token.Status)
		assert.False(t, token.IsRevoked())
	})

	t.Run("Error_GetNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`FROM tokens WHERE id = $1 FOR UPDATE`)).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(tokenRowColumns))

		_, err = NewPostgreSQLTokenRepository(db).GetForUpdate(ctx, 9)
		assert.ErrorIs(t, err, ledgerDomain.ErrTokenNotFound)
	})

	t.Run("Success_CountActiveByOwner", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tokens WHERE owner = $1 AND status = $2`)).
			WithArgs(ownerA, ledgerDomain.StatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

		count, err := NewPostgreSQLTokenRepository(db).CountActiveByOwner(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestPostgreSQLClaimRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Error_DuplicateTemplateClaim", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO template_claims`)).
			WithArgs(ownerA, int64(1), int64(2)).
			WillReturnError(&pq.Error{Code: "23505"})

		err = NewPostgreSQLClaimRepository(db).CreateTemplateClaim(ctx, &ledgerDomain.TemplateClaim{Owner: ownerA, TemplateID: 1, TokenID: 2})
		assert.ErrorIs(t, err, ledgerDomain.ErrAlreadyClaimedTemplate)
	})

	t.Run("Success_HasSessionClaim", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`FROM session_claims WHERE owner = $1 AND session_id = $2`)).
			WithArgs(ownerA, sessionID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		claimed, err := NewPostgreSQLClaimRepository(db).HasSessionClaim(ctx, ownerA, sessionID)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("Success_DeleteTemplateClaim", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM template_claims WHERE owner = $1 AND template_id = $2`)).
			WithArgs(ownerA, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewPostgreSQLClaimRepository(db).DeleteTemplateClaim(ctx, ownerA, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQLClaimRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Error_DuplicateSessionClaim", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO session_claims (owner, session_id, token_id) VALUES (?, ?, ?)`)).
			WithArgs(ownerA, sessionID, int64(2)).
			WillReturnError(&mysql.MySQLError{Number: 1062})

		err = NewMySQLClaimRepository(db).CreateSessionClaim(ctx, &ledgerDomain.SessionClaim{Owner: ownerA, SessionID: sessionID, TokenID: 2})
		assert.ErrorIs(t, err, ledgerDomain.ErrAlreadyClaimedSession)
	})

	t.Run("Success_HasTemplateClaimFromInteger", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck

		mock.ExpectQuery(regexp.QuoteMeta(`FROM template_claims WHERE owner = ? AND template_id = ?`)).
			WithArgs(ownerA, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(int64(0)))

		claimed, err := NewMySQLClaimRepository(db).HasTemplateClaim(ctx, ownerA, 1)
		require.NoError(t, err)
		assert.False(t, claimed)
	})
}

func TestMySQLTokenRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	now := time.Now().UTC()
	token := newToken(1, ownerA, now)
	token.Revoke(issuerB, now)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tokens SET status = ?, revoked_at = ?, revoked_by = ? WHERE id = ?`)).
		WithArgs(ledgerDomain.StatusRevoked, token.RevokedAt, token.RevokedBy, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewMySQLTokenRepository(db).Update(context.Background(), token))
	assert.NoError(t, mock.ExpectationsWereMet())
}
