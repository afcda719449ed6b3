package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/soulbound/internal/errors"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
)

const (
	addrA = "0x00000000000000000000000000000000000000a1"
	addrB = "0x00000000000000000000000000000000000000b2"
	addrC = "0x00000000000000000000000000000000000000c3"
)

func TestMemoryIssuerRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success_CreateGetUpdate", func(t *testing.T) {
		repo := NewMemoryIssuerRepository()
		require.NoError(t, repo.Create(ctx, &registryDomain.Issuer{Address: addrA, Name: "A", Authorized: true, CreatedAt: now}))

		issuer, err := repo.Get(ctx, addrA)
		require.NoError(t, err)
		assert.Equal(t, "A", issuer.Name)

		issuer.Name = "A2"
		require.NoError(t, repo.Update(ctx, issuer))

		issuer, err = repo.Get(ctx, addrA)
		require.NoError(t, err)
		assert.Equal(t, "A2", issuer.Name)
	})

	t.Run("Error_CreateDuplicate", func(t *testing.T) {
		repo := NewMemoryIssuerRepository()
		require.NoError(t, repo.Create(ctx, &registryDomain.Issuer{Address: addrA}))
		err := repo.Create(ctx, &registryDomain.Issuer{Address: addrA})
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := NewMemoryIssuerRepository()
		_, err := repo.Get(ctx, addrA)
		assert.ErrorIs(t, err, registryDomain.ErrIssuerNotFound)
		err = repo.Update(ctx, &registryDomain.Issuer{Address: addrA})
		assert.ErrorIs(t, err, registryDomain.ErrIssuerNotFound)
	})

	t.Run("Success_ListAndCountSkipDeauthorized", func(t *testing.T) {
		repo := NewMemoryIssuerRepository()
		require.NoError(t, repo.Create(ctx, &registryDomain.Issuer{Address: addrB, Authorized: true, CreatedAt: now.Add(time.Second)}))
		require.NoError(t, repo.Create(ctx, &registryDomain.Issuer{Address: addrA, Authorized: true, CreatedAt: now}))
		require.NoError(t, repo.Create(ctx, &registryDomain.Issuer{Address: addrC, Authorized: false, CreatedAt: now}))

		issuers, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, issuers, 2)
		assert.Equal(t, addrA, issuers[0].Address)
		assert.Equal(t, addrB, issuers[1].Address)

		issuers, err = repo.List(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, issuers, 1)
		assert.Equal(t, addrB, issuers[0].Address)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Success_SnapshotRestores", func(t *testing.T) {
		repo := NewMemoryIssuerRepository()
		require.NoError(t, repo.Create(ctx, &registryDomain.Issuer{Address: addrA, Authorized: true}))

		restore := repo.Snapshot()
		require.NoError(t, repo.Create(ctx, &registryDomain.Issuer{Address: addrB, Authorized: true}))
		restore()

		_, err := repo.Get(ctx, addrB)
		assert.ErrorIs(t, err, registryDomain.ErrIssuerNotFound)
		_, err = repo.Get(ctx, addrA)
		assert.NoError(t, err)
	})
}

func TestMemoryStateRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Error_NotInitialized", func(t *testing.T) {
		repo := NewMemoryStateRepository()
		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, registryDomain.ErrRegistryNotInitialized)
		err = repo.Update(ctx, &registryDomain.State{Admin: addrA})
		assert.ErrorIs(t, err, registryDomain.ErrRegistryNotInitialized)
	})

	t.Run("Success_CreateUpdate", func(t *testing.T) {
		repo := NewMemoryStateRepository()
		require.NoError(t, repo.Create(ctx, &registryDomain.State{Admin: addrA}))

		err := repo.Create(ctx, &registryDomain.State{Admin: addrB})
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

		require.NoError(t, repo.Update(ctx, &registryDomain.State{Admin: addrA, Paused: true}))
		state, err := repo.GetForUpdate(ctx)
		require.NoError(t, err)
		assert.True(t, state.Paused)
	})

	t.Run("Success_SnapshotRestoresMissingState", func(t *testing.T) {
		repo := NewMemoryStateRepository()
		restore := repo.Snapshot()
		require.NoError(t, repo.Create(ctx, &registryDomain.State{Admin: addrA}))
		restore()

		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, registryDomain.ErrRegistryNotInitialized)
	})
}
