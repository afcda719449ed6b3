// Package usecase implements the Issuer Registry. Mutations lock the registry state row,
// so admin checks, pause checks and issuer updates are serialized.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/allisson/soulbound/internal/database"
	apperrors "github.com/allisson/soulbound/internal/errors"
	eventsDomain "github.com/allisson/soulbound/internal/events/domain"
	"github.com/allisson/soulbound/internal/identity"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
)

// registryUseCase implements RegistryUseCase.
type registryUseCase struct {
	txManager  database.TxManager
	issuerRepo IssuerRepository
	stateRepo  StateRepository
	recorder   EventRecorder
	now        func() time.Time
}

// NewRegistryUseCase creates a new RegistryUseCase.
func NewRegistryUseCase(
	txManager database.TxManager,
	issuerRepo IssuerRepository,
	stateRepo StateRepository,
	recorder EventRecorder,
) RegistryUseCase {
	return &registryUseCase{
		txManager:  txManager,
		issuerRepo: issuerRepo,
		stateRepo:  stateRepo,
		recorder:   recorder,
		now:        time.Now,
	}
}

// Bootstrap persists the initial administrator and registers it as an authorized issuer.
func (r *registryUseCase) Bootstrap(ctx context.Context, admin string) error {
	admin = identity.Normalize(admin)
	if !identity.IsUsable(admin) {
		return registryDomain.ErrInvalidAddress
	}

	err := r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		_, err := r.stateRepo.Get(txCtx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, registryDomain.ErrRegistryNotInitialized) {
			return err
		}

		now := r.now().UTC()
		if err := r.stateRepo.Create(txCtx, &registryDomain.State{Admin: admin, UpdatedAt: now}); err != nil {
			return err
		}
		_, err = r.authorize(txCtx, admin, registryDomain.AdministratorName, "", admin, now)
		return err
	})
	// A concurrent bootstrap won the insert.
	if apperrors.Is(err, apperrors.ErrConflict) {
		return nil
	}
	return err
}

// AddIssuer authorizes a new issuer or re-authorizes a deauthorized one.
func (r *registryUseCase) AddIssuer(
	ctx context.Context,
	caller string,
	input IssuerInput,
) (*registryDomain.Issuer, error) {
	caller = identity.Normalize(caller)
	address := identity.Normalize(input.Address)

	var issuer *registryDomain.Issuer
	err := r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := r.requireAdmin(txCtx, caller); err != nil {
			return err
		}
		if !identity.IsUsable(address) {
			return registryDomain.ErrInvalidAddress
		}
		if strings.TrimSpace(input.Name) == "" {
			return registryDomain.ErrIssuerNameRequired
		}

		existing, err := r.issuerRepo.Get(txCtx, address)
		if err != nil && !errors.Is(err, registryDomain.ErrIssuerNotFound) {
			return err
		}
		if existing != nil && existing.Authorized {
			return registryDomain.ErrIssuerAlreadyAuthorized
		}

		issuer, err = r.authorize(txCtx, address, input.Name, input.Organization, caller, r.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return issuer, nil
}

// RemoveIssuer deauthorizes an issuer. The current administrator cannot be removed.
func (r *registryUseCase) RemoveIssuer(ctx context.Context, caller, address string) error {
	caller = identity.Normalize(caller)
	address = identity.Normalize(address)

	return r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		state, err := r.requireAdmin(txCtx, caller)
		if err != nil {
			return err
		}

		issuer, err := r.issuerRepo.Get(txCtx, address)
		if err != nil {
			return err
		}
		if !issuer.Authorized {
			return registryDomain.ErrIssuerNotFound
		}
		if state.IsAdmin(address) {
			return registryDomain.ErrCannotRemoveAdmin
		}

		issuer.Authorized = false
		issuer.UpdatedAt = r.now().UTC()
		if err := r.issuerRepo.Update(txCtx, issuer); err != nil {
			return err
		}

		return r.recorder.Record(txCtx, eventsDomain.IssuerRemoved, eventsDomain.IssuerPayload{
			Issuer: address,
			Actor:  caller,
		})
	})
}

// UpdateIssuer changes the display name and organization of an authorized issuer.
func (r *registryUseCase) UpdateIssuer(
	ctx context.Context,
	caller string,
	input IssuerInput,
) (*registryDomain.Issuer, error) {
	caller = identity.Normalize(caller)
	address := identity.Normalize(input.Address)

	var issuer *registryDomain.Issuer
	err := r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := r.requireAdmin(txCtx, caller); err != nil {
			return err
		}
		if strings.TrimSpace(input.Name) == "" {
			return registryDomain.ErrIssuerNameRequired
		}

		var err error
		issuer, err = r.issuerRepo.Get(txCtx, address)
		if err != nil {
			return err
		}
		if !issuer.Authorized {
			return registryDomain.ErrIssuerNotFound
		}

		issuer.Name = input.Name
		issuer.Organization = input.Organization
		issuer.UpdatedAt = r.now().UTC()
		if err := r.issuerRepo.Update(txCtx, issuer); err != nil {
			return err
		}

		return r.recorder.Record(txCtx, eventsDomain.IssuerUpdated, eventsDomain.IssuerPayload{
			Issuer:       address,
			Name:         issuer.Name,
			Organization: issuer.Organization,
			Actor:        caller,
		})
	})
	if err != nil {
		return nil, err
	}
	return issuer, nil
}

// Pause stops every mutating operation except unpause and admin transfer.
func (r *registryUseCase) Pause(ctx context.Context, caller string) error {
	return r.setPaused(ctx, identity.Normalize(caller), true)
}

// Unpause resumes mutating operations.
func (r *registryUseCase) Unpause(ctx context.Context, caller string) error {
	return r.setPaused(ctx, identity.Normalize(caller), false)
}

func (r *registryUseCase) setPaused(ctx context.Context, caller string, paused bool) error {
	return r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		state, err := r.stateRepo.GetForUpdate(txCtx)
		if err != nil {
			if errors.Is(err, registryDomain.ErrRegistryNotInitialized) {
				return registryDomain.ErrNotAdmin
			}
			return err
		}
		if !state.IsAdmin(caller) {
			return registryDomain.ErrNotAdmin
		}

		eventType := eventsDomain.Paused
		if paused {
			if state.Paused {
				return registryDomain.ErrAlreadyPaused
			}
		} else {
			if !state.Paused {
				return registryDomain.ErrNotPaused
			}
			eventType = eventsDomain.Unpaused
		}

		state.Paused = paused
		state.UpdatedAt = r.now().UTC()
		if err := r.stateRepo.Update(txCtx, state); err != nil {
			return err
		}

		return r.recorder.Record(txCtx, eventType, eventsDomain.PausePayload{Actor: caller})
	})
}

// TransferAdmin hands the administrator role to newAdmin, authorizing it as an issuer when
// needed. The previous administrator stays an ordinary issuer.
func (r *registryUseCase) TransferAdmin(ctx context.Context, caller, newAdmin string) error {
	caller = identity.Normalize(caller)
	newAdmin = identity.Normalize(newAdmin)

	return r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		state, err := r.stateRepo.GetForUpdate(txCtx)
		if err != nil {
			if errors.Is(err, registryDomain.ErrRegistryNotInitialized) {
				return registryDomain.ErrNotAdmin
			}
			return err
		}
		if !state.IsAdmin(caller) {
			return registryDomain.ErrNotAdmin
		}
		if !identity.IsUsable(newAdmin) {
			return registryDomain.ErrInvalidAddress
		}
		if state.IsAdmin(newAdmin) {
			return registryDomain.ErrSameAdmin
		}

		now := r.now().UTC()
		existing, err := r.issuerRepo.Get(txCtx, newAdmin)
		if err != nil && !errors.Is(err, registryDomain.ErrIssuerNotFound) {
			return err
		}
		if existing == nil || !existing.Authorized {
			if _, err := r.authorize(txCtx, newAdmin, registryDomain.AdministratorName, "", caller, now); err != nil {
				return err
			}
		}

		state.Admin = newAdmin
		state.UpdatedAt = now
		if err := r.stateRepo.Update(txCtx, state); err != nil {
			return err
		}

		return r.recorder.Record(txCtx, eventsDomain.AdminTransferred, eventsDomain.AdminTransferredPayload{
			PreviousAdmin: caller,
			NewAdmin:      newAdmin,
		})
	})
}

// IsAuthorizedIssuer reports whether address is an authorized issuer.
func (r *registryUseCase) IsAuthorizedIssuer(ctx context.Context, address string) (bool, error) {
	issuer, err := r.issuerRepo.Get(ctx, identity.Normalize(address))
	if err != nil {
		if errors.Is(err, registryDomain.ErrIssuerNotFound) {
			return false, nil
		}
		return false, err
	}
	return issuer.Authorized, nil
}

// IsAdmin reports whether address is the current administrator.
func (r *registryUseCase) IsAdmin(ctx context.Context, address string) (bool, error) {
	state, err := r.stateRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, registryDomain.ErrRegistryNotInitialized) {
			return false, nil
		}
		return false, err
	}
	return state.IsAdmin(identity.Normalize(address)), nil
}

// EnsureNotPaused returns ErrRegistryPaused while the registry is paused. An uninitialized
// registry is not paused.
func (r *registryUseCase) EnsureNotPaused(ctx context.Context) error {
	state, err := r.stateRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, registryDomain.ErrRegistryNotInitialized) {
			return nil
		}
		return err
	}
	if state.Paused {
		return registryDomain.ErrRegistryPaused
	}
	return nil
}

// GetIssuer returns an issuer record, authorized or not.
func (r *registryUseCase) GetIssuer(ctx context.Context, address string) (*registryDomain.Issuer, error) {
	return r.issuerRepo.Get(ctx, identity.Normalize(address))
}

// ListIssuers returns authorized issuers.
func (r *registryUseCase) ListIssuers(ctx context.Context, offset, limit int) ([]*registryDomain.Issuer, error) {
	return r.issuerRepo.List(ctx, offset, limit)
}

// CountIssuers returns the number of authorized issuers.
func (r *registryUseCase) CountIssuers(ctx context.Context) (int64, error) {
	return r.issuerRepo.Count(ctx)
}

// GetState returns the administrator and pause flag.
func (r *registryUseCase) GetState(ctx context.Context) (*registryDomain.State, error) {
	return r.stateRepo.Get(ctx)
}

// requireAdmin locks the registry state and checks that caller administers it and that it is
// not paused.
func (r *registryUseCase) requireAdmin(ctx context.Context, caller string) (*registryDomain.State, error) {
	state, err := r.stateRepo.GetForUpdate(ctx)
	if err != nil {
		if errors.Is(err, registryDomain.ErrRegistryNotInitialized) {
			return nil, registryDomain.ErrNotAdmin
		}
		return nil, err
	}
	if !state.IsAdmin(caller) {
		return nil, registryDomain.ErrNotAdmin
	}
	if state.Paused {
		return nil, registryDomain.ErrRegistryPaused
	}
	return state, nil
}

// authorize creates or re-authorizes an issuer record and records IssuerAdded.
func (r *registryUseCase) authorize(
	ctx context.Context,
	address, name, organization, actor string,
	now time.Time,
) (*registryDomain.Issuer, error) {
	issuer, err := r.issuerRepo.Get(ctx, address)
	switch {
	case err == nil:
		issuer.Name = name
		issuer.Organization = organization
		issuer.Authorized = true
		issuer.UpdatedAt = now
		err = r.issuerRepo.Update(ctx, issuer)
	case errors.Is(err, registryDomain.ErrIssuerNotFound):
		issuer = &registryDomain.Issuer{
			Address:      address,
			Name:         name,
			Organization: organization,
			Authorized:   true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err = r.issuerRepo.Create(ctx, issuer)
	}
	if err != nil {
		return nil, err
	}

	if err := r.recorder.Record(ctx, eventsDomain.IssuerAdded, eventsDomain.IssuerPayload{
		Issuer:       address,
		Name:         name,
		Organization: organization,
		Actor:        actor,
	}); err != nil {
		return nil, err
	}
	return issuer, nil
}
