// Package usecase implements the Issuer Registry business logic: issuer authorization, the
// administrator lifecycle and the global pause flag consulted by every downstream mutation.
package usecase

import (
	"context"

	eventsDomain "github.com/allisson/soulbound/internal/events/domain"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
)

// IssuerRepository defines the interface for Issuer persistence operations.
type IssuerRepository interface {
	Create(ctx context.Context, issuer *registryDomain.Issuer) error
	Update(ctx context.Context, issuer *registryDomain.Issuer) error
	Get(ctx context.Context, address string) (*registryDomain.Issuer, error)
	List(ctx context.Context, offset, limit int) ([]*registryDomain.Issuer, error)
	Count(ctx context.Context) (int64, error)
}

// StateRepository defines the interface for registry state persistence operations.
type StateRepository interface {
	Get(ctx context.Context) (*registryDomain.State, error)
	GetForUpdate(ctx context.Context) (*registryDomain.State, error)
	Create(ctx context.Context, state *registryDomain.State) error
	Update(ctx context.Context, state *registryDomain.State) error
}

// EventRecorder writes an event to the outbox within the current transaction.
type EventRecorder interface {
	Record(ctx context.Context, eventType eventsDomain.Type, payload any) error
}

// IssuerInput carries the fields of an issuer written by the administrator.
type IssuerInput struct {
	Address      string
	Name         string
	Organization string
}

// RegistryUseCase defines the interface for Issuer Registry business logic.
type RegistryUseCase interface {
	// Bootstrap initializes the registry with admin when no state exists yet. It is a no-op
	// on an initialized registry.
	Bootstrap(ctx context.Context, admin string) error
	AddIssuer(ctx context.Context, caller string, input IssuerInput) (*registryDomain.Issuer, error)
	RemoveIssuer(ctx context.Context, caller, address string) error
	UpdateIssuer(ctx context.Context, caller string, input IssuerInput) (*registryDomain.Issuer, error)
	Pause(ctx context.Context, caller string) error
	Unpause(ctx context.Context, caller string) error
	TransferAdmin(ctx context.Context, caller, newAdmin string) error

	IsAuthorizedIssuer(ctx context.Context, address string) (bool, error)
	IsAdmin(ctx context.Context, address string) (bool, error)
	// EnsureNotPaused returns ErrRegistryPaused while the registry is paused.
	EnsureNotPaused(ctx context.Context) error

	GetIssuer(ctx context.Context, address string) (*registryDomain.Issuer, error)
	ListIssuers(ctx context.Context, offset, limit int) ([]*registryDomain.Issuer, error)
	CountIssuers(ctx context.Context) (int64, error)
	GetState(ctx context.Context) (*registryDomain.State, error)
}
