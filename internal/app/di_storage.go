package app

import (
	"fmt"

	"github.com/allisson/soulbound/internal/config"
	"github.com/allisson/soulbound/internal/database"
	eventsRepository "github.com/allisson/soulbound/internal/events/repository"
	eventsUseCase "github.com/allisson/soulbound/internal/events/usecase"
	ledgerRepository "github.com/allisson/soulbound/internal/ledger/repository"
	ledgerUseCase "github.com/allisson/soulbound/internal/ledger/usecase"
	registryRepository "github.com/allisson/soulbound/internal/registry/repository"
	registryUseCase "github.com/allisson/soulbound/internal/registry/usecase"
	sessionRepository "github.com/allisson/soulbound/internal/session/repository"
	sessionUseCase "github.com/allisson/soulbound/internal/session/usecase"
	templateRepository "github.com/allisson/soulbound/internal/template/repository"
	templateUseCase "github.com/allisson/soulbound/internal/template/usecase"
)

// Storage bundles the persistence components of one backend. All repositories of a Storage
// share its TxManager, so a use case spanning several modules commits or rolls back as one.
type Storage struct {
	TxManager database.TxManager
	Sequence  database.Sequence

	Issuers   registryUseCase.IssuerRepository
	State     registryUseCase.StateRepository
	Templates templateUseCase.TemplateRepository
	Sessions  sessionUseCase.SessionRepository
	Tokens    ledgerUseCase.TokenRepository
	Claims    ledgerUseCase.ClaimRepository
	Events    eventsUseCase.EventRepository

	// Memory is true for the in-process backend.
	Memory bool
}

// initStorage selects the repositories matching the configured driver.
func (c *Container) initStorage() (*Storage, error) {
	if c.config.DBDriver == config.DriverMemory {
		return newMemoryStorage(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for storage: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverMySQL:
		return &Storage{
			TxManager: database.NewTxManager(db),
			Sequence:  database.NewMySQLSequence(db),
			Issuers:   registryRepository.NewMySQLIssuerRepository(db),
			State:     registryRepository.NewMySQLStateRepository(db),
			Templates: templateRepository.NewMySQLTemplateRepository(db),
			Sessions:  sessionRepository.NewMySQLSessionRepository(db),
			Tokens:    ledgerRepository.NewMySQLTokenRepository(db),
			Claims:    ledgerRepository.NewMySQLClaimRepository(db),
			Events:    eventsRepository.NewMySQLEventRepository(db),
		}, nil
	case config.DriverPostgres:
		return &Storage{
			TxManager: database.NewTxManager(db),
			Sequence:  database.NewPostgreSQLSequence(db),
			Issuers:   registryRepository.NewPostgreSQLIssuerRepository(db),
			State:     registryRepository.NewPostgreSQLStateRepository(db),
			Templates: templateRepository.NewPostgreSQLTemplateRepository(db),
			Sessions:  sessionRepository.NewPostgreSQLSessionRepository(db),
			Tokens:    ledgerRepository.NewPostgreSQLTokenRepository(db),
			Claims:    ledgerRepository.NewPostgreSQLClaimRepository(db),
			Events:    eventsRepository.NewPostgreSQLEventRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// newMemoryStorage wires the in-memory repositories into one serializing transaction manager.
func newMemoryStorage() *Storage {
	issuers := registryRepository.NewMemoryIssuerRepository()
	state := registryRepository.NewMemoryStateRepository()
	templates := templateRepository.NewMemoryTemplateRepository()
	sessions := sessionRepository.NewMemorySessionRepository()
	tokens := ledgerRepository.NewMemoryTokenRepository()
	claims := ledgerRepository.NewMemoryClaimRepository()
	events := eventsRepository.NewMemoryEventRepository()
	sequence := database.NewMemorySequence()

	return &Storage{
		TxManager: database.NewMemoryTxManager(issuers, state, templates, sessions, tokens, claims, events, sequence),
		Sequence:  sequence,
		Issuers:   issuers,
		State:     state,
		Templates: templates,
		Sessions:  sessions,
		Tokens:    tokens,
		Claims:    claims,
		Events:    events,
		Memory:    true,
	}
}
