package app

import (
	"context"
	"fmt"
	"time"

	authService "github.com/allisson/soulbound/internal/auth/service"
	"github.com/allisson/soulbound/internal/http"
	ledgerHTTP "github.com/allisson/soulbound/internal/ledger/http"
	ledgerUseCase "github.com/allisson/soulbound/internal/ledger/usecase"
	registryHTTP "github.com/allisson/soulbound/internal/registry/http"
	registryUseCase "github.com/allisson/soulbound/internal/registry/usecase"
	sessionHTTP "github.com/allisson/soulbound/internal/session/http"
	"github.com/allisson/soulbound/internal/session/service"
	sessionUseCase "github.com/allisson/soulbound/internal/session/usecase"
	templateHTTP "github.com/allisson/soulbound/internal/template/http"
	templateUseCase "github.com/allisson/soulbound/internal/template/usecase"
)

// TokenService returns the access token service used by the authentication middleware.
func (c *Container) TokenService() authService.TokenService {
	tokenService, _ := lazy(c, "tokenService", func() (authService.TokenService, error) {
		return authService.NewTokenService(c.config.AuthJWTSecret, c.config.AuthTokenExpiration), nil
	})
	return tokenService
}

// RegistryUseCase returns the Issuer Registry use case.
func (c *Container) RegistryUseCase() (registryUseCase.RegistryUseCase, error) {
	return lazy(c, "registryUseCase", c.initRegistryUseCase)
}

// TemplateUseCase returns the Template Store use case.
func (c *Container) TemplateUseCase() (templateUseCase.TemplateUseCase, error) {
	return lazy(c, "templateUseCase", c.initTemplateUseCase)
}

// SessionUseCase returns the Session Manager use case.
func (c *Container) SessionUseCase() (sessionUseCase.SessionUseCase, error) {
	return lazy(c, "sessionUseCase", c.initSessionUseCase)
}

// LedgerUseCase returns the Token Ledger use case.
func (c *Container) LedgerUseCase() (ledgerUseCase.LedgerUseCase, error) {
	return lazy(c, "ledgerUseCase", c.initLedgerUseCase)
}

// BootstrapRegistry installs BOOTSTRAP_ADMIN as administrator on an uninitialized registry.
// It does nothing when no bootstrap admin is configured.
func (c *Container) BootstrapRegistry(ctx context.Context) error {
	if c.config.BootstrapAdmin == "" {
		return nil
	}

	registry, err := c.RegistryUseCase()
	if err != nil {
		return fmt.Errorf("failed to get registry use case for bootstrap: %w", err)
	}
	if err := registry.Bootstrap(ctx, c.config.BootstrapAdmin); err != nil {
		return fmt.Errorf("failed to bootstrap registry: %w", err)
	}
	return nil
}

// initRegistryUseCase creates the registry use case with all its dependencies.
func (c *Container) initRegistryUseCase() (registryUseCase.RegistryUseCase, error) {
	storage, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for registry use case: %w", err)
	}

	baseUseCase := registryUseCase.NewRegistryUseCase(storage.TxManager, storage.Issuers, storage.State, c.Recorder(storage))

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for registry use case: %w", err)
		}
		return registryUseCase.NewRegistryUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTemplateUseCase creates the template use case with all its dependencies.
func (c *Container) initTemplateUseCase() (templateUseCase.TemplateUseCase, error) {
	storage, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for template use case: %w", err)
	}

	registry, err := c.RegistryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry use case for template use case: %w", err)
	}

	baseUseCase := templateUseCase.NewTemplateUseCase(
		storage.TxManager,
		storage.Templates,
		storage.Sequence,
		registry,
		c.Recorder(storage),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for template use case: %w", err)
		}
		return templateUseCase.NewTemplateUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (sessionUseCase.SessionUseCase, error) {
	storage, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for session use case: %w", err)
	}

	registry, err := c.RegistryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry use case for session use case: %w", err)
	}

	baseUseCase := sessionUseCase.NewSessionUseCase(
		sessionUseCase.Config{MaxDuration: c.config.SessionMaxDuration},
		storage.TxManager,
		storage.Sessions,
		storage.Sequence,
		service.NewKeccakIDGenerator(),
		registry,
		storage.Templates,
		c.Recorder(storage),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return sessionUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initLedgerUseCase creates the ledger use case with all its dependencies.
func (c *Container) initLedgerUseCase() (ledgerUseCase.LedgerUseCase, error) {
	storage, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for ledger use case: %w", err)
	}

	registry, err := c.RegistryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry use case for ledger use case: %w", err)
	}

	sessions, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for ledger use case: %w", err)
	}

	baseUseCase := ledgerUseCase.NewLedgerUseCase(
		ledgerUseCase.Config{BatchMaxSize: c.config.BatchMintMaxSize},
		storage.TxManager,
		storage.Tokens,
		storage.Claims,
		storage.Sequence,
		registry,
		storage.Templates,
		sessions,
		c.Recorder(storage),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for ledger use case: %w", err)
		}
		return ledgerUseCase.NewLedgerUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// HTTPServer returns the HTTP server instance with every route mounted.
func (c *Container) HTTPServer() (*http.Server, error) {
	return lazy(c, "httpServer", c.initHTTPServer)
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return lazy(c, "metricsServer", c.initMetricsServer)
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	storage, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for http server: %w", err)
	}
	registry, err := c.RegistryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry use case for http server: %w", err)
	}
	templates, err := c.TemplateUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get template use case for http server: %w", err)
	}
	sessions, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}
	ledger, err := c.LedgerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger use case for http server: %w", err)
	}
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(c.db, c.config.ServerHost, c.config.ServerPort, logger)
	if storage.Memory {
		server.UseMemoryStorage()
	}

	server.SetupRouter(c.config, c.TokenService(), http.Handlers{
		Registry: registryHTTP.NewRegistryHandler(registry, logger),
		Template: templateHTTP.NewTemplateHandler(templates, logger),
		Session:  sessionHTTP.NewSessionHandler(sessions, logger),
		Ledger:   ledgerHTTP.NewLedgerHandler(ledger, logger),
		Events:   c.EventHandler(storage),
	}, metricsProvider)

	c.mu.Lock()
	c.httpServer = server
	c.mu.Unlock()
	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	server := http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
	c.mu.Lock()
	c.metricsServer = server
	c.mu.Unlock()
	return server, nil
}

// shutdownTimeout bounds graceful shutdown of servers and workers.
const shutdownTimeout = 15 * time.Second

// ShutdownTimeout returns the time allowed for a graceful shutdown.
func (c *Container) ShutdownTimeout() time.Duration {
	return shutdownTimeout
}
