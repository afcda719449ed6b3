// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/soulbound/internal/auth/http"
	authService "github.com/allisson/soulbound/internal/auth/service"
	"github.com/allisson/soulbound/internal/config"
	eventsHTTP "github.com/allisson/soulbound/internal/events/http"
	ledgerHTTP "github.com/allisson/soulbound/internal/ledger/http"
	"github.com/allisson/soulbound/internal/metrics"
	registryHTTP "github.com/allisson/soulbound/internal/registry/http"
	sessionHTTP "github.com/allisson/soulbound/internal/session/http"
	templateHTTP "github.com/allisson/soulbound/internal/template/http"
)

// Handlers groups the per-module HTTP handlers mounted by the router.
type Handlers struct {
	Registry *registryHTTP.RegistryHandler
	Template *templateHTTP.TemplateHandler
	Session  *sessionHTTP.SessionHandler
	Ledger   *ledgerHTTP.LedgerHandler
	Events   *eventsHTTP.EventHandler
}

// Server represents the HTTP server
type Server struct {
	db            *sql.DB
	memoryStorage bool
	server        *http.Server
	router        *gin.Engine
	logger        *slog.Logger
}

// NewServer creates a new HTTP server. db is used by the readiness check.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port),
	}
}

// UseMemoryStorage marks the server as running on the in-memory backend, which is always
// ready.
func (s *Server) UseMemoryStorage() {
	s.memoryStorage = true
}

// SetupRouter builds the gin engine with every route of the service.
func (s *Server) SetupRouter(
	cfg *config.Config,
	tokenService authService.TokenService,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Public read endpoints
	v1.GET("/registry", handlers.Registry.GetStateHandler)
	v1.GET("/issuers", handlers.Registry.ListIssuersHandler)
	v1.GET("/issuers/:address", handlers.Registry.GetIssuerHandler)
	v1.GET("/issuers/:address/authorized", handlers.Registry.IsAuthorizedHandler)
	v1.GET("/issuers/:address/templates", handlers.Template.ListByIssuerHandler)

	v1.GET("/templates/:id", handlers.Template.GetHandler)
	v1.GET("/templates/:id/active", handlers.Template.IsActiveHandler)
	v1.GET("/templates/:id/sessions", handlers.Session.ListByTemplateHandler)

	v1.GET("/sessions/:id", handlers.Session.GetHandler)
	v1.GET("/sessions/:id/stats", handlers.Session.StatsHandler)
	v1.GET("/sessions/:id/claimable", handlers.Session.IsClaimableHandler)

	v1.GET("/tokens/:id", handlers.Ledger.GetHandler)
	v1.GET("/tokens/:id/basic", handlers.Ledger.GetBasicHandler)
	v1.GET("/tokens/:id/owner", handlers.Ledger.OwnerOfHandler)
	v1.GET("/tokens/:id/approved", handlers.Ledger.GetApprovedHandler)

	v1.GET("/owners/:address/tokens", handlers.Ledger.ListByOwnerHandler)
	v1.GET("/owners/:address/balance", handlers.Ledger.BalanceOfHandler)
	v1.GET("/owners/:address/approvals/:operator", handlers.Ledger.IsApprovedForAllHandler)
	v1.GET("/owners/:address/templates/:id/claimed", handlers.Ledger.HasClaimedTemplateHandler)
	v1.GET("/owners/:address/sessions/:id/claimed", handlers.Ledger.HasClaimedSessionHandler)

	v1.GET("/events", handlers.Events.ListHandler)
	v1.GET("/events/stream", handlers.Events.StreamHandler)

	// Authenticated endpoints
	authed := v1.Group("")
	authed.Use(authHTTP.AuthenticationMiddleware(tokenService, s.logger))
	if cfg.RateLimitEnabled {
		authed.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	admin := authed.Group("/admin")
	{
		admin.POST("/issuers", handlers.Registry.AddIssuerHandler)
		admin.PUT("/issuers/:address", handlers.Registry.UpdateIssuerHandler)
		admin.DELETE("/issuers/:address", handlers.Registry.RemoveIssuerHandler)
		admin.POST("/pause", handlers.Registry.PauseHandler)
		admin.POST("/unpause", handlers.Registry.UnpauseHandler)
		admin.POST("/transfer", handlers.Registry.TransferAdminHandler)
	}

	authed.POST("/templates", handlers.Template.CreateHandler)
	authed.PUT("/templates/:id", handlers.Template.UpdateHandler)
	authed.POST("/templates/:id/deactivate", handlers.Template.DeactivateHandler)
	authed.POST("/templates/:id/reactivate", handlers.Template.ReactivateHandler)
	authed.POST("/templates/:id/mint", handlers.Ledger.MintFromTemplateHandler)

	authed.POST("/sessions", handlers.Session.CreateHandler)
	authed.POST("/sessions/:id/end", handlers.Session.EndHandler)
	authed.POST("/sessions/:id/mint", handlers.Ledger.MintFromSessionHandler)
	authed.POST("/sessions/:id/batch-mint", handlers.Ledger.BatchMintFromSessionHandler)

	claimHandlers := []gin.HandlerFunc{}
	if cfg.RateLimitIPEnabled {
		claimHandlers = append(claimHandlers,
			authHTTP.IPRateLimitMiddleware(cfg.RateLimitIPRequestsPerSec, cfg.RateLimitIPBurst, s.logger))
	}
	claimHandlers = append(claimHandlers, handlers.Ledger.ClaimFromSessionHandler)
	authed.POST("/sessions/:id/claim", claimHandlers...)

	authed.POST("/tokens/:id/revoke", handlers.Ledger.RevokeHandler)
	authed.POST("/tokens/:id/transfer", handlers.Ledger.TransferHandler)
	authed.POST("/tokens/:id/approve", handlers.Ledger.ApproveHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves the router until Shutdown is called.
func (s *Server) Start(_ context.Context) error {
	s.server.Handler = s.router
	return listenAndServe(s.server, "http server", s.logger)
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the storage backend answers.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := http.StatusOK

	switch {
	case s.memoryStorage:
		components["database"] = "memory"
	case s.db == nil:
		components["database"] = "error"
		status = http.StatusServiceUnavailable
	default:
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.String("error", err.Error()))
			components["database"] = "error"
			status = http.StatusServiceUnavailable
		} else {
			components["database"] = "ok"
		}
	}

	if status != http.StatusOK {
		c.JSON(status, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(status, gin.H{"status": "ready", "components": components})
}
