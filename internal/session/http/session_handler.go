// Package http provides HTTP handlers for the Session Manager.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/soulbound/internal/auth/http"
	"github.com/allisson/soulbound/internal/httputil"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
	"github.com/allisson/soulbound/internal/session/http/dto"
	sessionUseCase "github.com/allisson/soulbound/internal/session/usecase"
	customValidation "github.com/allisson/soulbound/internal/validation"
)

// SessionHandler handles HTTP requests for claim sessions.
type SessionHandler struct {
	sessionUseCase sessionUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionUseCase sessionUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// CreateHandler opens a claim session over one of the caller's templates.
// POST /v1/sessions - owning issuer only. Returns 201 Created.
func (h *SessionHandler) CreateHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.sessionUseCase.Create(c.Request.Context(), caller, sessionUseCase.CreateInput{
		TemplateID: req.TemplateID,
		MaxMints:   req.MaxMints,
		Duration:   req.Duration(),
		Title:      req.Title,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSessionToResponse(session))
}

// EndHandler ends a session.
// POST /v1/sessions/:id/end - creating issuer only.
func (h *SessionHandler) EndHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionUseCase.End(c.Request.Context(), caller, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// GetHandler returns a session.
// GET /v1/sessions/:id
func (h *SessionHandler) GetHandler(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// IsClaimableHandler reports whether a session admits another mint.
// GET /v1/sessions/:id/claimable
func (h *SessionHandler) IsClaimableHandler(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	claimable, err := h.sessionUseCase.IsClaimable(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ClaimableResponse{ID: id, Claimable: claimable})
}

// StatsHandler returns the capacity and remaining time of a session.
// GET /v1/sessions/:id/stats
func (h *SessionHandler) StatsHandler(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	stats, err := h.sessionUseCase.Stats(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatsToResponse(stats))
}

// ListByTemplateHandler lists the sessions opened over a template.
// GET /v1/templates/:id/sessions?offset=0&limit=50
func (h *SessionHandler) ListByTemplateHandler(c *gin.Context) {
	templateID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	sessions, err := h.sessionUseCase.ListByTemplate(c.Request.Context(), templateID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionsToListResponse(sessions))
}

func (h *SessionHandler) sessionID(c *gin.Context) (string, bool) {
	id := sessionDomain.NormalizeID(c.Param("id"))
	if !sessionDomain.IsValidID(id) {
		httputil.HandleValidationErrorGin(c, sessionDomain.ErrInvalidSessionID, h.logger)
		return "", false
	}
	return id, true
}
