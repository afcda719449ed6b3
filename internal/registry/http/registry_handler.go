// Package http provides HTTP handlers for the Issuer Registry: public issuer lookups and the
// administrator endpoints for issuer management, pausing and admin transfer.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/soulbound/internal/auth/http"
	"github.com/allisson/soulbound/internal/httputil"
	"github.com/allisson/soulbound/internal/identity"
	"github.com/allisson/soulbound/internal/registry/http/dto"
	registryUseCase "github.com/allisson/soulbound/internal/registry/usecase"
	customValidation "github.com/allisson/soulbound/internal/validation"
)

// RegistryHandler handles HTTP requests for the Issuer Registry.
type RegistryHandler struct {
	registryUseCase registryUseCase.RegistryUseCase
	logger          *slog.Logger
}

// NewRegistryHandler creates a new registry handler.
func NewRegistryHandler(registryUseCase registryUseCase.RegistryUseCase, logger *slog.Logger) *RegistryHandler {
	return &RegistryHandler{
		registryUseCase: registryUseCase,
		logger:          logger,
	}
}

// AddIssuerHandler authorizes an issuer.
// POST /v1/admin/issuers - administrator only.
func (h *RegistryHandler) AddIssuerHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	var req dto.AddIssuerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	issuer, err := h.registryUseCase.AddIssuer(c.Request.Context(), caller, registryUseCase.IssuerInput{
		Address:      req.Address,
		Name:         req.Name,
		Organization: req.Organization,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssuerToResponse(issuer))
}

// UpdateIssuerHandler changes an issuer's name and organization.
// PUT /v1/admin/issuers/:address - administrator only.
func (h *RegistryHandler) UpdateIssuerHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	var req dto.UpdateIssuerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	issuer, err := h.registryUseCase.UpdateIssuer(c.Request.Context(), caller, registryUseCase.IssuerInput{
		Address:      identity.Normalize(c.Param("address")),
		Name:         req.Name,
		Organization: req.Organization,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIssuerToResponse(issuer))
}

// RemoveIssuerHandler deauthorizes an issuer.
// DELETE /v1/admin/issuers/:address - administrator only. Returns 204 No Content.
func (h *RegistryHandler) RemoveIssuerHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	address := identity.Normalize(c.Param("address"))
	if err := h.registryUseCase.RemoveIssuer(c.Request.Context(), caller, address); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// PauseHandler pauses every mutating operation.
// POST /v1/admin/pause - administrator only.
func (h *RegistryHandler) PauseHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}
	if err := h.registryUseCase.Pause(c.Request.Context(), caller); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	h.respondState(c)
}

// UnpauseHandler resumes mutating operations.
// POST /v1/admin/unpause - administrator only.
func (h *RegistryHandler) UnpauseHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}
	if err := h.registryUseCase.Unpause(c.Request.Context(), caller); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	h.respondState(c)
}

// TransferAdminHandler hands the administrator role to another identity.
// POST /v1/admin/transfer - administrator only.
func (h *RegistryHandler) TransferAdminHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	var req dto.TransferAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.registryUseCase.TransferAdmin(c.Request.Context(), caller, req.NewAdmin); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	h.respondState(c)
}

// GetStateHandler returns the administrator and pause flag.
// GET /v1/registry
func (h *RegistryHandler) GetStateHandler(c *gin.Context) {
	h.respondState(c)
}

// ListIssuersHandler lists authorized issuers.
// GET /v1/issuers?offset=0&limit=50
func (h *RegistryHandler) ListIssuersHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	issuers, err := h.registryUseCase.ListIssuers(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	total, err := h.registryUseCase.CountIssuers(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIssuersToListResponse(issuers, total))
}

// GetIssuerHandler returns an issuer record, including deauthorized ones.
// GET /v1/issuers/:address
func (h *RegistryHandler) GetIssuerHandler(c *gin.Context) {
	issuer, err := h.registryUseCase.GetIssuer(c.Request.Context(), identity.Normalize(c.Param("address")))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapIssuerToResponse(issuer))
}

// IsAuthorizedHandler reports whether an identity is an authorized issuer.
// GET /v1/issuers/:address/authorized
func (h *RegistryHandler) IsAuthorizedHandler(c *gin.Context) {
	address := identity.Normalize(c.Param("address"))
	authorized, err := h.registryUseCase.IsAuthorizedIssuer(c.Request.Context(), address)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.AuthorizedResponse{Address: address, Authorized: authorized})
}

func (h *RegistryHandler) respondState(c *gin.Context) {
	state, err := h.registryUseCase.GetState(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapStateToResponse(state))
}
