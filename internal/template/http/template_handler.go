// Package http provides HTTP handlers for the Template Store.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/soulbound/internal/auth/http"
	"github.com/allisson/soulbound/internal/httputil"
	"github.com/allisson/soulbound/internal/identity"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
	"github.com/allisson/soulbound/internal/template/http/dto"
	templateUseCase "github.com/allisson/soulbound/internal/template/usecase"
	customValidation "github.com/allisson/soulbound/internal/validation"
)

type toggleFunc func(ctx context.Context, caller string, id int64) (*templateDomain.Template, error)

// TemplateHandler handles HTTP requests for credential templates.
type TemplateHandler struct {
	templateUseCase templateUseCase.TemplateUseCase
	logger          *slog.Logger
}

// NewTemplateHandler creates a new template handler.
func NewTemplateHandler(templateUseCase templateUseCase.TemplateUseCase, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateUseCase: templateUseCase,
		logger:          logger,
	}
}

// CreateHandler creates a template owned by the caller.
// POST /v1/templates - authorized issuers only. Returns 201 Created.
func (h *TemplateHandler) CreateHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	template, err := h.templateUseCase.Create(c.Request.Context(), caller, templateUseCase.TemplateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTemplateToResponse(template))
}

// UpdateHandler edits the text of an active template.
// PUT /v1/templates/:id - owning issuer only.
func (h *TemplateHandler) UpdateHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	template, err := h.templateUseCase.Update(c.Request.Context(), caller, id, templateUseCase.TemplateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTemplateToResponse(template))
}

// DeactivateHandler deactivates a template.
// POST /v1/templates/:id/deactivate - owning issuer only.
func (h *TemplateHandler) DeactivateHandler(c *gin.Context) {
	h.toggle(c, h.templateUseCase.Deactivate)
}

// ReactivateHandler reactivates a template.
// POST /v1/templates/:id/reactivate - owning issuer only.
func (h *TemplateHandler) ReactivateHandler(c *gin.Context) {
	h.toggle(c, h.templateUseCase.Reactivate)
}

// GetHandler returns a template.
// GET /v1/templates/:id
func (h *TemplateHandler) GetHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	template, err := h.templateUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTemplateToResponse(template))
}

// IsActiveHandler reports whether a template is active; unknown templates are inactive.
// GET /v1/templates/:id/active
func (h *TemplateHandler) IsActiveHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	active, err := h.templateUseCase.IsActive(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ActiveResponse{ID: id, Active: active})
}

// ListByIssuerHandler lists the templates owned by an issuer.
// GET /v1/issuers/:address/templates?offset=0&limit=50
func (h *TemplateHandler) ListByIssuerHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	templates, err := h.templateUseCase.ListByIssuer(
		c.Request.Context(),
		identity.Normalize(c.Param("address")),
		offset,
		limit,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTemplatesToListResponse(templates))
}

func (h *TemplateHandler) toggle(c *gin.Context, apply toggleFunc) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	template, err := apply(c.Request.Context(), caller, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTemplateToResponse(template))
}

func (h *TemplateHandler) bindRequest(c *gin.Context) (*dto.TemplateRequest, bool) {
	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return nil, false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}
	return &req, true
}
