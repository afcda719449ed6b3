// Package http provides HTTP handlers for the Token Ledger.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/soulbound/internal/auth/http"
	"github.com/allisson/soulbound/internal/httputil"
	"github.com/allisson/soulbound/internal/identity"
	"github.com/allisson/soulbound/internal/ledger/http/dto"
	ledgerUseCase "github.com/allisson/soulbound/internal/ledger/usecase"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
	customValidation "github.com/allisson/soulbound/internal/validation"
)

// LedgerHandler handles HTTP requests for credential issuance, revocation and lookups.
type LedgerHandler struct {
	ledgerUseCase ledgerUseCase.LedgerUseCase
	logger        *slog.Logger
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(ledgerUseCase ledgerUseCase.LedgerUseCase, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerUseCase: ledgerUseCase,
		logger:        logger,
	}
}

// MintFromTemplateHandler issues a credential directly from a template.
// POST /v1/templates/:id/mint - owning issuer only. Returns 201 Created.
func (h *LedgerHandler) MintFromTemplateHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	templateID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	req, ok := h.bindMintRequest(c)
	if !ok {
		return
	}

	token, err := h.ledgerUseCase.MintFromTemplate(c.Request.Context(), caller, req.Recipient, templateID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokenToResponse(token))
}

// MintFromSessionHandler issues a credential to a recipient through a session.
// POST /v1/sessions/:id/mint - session issuer only. Returns 201 Created.
func (h *LedgerHandler) MintFromSessionHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	req, ok := h.bindMintRequest(c)
	if !ok {
		return
	}

	token, err := h.ledgerUseCase.MintFromSession(c.Request.Context(), caller, req.Recipient, sessionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokenToResponse(token))
}

// ClaimFromSessionHandler issues a credential to the caller from a claimable session.
// POST /v1/sessions/:id/claim - any authenticated caller. Returns 201 Created.
func (h *LedgerHandler) ClaimFromSessionHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	token, err := h.ledgerUseCase.ClaimFromSession(c.Request.Context(), caller, sessionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokenToResponse(token))
}

// BatchMintFromSessionHandler issues one credential per recipient; the batch is all or nothing.
// POST /v1/sessions/:id/batch-mint - session issuer only. Returns 201 Created.
func (h *LedgerHandler) BatchMintFromSessionHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req dto.BatchMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	tokens, err := h.ledgerUseCase.BatchMintFromSession(c.Request.Context(), caller, req.Recipients, sessionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokensToBatchResponse(tokens))
}

// RevokeHandler revokes a credential.
// POST /v1/tokens/:id/revoke - original issuer or administrator.
func (h *LedgerHandler) RevokeHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	tokenID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	token, err := h.ledgerUseCase.Revoke(c.Request.Context(), caller, tokenID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenToResponse(token))
}

// TransferHandler always fails: credentials are non-transferable.
// POST /v1/tokens/:id/transfer
func (h *LedgerHandler) TransferHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	tokenID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// The body is optional; the transfer is refused whatever it holds.
	var req dto.TransferRequest
	_ = c.ShouldBindJSON(&req)

	err = h.ledgerUseCase.Transfer(c.Request.Context(), caller, tokenID, identity.Normalize(req.To))
	httputil.HandleErrorGin(c, err, h.logger)
}

// ApproveHandler always fails: credentials cannot be delegated.
// POST /v1/tokens/:id/approve
func (h *LedgerHandler) ApproveHandler(c *gin.Context) {
	caller, ok := authHTTP.RequireCaller(c, h.logger)
	if !ok {
		return
	}

	tokenID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.ApproveRequest
	_ = c.ShouldBindJSON(&req)

	err = h.ledgerUseCase.Approve(c.Request.Context(), caller, tokenID, identity.Normalize(req.Operator))
	httputil.HandleErrorGin(c, err, h.logger)
}

// GetHandler returns a credential with its frozen text.
// GET /v1/tokens/:id
func (h *LedgerHandler) GetHandler(c *gin.Context) {
	tokenID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	token, err := h.ledgerUseCase.Get(c.Request.Context(), tokenID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenToResponse(token))
}

// GetBasicHandler returns the reduced view of a credential.
// GET /v1/tokens/:id/basic
func (h *LedgerHandler) GetBasicHandler(c *gin.Context) {
	tokenID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	token, err := h.ledgerUseCase.Get(c.Request.Context(), tokenID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenToBasicResponse(token))
}

// OwnerOfHandler returns the holder of a credential.
// GET /v1/tokens/:id/owner
func (h *LedgerHandler) OwnerOfHandler(c *gin.Context) {
	tokenID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	owner, err := h.ledgerUseCase.OwnerOf(c.Request.Context(), tokenID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.OwnerResponse{TokenID: tokenID, Owner: owner})
}

// GetApprovedHandler returns the approved operator of a credential, always the zero address.
// GET /v1/tokens/:id/approved
func (h *LedgerHandler) GetApprovedHandler(c *gin.Context) {
	tokenID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	approved, err := h.ledgerUseCase.GetApproved(c.Request.Context(), tokenID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ApprovedResponse{TokenID: tokenID, Approved: approved})
}

// ListByOwnerHandler lists every credential ever issued to an owner, revoked ones included.
// GET /v1/owners/:address/tokens?offset=0&limit=50
func (h *LedgerHandler) ListByOwnerHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	tokens, err := h.ledgerUseCase.ListByOwner(c.Request.Context(), identity.Normalize(c.Param("address")), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokensToListResponse(tokens))
}

// BalanceOfHandler counts the active credentials of an owner.
// GET /v1/owners/:address/balance
func (h *LedgerHandler) BalanceOfHandler(c *gin.Context) {
	owner := identity.Normalize(c.Param("address"))

	balance, err := h.ledgerUseCase.BalanceOf(c.Request.Context(), owner)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Owner: owner, Balance: balance})
}

// IsApprovedForAllHandler answers operator approval, always false.
// GET /v1/owners/:address/approvals/:operator
func (h *LedgerHandler) IsApprovedForAllHandler(c *gin.Context) {
	owner := identity.Normalize(c.Param("address"))
	operator := identity.Normalize(c.Param("operator"))

	approved, err := h.ledgerUseCase.IsApprovedForAll(c.Request.Context(), owner, operator)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ApprovalForAllResponse{Owner: owner, Operator: operator, Approved: approved})
}

// HasClaimedTemplateHandler reports whether an owner holds an active claim on a template.
// GET /v1/owners/:address/templates/:id/claimed
func (h *LedgerHandler) HasClaimedTemplateHandler(c *gin.Context) {
	templateID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	owner := identity.Normalize(c.Param("address"))

	claimed, err := h.ledgerUseCase.HasClaimedTemplate(c.Request.Context(), owner, templateID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.TemplateClaimResponse{Owner: owner, TemplateID: templateID, Claimed: claimed})
}

// HasClaimedSessionHandler reports whether an owner holds an active claim through a session.
// GET /v1/owners/:address/sessions/:id/claimed
func (h *LedgerHandler) HasClaimedSessionHandler(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	owner := identity.Normalize(c.Param("address"))

	claimed, err := h.ledgerUseCase.HasClaimedSession(c.Request.Context(), owner, sessionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SessionClaimResponse{Owner: owner, SessionID: sessionID, Claimed: claimed})
}

func (h *LedgerHandler) sessionID(c *gin.Context) (string, bool) {
	id := sessionDomain.NormalizeID(c.Param("id"))
	if !sessionDomain.IsValidID(id) {
		httputil.HandleValidationErrorGin(c, sessionDomain.ErrInvalidSessionID, h.logger)
		return "", false
	}
	return id, true
}

func (h *LedgerHandler) bindMintRequest(c *gin.Context) (*dto.MintRequest, bool) {
	var req dto.MintRequest
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
