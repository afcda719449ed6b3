package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/soulbound/internal/identity"
	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
	"github.com/allisson/soulbound/internal/ledger/http/dto"
	"github.com/allisson/soulbound/internal/ledger/usecase/mocks"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
)

const (
	issuerAddr = "0x00000000000000000000000000000000000000a1"
	userAddr   = "0x0000000000000000000000000000000000000001"
	otherAddr  = "0x0000000000000000000000000000000000000002"
	sessionID  = "0x1111111111111111111111111111111111111111111111111111111111111111"
)

func setupTestHandler(t *testing.T) (*LedgerHandler, *mocks.MockLedgerUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockUseCase := mocks.NewMockLedgerUseCase(t)
	return NewLedgerHandler(mockUseCase, testLogger()), mockUseCase
}

func sampleToken(owner string) *ledgerDomain.Token {
	return &ledgerDomain.Token{
		ID: 1, Owner: owner, Name: "Workshop", Description: "Attended", Issuer: issuerAddr,
		TemplateID: 1, Status: ledgerDomain.StatusActive, MintedAt: time.Now().UTC(),
	}
}

func TestLedgerHandler_MintFromTemplateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("MintFromTemplate", mock.Anything, issuerAddr, userAddr, int64(1)).
			Return(sampleToken(userAddr), nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/templates/1/mint", issuerAddr, dto.MintRequest{Recipient: userAddr})
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.MintFromTemplateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, userAddr, response.Owner)
		assert.Equal(t, "active", response.Status)
		assert.Nil(t, response.SessionID)
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/templates/1/mint", "", dto.MintRequest{Recipient: userAddr})
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.MintFromTemplateHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_InvalidRecipient", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/templates/1/mint", issuerAddr, dto.MintRequest{Recipient: identity.Zero})
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.MintFromTemplateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_AlreadyClaimed", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("MintFromTemplate", mock.Anything, issuerAddr, userAddr, int64(1)).
			Return(nil, ledgerDomain.ErrAlreadyClaimedTemplate).Once()

		c, w := createTestContext(http.MethodPost, "/v1/templates/1/mint", issuerAddr, dto.MintRequest{Recipient: userAddr})
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.MintFromTemplateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_NotAuthorizedIssuer", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("MintFromTemplate", mock.Anything, otherAddr, userAddr, int64(1)).
			Return(nil, registryDomain.ErrNotAuthorizedIssuer).Once()

		c, w := createTestContext(http.MethodPost, "/v1/templates/1/mint", otherAddr, dto.MintRequest{Recipient: userAddr})
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.MintFromTemplateHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLedgerHandler_SessionMints(t *testing.T) {
	t.Run("Success_MintFromSession", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		token := sampleToken(userAddr)
		sid := sessionID
		token.SessionID = &sid
		mockUseCase.On("MintFromSession", mock.Anything, issuerAddr, userAddr, sessionID).Return(token, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sessions/x/mint", issuerAddr, dto.MintRequest{Recipient: userAddr})
		c.Params = gin.Params{{Key: "id", Value: sessionID}}
		handler.MintFromSessionHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.SessionID)
		assert.Equal(t, sessionID, *response.SessionID)
	})

	t.Run("Success_Claim", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("ClaimFromSession", mock.Anything, userAddr, sessionID).Return(sampleToken(userAddr), nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sessions/x/claim", userAddr, nil)
		c.Params = gin.Params{{Key: "id", Value: sessionID}}
		handler.ClaimFromSessionHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Error_ClaimSessionFull", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("ClaimFromSession", mock.Anything, userAddr, sessionID).Return(nil, sessionDomain.ErrSessionFull).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sessions/x/claim", userAddr, nil)
		c.Params = gin.Params{{Key: "id", Value: sessionID}}
		handler.ClaimFromSessionHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_ClaimWhilePaused", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("ClaimFromSession", mock.Anything, userAddr, sessionID).Return(nil, registryDomain.ErrRegistryPaused).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sessions/x/claim", userAddr, nil)
		c.Params = gin.Params{{Key: "id", Value: sessionID}}
		handler.ClaimFromSessionHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Error_MalformedSessionID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/sessions/x/claim", userAddr, nil)
		c.Params = gin.Params{{Key: "id", Value: "0x12"}}
		handler.ClaimFromSessionHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestLedgerHandler_BatchMintFromSessionHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		recipients := []string{userAddr, otherAddr}
		first, second := sampleToken(userAddr), sampleToken(otherAddr)
		second.ID = 2
		mockUseCase.On("BatchMintFromSession", mock.Anything, issuerAddr, recipients, sessionID).
			Return([]*ledgerDomain.Token{first, second}, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sessions/x/batch-mint", issuerAddr, dto.BatchMintRequest{Recipients: recipients})
		c.Params = gin.Params{{Key: "id", Value: sessionID}}
		handler.BatchMintFromSessionHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.BatchMintResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, otherAddr, response.Data[1].Owner)
	})

	t.Run("Error_DuplicateRecipients", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/sessions/x/batch-mint", issuerAddr, dto.BatchMintRequest{
			Recipients: []string{userAddr, userAddr},
		})
		c.Params = gin.Params{{Key: "id", Value: sessionID}}
		handler.BatchMintFromSessionHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InsufficientCapacity", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		recipients := []string{userAddr, otherAddr}
		mockUseCase.On("BatchMintFromSession", mock.Anything, issuerAddr, recipients, sessionID).
			Return(nil, sessionDomain.ErrInsufficientCapacity).Once()

		c, w := createTestContext(http.MethodPost, "/v1/sessions/x/batch-mint", issuerAddr, dto.BatchMintRequest{Recipients: recipients})
		c.Params = gin.Params{{Key: "id", Value: sessionID}}
		handler.BatchMintFromSessionHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLedgerHandler_RevokeHandler(t *testing.T) {
	t.Run("Success_Revoked", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		token := sampleToken(userAddr)
		token.Revoke(issuerAddr, time.Now().UTC())
		mockUseCase.On("Revoke", mock.Anything, issuerAddr, int64(1)).Return(token, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/tokens/1/revoke", issuerAddr, nil)
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.RevokeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "revoked", response.Status)
		require.NotNil(t, response.RevokedBy)
		assert.Equal(t, issuerAddr, *response.RevokedBy)
	})

	t.Run("Error_NotIssuer", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Revoke", mock.Anything, otherAddr, int64(1)).Return(nil, ledgerDomain.ErrNotTokenIssuer).Once()

		c, w := createTestContext(http.MethodPost, "/v1/tokens/1/revoke", otherAddr, nil)
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.RevokeHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/tokens/abc/revoke", issuerAddr, nil)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		handler.RevokeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestLedgerHandler_NonTransferable(t *testing.T) {
	t.Run("Error_Transfer", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Transfer", mock.Anything, userAddr, int64(1), otherAddr).Return(ledgerDomain.ErrNonTransferable).Once()

		c, w := createTestContext(http.MethodPost, "/v1/tokens/1/transfer", userAddr, dto.TransferRequest{To: otherAddr})
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.TransferHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_ApproveWithoutBody", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Approve", mock.Anything, userAddr, int64(1), "").Return(ledgerDomain.ErrNonTransferable).Once()

		c, w := createTestContext(http.MethodPost, "/v1/tokens/1/approve", userAddr, nil)
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.ApproveHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLedgerHandler_Readers(t *testing.T) {
	t.Run("Success_GetBasic", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Get", mock.Anything, int64(1)).Return(sampleToken(userAddr), nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/tokens/1/basic", "", nil)
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.GetBasicHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"owner":"`+userAddr+`","template_id":1,"issuer":"`+issuerAddr+`"}`, w.Body.String())
	})

	t.Run("Error_GetNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Get", mock.Anything, int64(9)).Return(nil, ledgerDomain.ErrTokenNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/tokens/9", "", nil)
		c.Params = gin.Params{{Key: "id", Value: "9"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success_OwnerOf", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("OwnerOf", mock.Anything, int64(1)).Return(userAddr, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/tokens/1/owner", "", nil)
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.OwnerOfHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token_id":1,"owner":"`+userAddr+`"}`, w.Body.String())
	})

	t.Run("Success_GetApproved", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("GetApproved", mock.Anything, int64(1)).Return(identity.Zero, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/tokens/1/approved", "", nil)
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		handler.GetApprovedHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token_id":1,"approved":"`+identity.Zero+`"}`, w.Body.String())
	})

	t.Run("Success_ListAndBalanceNormalizeAddress", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		upper := "0x00000000000000000000000000000000000000AB"
		lower := identity.Normalize(upper)
		mockUseCase.On("ListByOwner", mock.Anything, lower, 0, 50).Return([]*ledgerDomain.Token{sampleToken(lower)}, nil).Once()
		mockUseCase.On("BalanceOf", mock.Anything, lower).Return(int64(1), nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/owners/x/tokens", "", nil)
		c.Params = gin.Params{{Key: "address", Value: upper}}
		handler.ListByOwnerHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var list dto.ListTokensResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list.Data, 1)

		c, w = createTestContext(http.MethodGet, "/v1/owners/x/balance", "", nil)
		c.Params = gin.Params{{Key: "address", Value: upper}}
		handler.BalanceOfHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"owner":"`+lower+`","balance":1}`, w.Body.String())
	})

	t.Run("Success_IsApprovedForAll", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("IsApprovedForAll", mock.Anything, userAddr, otherAddr).Return(false, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/owners/x/approvals/y", "", nil)
		c.Params = gin.Params{{Key: "address", Value: userAddr}, {Key: "operator", Value: otherAddr}}
		handler.IsApprovedForAllHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ApprovalForAllResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Approved)
	})

	t.Run("Success_ClaimAccessors", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("HasClaimedTemplate", mock.Anything, userAddr, int64(1)).Return(true, nil).Once()
		mockUseCase.On("HasClaimedSession", mock.Anything, userAddr, sessionID).Return(false, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/owners/x/templates/1/claimed", "", nil)
		c.Params = gin.Params{{Key: "address", Value: userAddr}, {Key: "id", Value: "1"}}
		handler.HasClaimedTemplateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"owner":"`+userAddr+`","template_id":1,"claimed":true}`, w.Body.String())

		c, w = createTestContext(http.MethodGet, "/v1/owners/x/sessions/y/claimed", "", nil)
		c.Params = gin.Params{{Key: "address", Value: userAddr}, {Key: "id", Value: sessionID}}
		handler.HasClaimedSessionHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"owner":"`+userAddr+`","session_id":"`+sessionID+`","claimed":false}`, w.Body.String())
	})
}
