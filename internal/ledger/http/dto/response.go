package dto

import (
	"time"

	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
)

// TokenResponse represents a credential in API responses.
type TokenResponse struct {
	ID          int64      `json:"id"`
	Owner       string     `json:"owner"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Issuer      string     `json:"issuer"`
	TemplateID  int64      `json:"template_id"`
	SessionID   *string    `json:"session_id,omitempty"`
	Status      string     `json:"status"`
	MintedAt    time.Time  `json:"minted_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	RevokedBy   *string    `json:"revoked_by,omitempty"`
}

// BasicTokenResponse is the reduced view of a credential: owner, template and issuer.
type BasicTokenResponse struct {
	ID         int64  `json:"id"`
	Owner      string `json:"owner"`
	TemplateID int64  `json:"template_id"`
	Issuer     string `json:"issuer"`
}

// ListTokensResponse represents a page of credentials.
type ListTokensResponse struct {
	Data []TokenResponse `json:"data"`
}

// BatchMintResponse lists the credentials issued by a batch mint, in request order.
type BatchMintResponse struct {
	Data []TokenResponse `json:"data"`
}

// OwnerResponse answers ownerOf.
type OwnerResponse struct {
	TokenID int64  `json:"token_id"`
	Owner   string `json:"owner"`
}

// ApprovedResponse answers getApproved; it always carries the zero address.
type ApprovedResponse struct {
	TokenID  int64  `json:"token_id"`
	Approved string `json:"approved"`
}

// BalanceResponse answers balanceOf.
type BalanceResponse struct {
	Owner   string `json:"owner"`
	Balance int64  `json:"balance"`
}

// ApprovalForAllResponse answers isApprovedForAll; it is always false.
type ApprovalForAllResponse struct {
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

// TemplateClaimResponse answers whether an owner has claimed a template.
type TemplateClaimResponse struct {
	Owner      string `json:"owner"`
	TemplateID int64  `json:"template_id"`
	Claimed    bool   `json:"claimed"`
}

// SessionClaimResponse answers whether an owner has claimed through a session.
type SessionClaimResponse struct {
	Owner     string `json:"owner"`
	SessionID string `json:"session_id"`
	Claimed   bool   `json:"claimed"`
}

// MapTokenToResponse converts a domain token to an API response.
func MapTokenToResponse(token *ledgerDomain.Token) TokenResponse {
	return TokenResponse{
		ID:          token.ID,
		Owner:       token.Owner,
		Name:        token.Name,
		Description: token.Description,
		Issuer:      token.Issuer,
		TemplateID:  token.TemplateID,
		SessionID:   token.SessionID,
		Status:      string(token.Status),
		MintedAt:    token.MintedAt,
		RevokedAt:   token.RevokedAt,
		RevokedBy:   token.RevokedBy,
	}
}

// MapTokenToBasicResponse converts a domain token to its reduced view.
func MapTokenToBasicResponse(token *ledgerDomain.Token) BasicTokenResponse {
	return BasicTokenResponse{
		ID:         token.ID,
		Owner:      token.Owner,
		TemplateID: token.TemplateID,
		Issuer:     token.Issuer,
	}
}

func mapTokens(tokens []*ledgerDomain.Token) []TokenResponse {
	data := make([]TokenResponse, 0, len(tokens))
	for _, token := range tokens {
		data = append(data, MapTokenToResponse(token))
	}
	return data
}

// MapTokensToListResponse converts domain tokens to a list response.
func MapTokensToListResponse(tokens []*ledgerDomain.Token) ListTokensResponse {
	return ListTokensResponse{Data: mapTokens(tokens)}
}

// MapTokensToBatchResponse converts the tokens of a batch mint to a response.
func MapTokensToBatchResponse(tokens []*ledgerDomain.Token) BatchMintResponse {
	return BatchMintResponse{Data: mapTokens(tokens)}
}
