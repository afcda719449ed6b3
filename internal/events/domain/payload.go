package domain

import "time"

// IssuerPayload is carried by IssuerAdded, IssuerRemoved and IssuerUpdated.
type IssuerPayload struct {
	Issuer       string `json:"issuer"`
	Name         string `json:"name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Actor        string `json:"actor"`
}

// AdminTransferredPayload is carried by AdminTransferred.
type AdminTransferredPayload struct {
	PreviousAdmin string `json:"previous_admin"`
	NewAdmin      string `json:"new_admin"`
}

// PausePayload is carried by Paused and Unpaused.
type PausePayload struct {
	Actor string `json:"actor"`
}

// TemplatePayload is carried by the Template* events.
type TemplatePayload struct {
	TemplateID  int64  `json:"template_id"`
	Issuer      string `json:"issuer"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// SessionCreatedPayload is carried by SessionCreated.
type SessionCreatedPayload struct {
	SessionID  string    `json:"session_id"`
	TemplateID int64     `json:"template_id"`
	Issuer     string    `json:"issuer"`
	MaxMints   int64     `json:"max_mints"`
	ExpiresAt  time.Time `json:"expires_at"`
	Title      string    `json:"title,omitempty"`
}

// SessionEndedPayload is carried by SessionEnded.
type SessionEndedPayload struct {
	SessionID string `json:"session_id"`
	Issuer    string `json:"issuer"`
}

// SessionMintIncrementedPayload is carried by SessionMintIncremented.
type SessionMintIncrementedPayload struct {
	SessionID    string `json:"session_id"`
	CurrentMints int64  `json:"current_mints"`
	MaxMints     int64  `json:"max_mints"`
}

// TokenMintedPayload is carried by TokenMinted.
type TokenMintedPayload struct {
	TokenID    int64   `json:"token_id"`
	Owner      string  `json:"owner"`
	Issuer     string  `json:"issuer"`
	TemplateID int64   `json:"template_id"`
	SessionID  *string `json:"session_id,omitempty"`
}

// TokenRevokedPayload is carried by TokenRevoked.
type TokenRevokedPayload struct {
	TokenID   int64  `json:"token_id"`
	Owner     string `json:"owner"`
	RevokedBy string `json:"revoked_by"`
}

// BatchMintedPayload is carried by BatchMinted.
type BatchMintedPayload struct {
	SessionID  string   `json:"session_id"`
	Issuer     string   `json:"issuer"`
	TokenIDs   []int64  `json:"token_ids"`
	Recipients []string `json:"recipients"`
}
