// Package domain defines soulbound credential tokens and the claim markers that keep a
// recipient from holding two live credentials for one template or session.
package domain

import (
	"time"
)

// Status is the lifecycle state of a token. Revocation is a soft state change; tokens are
// never removed.
type Status string

// Token statuses.
const (
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// Token is an issued credential. Name and Description are copied from the template at mint
// time and never follow later template edits.
type Token struct {
	ID          int64
	Owner       string
	Name        string
	Description string
	Issuer      string
	TemplateID  int64
	SessionID   *string
	Status      Status
	MintedAt    time.Time
	RevokedAt   *time.Time
	RevokedBy   *string
}

// IsRevoked reports whether the token has been revoked.
func (t *Token) IsRevoked() bool {
	return t.Status == StatusRevoked
}

// Revoke marks the token revoked by actor at now.
func (t *Token) Revoke(actor string, now time.Time) {
	t.Status = StatusRevoked
	t.RevokedAt = &now
	t.RevokedBy = &actor
}

// TemplateClaim records that Owner holds the live token TokenID for TemplateID.
type TemplateClaim struct {
	Owner      string
	TemplateID int64
	TokenID    int64
}

// SessionClaim records that Owner holds the live token TokenID minted through SessionID.
type SessionClaim struct {
	Owner     string
	SessionID string
	TokenID   int64
}
