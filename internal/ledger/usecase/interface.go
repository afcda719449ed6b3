// Package usecase implements the Token Ledger: every mint path, revocation and the read
// accessors over issued credentials.
package usecase

import (
	"context"

	eventsDomain "github.com/allisson/soulbound/internal/events/domain"
	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

// Mint paths, used as metric labels.
const (
	PathTemplate = "template"
	PathSession  = "session"
	PathClaim    = "claim"
	PathBatch    = "batch"
)

// TokenRepository defines the interface for Token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *ledgerDomain.Token) error
	Update(ctx context.Context, token *ledgerDomain.Token) error
	Get(ctx context.Context, id int64) (*ledgerDomain.Token, error)
	GetForUpdate(ctx context.Context, id int64) (*ledgerDomain.Token, error)
	ListByOwner(ctx context.Context, owner string, offset, limit int) ([]*ledgerDomain.Token, error)
	CountActiveByOwner(ctx context.Context, owner string) (int64, error)
}

// ClaimRepository persists the (owner, template) and (owner, session) claim markers. Creating
// a marker that already exists fails with the matching already-claimed error.
type ClaimRepository interface {
	CreateTemplateClaim(ctx context.Context, claim *ledgerDomain.TemplateClaim) error
	CreateSessionClaim(ctx context.Context, claim *ledgerDomain.SessionClaim) error
	DeleteTemplateClaim(ctx context.Context, owner string, templateID int64) error
	DeleteSessionClaim(ctx context.Context, owner string, sessionID string) error
	HasTemplateClaim(ctx context.Context, owner string, templateID int64) (bool, error)
	HasSessionClaim(ctx context.Context, owner string, sessionID string) (bool, error)
}

// Authorizer is the part of the Issuer Registry the Token Ledger depends on.
type Authorizer interface {
	IsAuthorizedIssuer(ctx context.Context, address string) (bool, error)
	IsAdmin(ctx context.Context, address string) (bool, error)
	EnsureNotPaused(ctx context.Context) error
}

// TemplateReader resolves the template a token is minted from.
type TemplateReader interface {
	Get(ctx context.Context, id int64) (*templateDomain.Template, error)
}

// SessionCounter is the part of the Session Manager that mint paths drive. Lock and
// IncrementMintCount must be called inside the mint transaction.
type SessionCounter interface {
	Lock(ctx context.Context, id string) (*sessionDomain.Session, error)
	IncrementMintCount(ctx context.Context, id string) (*sessionDomain.Session, error)
}

// EventRecorder writes an event to the outbox within the current transaction.
type EventRecorder interface {
	Record(ctx context.Context, eventType eventsDomain.Type, payload any) error
}

// Config holds Token Ledger settings.
type Config struct {
	// BatchMaxSize caps the number of recipients of one batch mint.
	BatchMaxSize int
}

// LedgerUseCase defines the interface for Token Ledger business logic.
type LedgerUseCase interface {
	MintFromTemplate(ctx context.Context, caller, recipient string, templateID int64) (*ledgerDomain.Token, error)
	MintFromSession(ctx context.Context, caller, recipient, sessionID string) (*ledgerDomain.Token, error)
	// ClaimFromSession mints to the caller itself. The token's issuer is the session's issuer.
	ClaimFromSession(ctx context.Context, caller, sessionID string) (*ledgerDomain.Token, error)
	// BatchMintFromSession mints to every recipient or to none.
	BatchMintFromSession(ctx context.Context, caller string, recipients []string, sessionID string) ([]*ledgerDomain.Token, error)
	Revoke(ctx context.Context, caller string, tokenID int64) (*ledgerDomain.Token, error)

	// Transfer and Approve always fail with ErrNonTransferable.
	Transfer(ctx context.Context, caller string, tokenID int64, to string) error
	Approve(ctx context.Context, caller string, tokenID int64, operator string) error

	Get(ctx context.Context, tokenID int64) (*ledgerDomain.Token, error)
	ListByOwner(ctx context.Context, owner string, offset, limit int) ([]*ledgerDomain.Token, error)
	BalanceOf(ctx context.Context, owner string) (int64, error)
	OwnerOf(ctx context.Context, tokenID int64) (string, error)
	// GetApproved returns the empty identity for every existing token.
	GetApproved(ctx context.Context, tokenID int64) (string, error)
	IsApprovedForAll(ctx context.Context, owner, operator string) (bool, error)
	HasClaimedTemplate(ctx context.Context, owner string, templateID int64) (bool, error)
	HasClaimedSession(ctx context.Context, owner, sessionID string) (bool, error)
}
