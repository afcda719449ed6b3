// Package usecase implements the Token Ledger. Every mint path runs in one transaction that
// checks the registry, template and session, reserves session capacity, writes the token and
// its claim markers and records the outbox events.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/soulbound/internal/database"
	eventsDomain "github.com/allisson/soulbound/internal/events/domain"
	"github.com/allisson/soulbound/internal/identity"
	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

const defaultBatchMaxSize = 100

// ledgerUseCase implements LedgerUseCase.
type ledgerUseCase struct {
	config     Config
	txManager  database.TxManager
	tokenRepo  TokenRepository
	claimRepo  ClaimRepository
	sequence   database.Sequence
	authorizer Authorizer
	templates  TemplateReader
	sessions   SessionCounter
	recorder   EventRecorder
	now        func() time.Time
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	config Config,
	txManager database.TxManager,
	tokenRepo TokenRepository,
	claimRepo ClaimRepository,
	sequence database.Sequence,
	authorizer Authorizer,
	templates TemplateReader,
	sessions SessionCounter,
	recorder EventRecorder,
) LedgerUseCase {
	if config.BatchMaxSize <= 0 {
		config.BatchMaxSize = defaultBatchMaxSize
	}
	return &ledgerUseCase{
		config:     config,
		txManager:  txManager,
		tokenRepo:  tokenRepo,
		claimRepo:  claimRepo,
		sequence:   sequence,
		authorizer: authorizer,
		templates:  templates,
		sessions:   sessions,
		recorder:   recorder,
		now:        time.Now,
	}
}

// MintFromTemplate issues a credential of one of the caller's active templates to recipient.
func (l *ledgerUseCase) MintFromTemplate(
	ctx context.Context,
	caller, recipient string,
	templateID int64,
) (*ledgerDomain.Token, error) {
	caller = identity.Normalize(caller)
	recipient = identity.Normalize(recipient)
	if err := l.requireIssuer(ctx, caller); err != nil {
		return nil, err
	}
	if !identity.IsUsable(recipient) {
		return nil, ledgerDomain.ErrInvalidRecipient
	}

	var token *ledgerDomain.Token
	err := l.txManager.WithTx(ctx, func(txCtx context.Context) error {
		template, err := l.templates.Get(txCtx, templateID)
		if err != nil {
			return err
		}
		if !template.IsOwnedBy(caller) {
			return templateDomain.ErrNotTemplateOwner
		}
		if !template.Active {
			return templateDomain.ErrTemplateInactive
		}

		token, err = l.issue(txCtx, recipient, caller, template, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// MintFromSession issues a credential through one of the caller's sessions to recipient.
func (l *ledgerUseCase) MintFromSession(
	ctx context.Context,
	caller, recipient, sessionID string,
) (*ledgerDomain.Token, error) {
	caller = identity.Normalize(caller)
	recipient = identity.Normalize(recipient)
	if err := l.requireIssuer(ctx, caller); err != nil {
		return nil, err
	}
	if !identity.IsUsable(recipient) {
		return nil, ledgerDomain.ErrInvalidRecipient
	}

	var token *ledgerDomain.Token
	err := l.txManager.WithTx(ctx, func(txCtx context.Context) error {
		session, template, err := l.openSession(txCtx, sessionID, caller, 1)
		if err != nil {
			return err
		}
		token, err = l.issue(txCtx, recipient, session.Issuer, template, session)
		return err
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// ClaimFromSession lets any caller claim a credential for itself from a claimable session.
func (l *ledgerUseCase) ClaimFromSession(ctx context.Context, caller, sessionID string) (*ledgerDomain.Token, error) {
	caller = identity.Normalize(caller)
	if err := l.authorizer.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}
	if !identity.IsUsable(caller) {
		return nil, ledgerDomain.ErrInvalidRecipient
	}

	var token *ledgerDomain.Token
	err := l.txManager.WithTx(ctx, func(txCtx context.Context) error {
		session, template, err := l.openSession(txCtx, sessionID, "", 1)
		if err != nil {
			return err
		}
		token, err = l.issue(txCtx, caller, session.Issuer, template, session)
		return err
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// BatchMintFromSession issues one credential per recipient through one of the caller's sessions.
// Capacity for the whole batch is checked up front under the session lock, and any failing
// recipient rolls back every mint of the batch.
func (l *ledgerUseCase) BatchMintFromSession(
	ctx context.Context,
	caller string,
	recipients []string,
	sessionID string,
) ([]*ledgerDomain.Token, error) {
	caller = identity.Normalize(caller)
	if err := l.requireIssuer(ctx, caller); err != nil {
		return nil, err
	}
	normalized, err := l.validateBatch(recipients)
	if err != nil {
		return nil, err
	}

	tokens := make([]*ledgerDomain.Token, 0, len(normalized))
	err = l.txManager.WithTx(ctx, func(txCtx context.Context) error {
		session, template, err := l.openSession(txCtx, sessionID, caller, int64(len(normalized)))
		if err != nil {
			return err
		}

		tokenIDs := make([]int64, 0, len(normalized))
		for _, recipient := range normalized {
			token, err := l.issue(txCtx, recipient, session.Issuer, template, session)
			if err != nil {
				return err
			}
			tokens = append(tokens, token)
			tokenIDs = append(tokenIDs, token.ID)
		}

		return l.recorder.Record(txCtx, eventsDomain.BatchMinted, eventsDomain.BatchMintedPayload{
			SessionID:  session.ID,
			Issuer:     session.Issuer,
			TokenIDs:   tokenIDs,
			Recipients: normalized,
		})
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Revoke soft-deletes a token and frees its owner's claim markers. Session capacity already
// consumed by the token stays consumed.
func (l *ledgerUseCase) Revoke(ctx context.Context, caller string, tokenID int64) (*ledgerDomain.Token, error) {
	caller = identity.Normalize(caller)
	if err := l.authorizer.EnsureNotPaused(ctx); err != nil {
		return nil, err
	}

	var token *ledgerDomain.Token
	err := l.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		token, err = l.tokenRepo.GetForUpdate(txCtx, tokenID)
		if err != nil {
			return err
		}
		if token.Issuer != caller {
			isAdmin, err := l.authorizer.IsAdmin(txCtx, caller)
			if err != nil {
				return err
			}
			if !isAdmin {
				return ledgerDomain.ErrNotTokenIssuer
			}
		}
		if token.IsRevoked() {
			return ledgerDomain.ErrTokenAlreadyRevoked
		}

		token.Revoke(caller, l.now().UTC())
		if err := l.tokenRepo.Update(txCtx, token); err != nil {
			return err
		}
		if err := l.claimRepo.DeleteTemplateClaim(txCtx, token.Owner, token.TemplateID); err != nil {
			return err
		}
		if token.SessionID != nil {
			if err := l.claimRepo.DeleteSessionClaim(txCtx, token.Owner, *token.SessionID); err != nil {
				return err
			}
		}

		return l.recorder.Record(txCtx, eventsDomain.TokenRevoked, eventsDomain.TokenRevokedPayload{
			TokenID:   token.ID,
			Owner:     token.Owner,
			RevokedBy: caller,
		})
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Transfer always fails: credentials are bound to their owner.
func (l *ledgerUseCase) Transfer(context.Context, string, int64, string) error {
	return ledgerDomain.ErrNonTransferable
}

// Approve always fails: no one can be approved to act on a credential.
func (l *ledgerUseCase) Approve(context.Context, string, int64, string) error {
	return ledgerDomain.ErrNonTransferable
}

// Get returns a token by id.
func (l *ledgerUseCase) Get(ctx context.Context, tokenID int64) (*ledgerDomain.Token, error) {
	return l.tokenRepo.Get(ctx, tokenID)
}

// ListByOwner returns every token ever issued to owner, revoked ones included, in id order.
func (l *ledgerUseCase) ListByOwner(
	ctx context.Context,
	owner string,
	offset, limit int,
) ([]*ledgerDomain.Token, error) {
	return l.tokenRepo.ListByOwner(ctx, identity.Normalize(owner), offset, limit)
}

// BalanceOf counts the non-revoked tokens of owner.
func (l *ledgerUseCase) BalanceOf(ctx context.Context, owner string) (int64, error) {
	return l.tokenRepo.CountActiveByOwner(ctx, identity.Normalize(owner))
}

// OwnerOf returns the owner of a token.
func (l *ledgerUseCase) OwnerOf(ctx context.Context, tokenID int64) (string, error) {
	token, err := l.tokenRepo.Get(ctx, tokenID)
	if err != nil {
		return "", err
	}
	return token.Owner, nil
}

// GetApproved returns the zero identity for any existing token.
func (l *ledgerUseCase) GetApproved(ctx context.Context, tokenID int64) (string, error) {
	if _, err := l.tokenRepo.Get(ctx, tokenID); err != nil {
		return "", err
	}
	return identity.Zero, nil
}

// IsApprovedForAll is always false.
func (l *ledgerUseCase) IsApprovedForAll(context.Context, string, string) (bool, error) {
	return false, nil
}

// HasClaimedTemplate reports whether owner holds a live token of the template.
func (l *ledgerUseCase) HasClaimedTemplate(ctx context.Context, owner string, templateID int64) (bool, error) {
	return l.claimRepo.HasTemplateClaim(ctx, identity.Normalize(owner), templateID)
}

// HasClaimedSession reports whether owner holds a live token minted through the session.
func (l *ledgerUseCase) HasClaimedSession(ctx context.Context, owner, sessionID string) (bool, error) {
	return l.claimRepo.HasSessionClaim(ctx, identity.Normalize(owner), sessionDomain.NormalizeID(sessionID))
}

// openSession locks the session and checks, in order: ownership (when owner is set),
// claimability, room for count more mints and an active template.
func (l *ledgerUseCase) openSession(
	ctx context.Context,
	sessionID, owner string,
	count int64,
) (*sessionDomain.Session, *templateDomain.Template, error) {
	session, err := l.sessions.Lock(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if owner != "" && session.Issuer != owner {
		return nil, nil, sessionDomain.ErrNotSessionOwner
	}
	if err := session.CheckClaimable(l.now()); err != nil {
		return nil, nil, err
	}
	if session.CurrentMints+count > session.MaxMints {
		return nil, nil, sessionDomain.ErrInsufficientCapacity
	}

	template, err := l.templates.Get(ctx, session.TemplateID)
	if err != nil {
		return nil, nil, err
	}
	if !template.Active {
		return nil, nil, templateDomain.ErrTemplateInactive
	}
	return session, template, nil
}

// issue mints one token inside the caller's transaction: it checks and sets the claim
// markers, copies the template text, advances the session counter and records TokenMinted.
func (l *ledgerUseCase) issue(
	ctx context.Context,
	recipient, issuer string,
	template *templateDomain.Template,
	session *sessionDomain.Session,
) (*ledgerDomain.Token, error) {
	claimed, err := l.claimRepo.HasTemplateClaim(ctx, recipient, template.ID)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, ledgerDomain.ErrAlreadyClaimedTemplate
	}

	var sessionID *string
	if session != nil {
		claimed, err := l.claimRepo.HasSessionClaim(ctx, recipient, session.ID)
		if err != nil {
			return nil, err
		}
		if claimed {
			return nil, ledgerDomain.ErrAlreadyClaimedSession
		}
		id := session.ID
		sessionID = &id
	}

	id, err := l.sequence.Next(ctx, database.SequenceTokenID)
	if err != nil {
		return nil, err
	}

	token := &ledgerDomain.Token{
		ID:          id,
		Owner:       recipient,
		Name:        template.Name,
		Description: template.Description,
		Issuer:      issuer,
		TemplateID:  template.ID,
		SessionID:   sessionID,
		Status:      ledgerDomain.StatusActive,
		MintedAt:    l.now().UTC(),
	}
	if err := l.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	err = l.claimRepo.CreateTemplateClaim(ctx, &ledgerDomain.TemplateClaim{
		Owner: recipient, TemplateID: template.ID, TokenID: token.ID,
	})
	if err != nil {
		return nil, err
	}
	if session != nil {
		err = l.claimRepo.CreateSessionClaim(ctx, &ledgerDomain.SessionClaim{
			Owner: recipient, SessionID: session.ID, TokenID: token.ID,
		})
		if err != nil {
			return nil, err
		}
		if _, err := l.sessions.IncrementMintCount(ctx, session.ID); err != nil {
			return nil, err
		}
	}

	err = l.recorder.Record(ctx, eventsDomain.TokenMinted, eventsDomain.TokenMintedPayload{
		TokenID:    token.ID,
		Owner:      token.Owner,
		Issuer:     token.Issuer,
		TemplateID: token.TemplateID,
		SessionID:  token.SessionID,
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (l *ledgerUseCase) requireIssuer(ctx context.Context, caller string) error {
	if err := l.authorizer.EnsureNotPaused(ctx); err != nil {
		return err
	}
	authorized, err := l.authorizer.IsAuthorizedIssuer(ctx, caller)
	if err != nil {
		return err
	}
	if !authorized {
		return registryDomain.ErrNotAuthorizedIssuer
	}
	return nil
}

func (l *ledgerUseCase) validateBatch(recipients []string) ([]string, error) {
	if len(recipients) == 0 {
		return nil, ledgerDomain.ErrEmptyBatch
	}
	if len(recipients) > l.config.BatchMaxSize {
		return nil, ledgerDomain.ErrBatchTooLarge
	}

	normalized := make([]string, 0, len(recipients))
	seen := make(map[string]struct{}, len(recipients))
	for _, recipient := range recipients {
		recipient = identity.Normalize(recipient)
		if !identity.IsUsable(recipient) {
			return nil, ledgerDomain.ErrInvalidRecipient
		}
		if _, ok := seen[recipient]; ok {
			return nil, ledgerDomain.ErrDuplicateRecipient
		}
		seen[recipient] = struct{}{}
		normalized = append(normalized, recipient)
	}
	return normalized, nil
}
