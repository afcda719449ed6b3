package usecase

import (
	"context"
	"time"

	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
	"github.com/allisson/soulbound/internal/metrics"
)

// ledgerUseCaseWithMetrics decorates LedgerUseCase with metrics instrumentation.
type ledgerUseCaseWithMetrics struct {
	next    LedgerUseCase
	metrics metrics.BusinessMetrics
}

// NewLedgerUseCaseWithMetrics wraps a LedgerUseCase with metrics recording. Successful mints
// also add to the issued credentials counter of their path.
func NewLedgerUseCaseWithMetrics(useCase LedgerUseCase, m metrics.BusinessMetrics) LedgerUseCase {
	return &ledgerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (l *ledgerUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "ledger", operation, status)
	l.metrics.RecordDuration(ctx, "ledger", operation, time.Since(start), status)
}

func (l *ledgerUseCaseWithMetrics) issued(ctx context.Context, path string, count int, err error) {
	if err == nil {
		l.metrics.RecordTokensIssued(ctx, path, count)
	}
}

// MintFromTemplate records metrics for direct template mints.
func (l *ledgerUseCaseWithMetrics) MintFromTemplate(
	ctx context.Context,
	caller, recipient string,
	templateID int64,
) (*ledgerDomain.Token, error) {
	start := time.Now()
	token, err := l.next.MintFromTemplate(ctx, caller, recipient, templateID)
	l.record(ctx, "mint_from_template", start, err)
	l.issued(ctx, PathTemplate, 1, err)
	return token, err
}

// MintFromSession records metrics for issuer-driven session mints.
func (l *ledgerUseCaseWithMetrics) MintFromSession(
	ctx context.Context,
	caller, recipient, sessionID string,
) (*ledgerDomain.Token, error) {
	start := time.Now()
	token, err := l.next.MintFromSession(ctx, caller, recipient, sessionID)
	l.record(ctx, "mint_from_session", start, err)
	l.issued(ctx, PathSession, 1, err)
	return token, err
}

// ClaimFromSession records metrics for self-service claims.
func (l *ledgerUseCaseWithMetrics) ClaimFromSession(
	ctx context.Context,
	caller, sessionID string,
) (*ledgerDomain.Token, error) {
	start := time.Now()
	token, err := l.next.ClaimFromSession(ctx, caller, sessionID)
	l.record(ctx, "claim_from_session", start, err)
	l.issued(ctx, PathClaim, 1, err)
	return token, err
}

// BatchMintFromSession records metrics for batch mints.
func (l *ledgerUseCaseWithMetrics) BatchMintFromSession(
	ctx context.Context,
	caller string,
	recipients []string,
	sessionID string,
) ([]*ledgerDomain.Token, error) {
	start := time.Now()
	tokens, err := l.next.BatchMintFromSession(ctx, caller, recipients, sessionID)
	l.record(ctx, "batch_mint_from_session", start, err)
	l.issued(ctx, PathBatch, len(tokens), err)
	return tokens, err
}

// Revoke records metrics for revocations.
func (l *ledgerUseCaseWithMetrics) Revoke(ctx context.Context, caller string, tokenID int64) (*ledgerDomain.Token, error) {
	start := time.Now()
	token, err := l.next.Revoke(ctx, caller, tokenID)
	l.record(ctx, "revoke", start, err)
	return token, err
}

// Transfer records refused transfers.
func (l *ledgerUseCaseWithMetrics) Transfer(ctx context.Context, caller string, tokenID int64, to string) error {
	start := time.Now()
	err := l.next.Transfer(ctx, caller, tokenID, to)
	l.record(ctx, "transfer", start, err)
	return err
}

// Approve records refused approvals.
func (l *ledgerUseCaseWithMetrics) Approve(ctx context.Context, caller string, tokenID int64, operator string) error {
	start := time.Now()
	err := l.next.Approve(ctx, caller, tokenID, operator)
	l.record(ctx, "approve", start, err)
	return err
}

// Get records metrics for token lookups.
func (l *ledgerUseCaseWithMetrics) Get(ctx context.Context, tokenID int64) (*ledgerDomain.Token, error) {
	start := time.Now()
	token, err := l.next.Get(ctx, tokenID)
	l.record(ctx, "token_get", start, err)
	return token, err
}

// ListByOwner records metrics for token listing.
func (l *ledgerUseCaseWithMetrics) ListByOwner(
	ctx context.Context,
	owner string,
	offset, limit int,
) ([]*ledgerDomain.Token, error) {
	start := time.Now()
	tokens, err := l.next.ListByOwner(ctx, owner, offset, limit)
	l.record(ctx, "token_list", start, err)
	return tokens, err
}

// BalanceOf records metrics for balance queries.
func (l *ledgerUseCaseWithMetrics) BalanceOf(ctx context.Context, owner string) (int64, error) {
	start := time.Now()
	balance, err := l.next.BalanceOf(ctx, owner)
	l.record(ctx, "balance_of", start, err)
	return balance, err
}

// OwnerOf delegates without recording.
func (l *ledgerUseCaseWithMetrics) OwnerOf(ctx context.Context, tokenID int64) (string, error) {
	return l.next.OwnerOf(ctx, tokenID)
}

// GetApproved delegates without recording.
func (l *ledgerUseCaseWithMetrics) GetApproved(ctx context.Context, tokenID int64) (string, error) {
	return l.next.GetApproved(ctx, tokenID)
}

// IsApprovedForAll delegates without recording.
func (l *ledgerUseCaseWithMetrics) IsApprovedForAll(ctx context.Context, owner, operator string) (bool, error) {
	return l.next.IsApprovedForAll(ctx, owner, operator)
}

// HasClaimedTemplate delegates without recording.
func (l *ledgerUseCaseWithMetrics) HasClaimedTemplate(ctx context.Context, owner string, templateID int64) (bool, error) {
	return l.next.HasClaimedTemplate(ctx, owner, templateID)
}

// HasClaimedSession delegates without recording.
func (l *ledgerUseCaseWithMetrics) HasClaimedSession(ctx context.Context, owner, sessionID string) (bool, error) {
	return l.next.HasClaimedSession(ctx, owner, sessionID)
}
