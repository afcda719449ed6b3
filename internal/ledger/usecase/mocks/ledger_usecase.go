// Package mocks provides mock implementations of the ledger use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/soulbound/internal/ledger/domain"
)

// MockLedgerUseCase is a mock implementation of LedgerUseCase.
type MockLedgerUseCase struct {
	mock.Mock
}

// NewMockLedgerUseCase creates a MockLedgerUseCase that asserts its expectations on cleanup.
func NewMockLedgerUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLedgerUseCase {
	m := &MockLedgerUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLedgerUseCase) MintFromTemplate(
	ctx context.Context,
	caller, recipient string,
	templateID int64,
) (*ledgerDomain.Token, error) {
	args := m.Called(ctx, caller, recipient, templateID)
	return tokenArg(args), args.Error(1)
}

func (m *MockLedgerUseCase) MintFromSession(
	ctx context.Context,
	caller, recipient, sessionID string,
) (*ledgerDomain.Token, error) {
	args := m.Called(ctx, caller, recipient, sessionID)
	return tokenArg(args), args.Error(1)
}

func (m *MockLedgerUseCase) ClaimFromSession(ctx context.Context, caller, sessionID string) (*ledgerDomain.Token, error) {
	args := m.Called(ctx, caller, sessionID)
	return tokenArg(args), args.Error(1)
}

func (m *MockLedgerUseCase) BatchMintFromSession(
	ctx context.Context,
	caller string,
	recipients []string,
	sessionID string,
) ([]*ledgerDomain.Token, error) {
	args := m.Called(ctx, caller, recipients, sessionID)
	return tokensArg(args), args.Error(1)
}

func (m *MockLedgerUseCase) Revoke(ctx context.Context, caller string, tokenID int64) (*ledgerDomain.Token, error) {
	args := m.Called(ctx, caller, tokenID)
	return tokenArg(args), args.Error(1)
}

func (m *MockLedgerUseCase) Transfer(ctx context.Context, caller string, tokenID int64, to string) error {
	args := m.Called(ctx, caller, tokenID, to)
	return args.Error(0)
}

func (m *MockLedgerUseCase) Approve(ctx context.Context, caller string, tokenID int64, operator string) error {
	args := m.Called(ctx, caller, tokenID, operator)
	return args.Error(0)
}

func (m *MockLedgerUseCase) Get(ctx context.Context, tokenID int64) (*ledgerDomain.Token, error) {
	args := m.Called(ctx, tokenID)
	return tokenArg(args), args.Error(1)
}

func (m *MockLedgerUseCase) ListByOwner(
	ctx context.Context,
	owner string,
	offset, limit int,
) ([]*ledgerDomain.Token, error) {
	args := m.Called(ctx, owner, offset, limit)
	return tokensArg(args), args.Error(1)
}

func (m *MockLedgerUseCase) BalanceOf(ctx context.Context, owner string) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerUseCase) OwnerOf(ctx context.Context, tokenID int64) (string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerUseCase) GetApproved(ctx context.Context, tokenID int64) (string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerUseCase) IsApprovedForAll(ctx context.Context, owner, operator string) (bool, error) {
	args := m.Called(ctx, owner, operator)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerUseCase) HasClaimedTemplate(ctx context.Context, owner string, templateID int64) (bool, error) {
	args := m.Called(ctx, owner, templateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerUseCase) HasClaimedSession(ctx context.Context, owner, sessionID string) (bool, error) {
	args := m.Called(ctx, owner, sessionID)
	return args.Bool(0), args.Error(1)
}

func tokenArg(args mock.Arguments) *ledgerDomain.Token {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*ledgerDomain.Token)
}

func tokensArg(args mock.Arguments) []*ledgerDomain.Token {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*ledgerDomain.Token)
}
