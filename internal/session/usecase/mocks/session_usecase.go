// Package mocks provides mock implementations of the session use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
	sessionUseCase "github.com/allisson/soulbound/internal/session/usecase"
)

// MockSessionUseCase is a mock implementation of SessionUseCase.
type MockSessionUseCase struct {
	mock.Mock
}

// NewMockSessionUseCase creates a MockSessionUseCase that asserts its expectations on cleanup.
func NewMockSessionUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionUseCase {
	m := &MockSessionUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionUseCase) Create(
	ctx context.Context,
	caller string,
	input sessionUseCase.CreateInput,
) (*sessionDomain.Session, error) {
	args := m.Called(ctx, caller, input)
	return sessionArg(args), args.Error(1)
}

func (m *MockSessionUseCase) End(ctx context.Context, caller string, id string) (*sessionDomain.Session, error) {
	args := m.Called(ctx, caller, id)
	return sessionArg(args), args.Error(1)
}

func (m *MockSessionUseCase) Lock(ctx context.Context, id string) (*sessionDomain.Session, error) {
	args := m.Called(ctx, id)
	return sessionArg(args), args.Error(1)
}

func (m *MockSessionUseCase) IncrementMintCount(ctx context.Context, id string) (*sessionDomain.Session, error) {
	args := m.Called(ctx, id)
	return sessionArg(args), args.Error(1)
}

func (m *MockSessionUseCase) Get(ctx context.Context, id string) (*sessionDomain.Session, error) {
	args := m.Called(ctx, id)
	return sessionArg(args), args.Error(1)
}

func (m *MockSessionUseCase) IsClaimable(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionUseCase) Stats(ctx context.Context, id string) (*sessionDomain.Stats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessionDomain.Stats), args.Error(1)
}

func (m *MockSessionUseCase) ListByTemplate(
	ctx context.Context,
	templateID int64,
	offset, limit int,
) ([]*sessionDomain.Session, error) {
	args := m.Called(ctx, templateID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sessionDomain.Session), args.Error(1)
}

func sessionArg(args mock.Arguments) *sessionDomain.Session {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*sessionDomain.Session)
}
