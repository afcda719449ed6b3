// Package mocks provides mock implementations of the registry use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
	registryUseCase "github.com/allisson/soulbound/internal/registry/usecase"
)

// MockRegistryUseCase is a mock implementation of RegistryUseCase.
type MockRegistryUseCase struct {
	mock.Mock
}

// NewMockRegistryUseCase creates a MockRegistryUseCase that asserts its expectations on cleanup.
func NewMockRegistryUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRegistryUseCase {
	m := &MockRegistryUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRegistryUseCase) Bootstrap(ctx context.Context, admin string) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *MockRegistryUseCase) AddIssuer(
	ctx context.Context,
	caller string,
	input registryUseCase.IssuerInput,
) (*registryDomain.Issuer, error) {
	args := m.Called(ctx, caller, input)
	return issuerArg(args, 0), args.Error(1)
}

func (m *MockRegistryUseCase) RemoveIssuer(ctx context.Context, caller, address string) error {
	return m.Called(ctx, caller, address).Error(0)
}

func (m *MockRegistryUseCase) UpdateIssuer(
	ctx context.Context,
	caller string,
	input registryUseCase.IssuerInput,
) (*registryDomain.Issuer, error) {
	args := m.Called(ctx, caller, input)
	return issuerArg(args, 0), args.Error(1)
}

func (m *MockRegistryUseCase) Pause(ctx context.Context, caller string) error {
	return m.Called(ctx, caller).Error(0)
}

func (m *MockRegistryUseCase) Unpause(ctx context.Context, caller string) error {
	return m.Called(ctx, caller).Error(0)
}

func (m *MockRegistryUseCase) TransferAdmin(ctx context.Context, caller, newAdmin string) error {
	return m.Called(ctx, caller, newAdmin).Error(0)
}

func (m *MockRegistryUseCase) IsAuthorizedIssuer(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistryUseCase) IsAdmin(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistryUseCase) EnsureNotPaused(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRegistryUseCase) GetIssuer(ctx context.Context, address string) (*registryDomain.Issuer, error) {
	args := m.Called(ctx, address)
	return issuerArg(args, 0), args.Error(1)
}

func (m *MockRegistryUseCase) ListIssuers(ctx context.Context, offset, limit int) ([]*registryDomain.Issuer, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registryDomain.Issuer), args.Error(1)
}

func (m *MockRegistryUseCase) CountIssuers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistryUseCase) GetState(ctx context.Context) (*registryDomain.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.State), args.Error(1)
}

func issuerArg(args mock.Arguments, i int) *registryDomain.Issuer {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*registryDomain.Issuer)
}

var _ registryUseCase.RegistryUseCase = (*MockRegistryUseCase)(nil)
