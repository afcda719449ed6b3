// Package mocks provides mock implementations of the template use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	templateDomain "github.com/allisson/soulbound/internal/template/domain"
	templateUseCase "github.com/allisson/soulbound/internal/template/usecase"
)

// MockTemplateUseCase is a mock implementation of TemplateUseCase.
type MockTemplateUseCase struct {
	mock.Mock
}

// NewMockTemplateUseCase creates a MockTemplateUseCase that asserts its expectations on cleanup.
func NewMockTemplateUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTemplateUseCase {
	m := &MockTemplateUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTemplateUseCase) Create(
	ctx context.Context,
	caller string,
	input templateUseCase.TemplateInput,
) (*templateDomain.Template, error) {
	args := m.Called(ctx, caller, input)
	return templateArg(args), args.Error(1)
}

func (m *MockTemplateUseCase) Update(
	ctx context.Context,
	caller string,
	id int64,
	input templateUseCase.TemplateInput,
) (*templateDomain.Template, error) {
	args := m.Called(ctx, caller, id, input)
	return templateArg(args), args.Error(1)
}

func (m *MockTemplateUseCase) Deactivate(ctx context.Context, caller string, id int64) (*templateDomain.Template, error) {
	args := m.Called(ctx, caller, id)
	return templateArg(args), args.Error(1)
}

func (m *MockTemplateUseCase) Reactivate(ctx context.Context, caller string, id int64) (*templateDomain.Template, error) {
	args := m.Called(ctx, caller, id)
	return templateArg(args), args.Error(1)
}

func (m *MockTemplateUseCase) Get(ctx context.Context, id int64) (*templateDomain.Template, error) {
	args := m.Called(ctx, id)
	return templateArg(args), args.Error(1)
}

func (m *MockTemplateUseCase) IsActive(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTemplateUseCase) ListByIssuer(
	ctx context.Context,
	issuer string,
	offset, limit int,
) ([]*templateDomain.Template, error) {
	args := m.Called(ctx, issuer, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*templateDomain.Template), args.Error(1)
}

func templateArg(args mock.Arguments) *templateDomain.Template {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*templateDomain.Template)
}

var _ templateUseCase.TemplateUseCase = (*MockTemplateUseCase)(nil)
