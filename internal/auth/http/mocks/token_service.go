// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/soulbound/internal/auth/domain"
)

// MockTokenService is a mock implementation of TokenService for testing.
type MockTokenService struct {
	mock.Mock
}

// Issue mocks the Issue method of TokenService.
func (m *MockTokenService) Issue(subject string) (string, time.Time, error) {
	args := m.Called(subject)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// Verify mocks the Verify method of TokenService.
func (m *MockTokenService) Verify(token string) (*authDomain.Caller, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Caller), args.Error(1)
}
