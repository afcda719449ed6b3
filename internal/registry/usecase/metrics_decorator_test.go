package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/soulbound/internal/metrics"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
	"github.com/allisson/soulbound/internal/registry/usecase"
	"github.com/allisson/soulbound/internal/registry/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordTokensIssued(ctx context.Context, path string, count int) {
	m.Called(ctx, path, count)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestRegistryMetricsDecorator(t *testing.T) {
	ctx := context.Background()
	caller := "0x00000000000000000000000000000000000000a1"

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		next := mocks.NewMockRegistryUseCase(t)
		m := &mockBusinessMetrics{}
		input := usecase.IssuerInput{Address: "0x00000000000000000000000000000000000000b2", Name: "B"}

		next.On("AddIssuer", ctx, caller, input).Return(&registryDomain.Issuer{Address: input.Address}, nil).Once()
		m.On("RecordOperation", ctx, "registry", "issuer_add", "success").Once()
		m.On("RecordDuration", ctx, "registry", "issuer_add", mock.AnythingOfType("time.Duration"), "success").Once()

		issuer, err := usecase.NewRegistryUseCaseWithMetrics(next, m).AddIssuer(ctx, caller, input)
		assert.NoError(t, err)
		assert.Equal(t, input.Address, issuer.Address)
		m.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		next := mocks.NewMockRegistryUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("Pause", ctx, caller).Return(errors.New("boom")).Once()
		m.On("RecordOperation", ctx, "registry", "registry_pause", "error").Once()
		m.On("RecordDuration", ctx, "registry", "registry_pause", mock.AnythingOfType("time.Duration"), "error").Once()

		err := usecase.NewRegistryUseCaseWithMetrics(next, m).Pause(ctx, caller)
		assert.EqualError(t, err, "boom")
		m.AssertExpectations(t)
	})

	t.Run("Success_ChecksNotRecorded", func(t *testing.T) {
		next := mocks.NewMockRegistryUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("EnsureNotPaused", ctx).Return(nil).Once()

		assert.NoError(t, usecase.NewRegistryUseCaseWithMetrics(next, m).EnsureNotPaused(ctx))
		m.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
