package usecase_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/soulbound/internal/metrics"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
	"github.com/allisson/soulbound/internal/session/usecase"
	"github.com/allisson/soulbound/internal/session/usecase/mocks"
)

func TestSessionMetricsDecorator(t *testing.T) {
	ctx := context.Background()
	caller := "0x00000000000000000000000000000000000000b2"
	sessionID := "0x1111111111111111111111111111111111111111111111111111111111111111"

	provider, err := metrics.NewProvider("soulbound")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()
	business, err := metrics.NewBusinessMetrics(provider.MeterProvider(), "soulbound")
	require.NoError(t, err)

	next := mocks.NewMockSessionUseCase(t)
	uc := usecase.NewSessionUseCaseWithMetrics(next, business)

	input := usecase.CreateInput{TemplateID: 1, MaxMints: 10, Duration: time.Hour, Title: "Launch"}
	next.On("Create", ctx, caller, input).Return(&sessionDomain.Session{ID: sessionID, TemplateID: 1}, nil).Once()
	next.On("End", ctx, caller, sessionID).Return(nil, sessionDomain.ErrSessionNotFound).Once()
	next.On("IsClaimable", ctx, sessionID).Return(false, nil).Once()

	session, err := uc.Create(ctx, caller, input)
	require.NoError(t, err)
	assert.Equal(t, sessionID, session.ID)

	_, err = uc.End(ctx, caller, sessionID)
	assert.ErrorIs(t, err, sessionDomain.ErrSessionNotFound)

	claimable, err := uc.IsClaimable(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, claimable)

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Regexp(t, `soulbound_operations_total\{[^}]*operation="session_create"[^}]*status="success"[^}]*\} 1`, body)
	assert.Regexp(t, `soulbound_operations_total\{[^}]*operation="session_end"[^}]*status="error"[^}]*\} 1`, body)
	assert.NotContains(t, body, "is_claimable")
}
