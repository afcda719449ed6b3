package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrape returns the text exposition of p's registry.
func scrape(t *testing.T, p *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	p.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("soulbound")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	assert.Equal(t, "soulbound", provider.Namespace())
	assert.NotNil(t, provider.MeterProvider())

	body := scrape(t, provider)
	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, "process_")
}

func TestNewProvider_IndependentRegistries(t *testing.T) {
	first, err := NewProvider("soulbound")
	require.NoError(t, err)
	second, err := NewProvider("soulbound")
	require.NoError(t, err)

	counter, err := first.MeterProvider().Meter("soulbound").Int64Counter("soulbound_sessions_created")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	assert.Contains(t, scrape(t, first), "soulbound_sessions_created")
	assert.NotContains(t, scrape(t, second), "soulbound_sessions_created")
}

func TestProvider_Shutdown(t *testing.T) {
	provider, err := NewProvider("soulbound")
	require.NoError(t, err)
	assert.NoError(t, provider.Shutdown(context.Background()))

	assert.NoError(t, (&Provider{}).Shutdown(context.Background()))
}
