package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/soulbound/internal/auth/domain"
)

func newRateLimitedRouter(middleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func requestAs(router *gin.Engine, identity string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if identity != "" {
		req = req.WithContext(WithCaller(req.Context(), &authDomain.Caller{Identity: identity}))
	}
	router.ServeHTTP(w, req)
	return w
}

func requestFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success_AllowsRequestsWithinLimit", func(t *testing.T) {
		router := newRateLimitedRouter(RateLimitMiddleware(10.0, 20, newTestLogger()))

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, requestAs(router, testIdentity).Code)
		}
	})

	t.Run("Error_BlocksRequestsExceedingBurst", func(t *testing.T) {
		router := newRateLimitedRouter(RateLimitMiddleware(0.5, 2, newTestLogger()))

		assert.Equal(t, http.StatusOK, requestAs(router, testIdentity).Code)
		assert.Equal(t, http.StatusOK, requestAs(router, testIdentity).Code)

		w := requestAs(router, testIdentity)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Success_IndependentLimitsPerCaller", func(t *testing.T) {
		router := newRateLimitedRouter(RateLimitMiddleware(0.5, 1, newTestLogger()))
		other := "0x00000000000000000000000000000000000000b2"

		assert.Equal(t, http.StatusOK, requestAs(router, testIdentity).Code)
		assert.Equal(t, http.StatusTooManyRequests, requestAs(router, testIdentity).Code)
		assert.Equal(t, http.StatusOK, requestAs(router, other).Code)
	})

	t.Run("Error_NoCallerInContext", func(t *testing.T) {
		router := newRateLimitedRouter(RateLimitMiddleware(10.0, 20, newTestLogger()))

		assert.Equal(t, http.StatusUnauthorized, requestAs(router, "").Code)
	})
}

func TestIPRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Error_BlocksSameIP", func(t *testing.T) {
		router := newRateLimitedRouter(IPRateLimitMiddleware(0.5, 1, newTestLogger()))

		assert.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.1:1234").Code)
		w := requestFrom(router, "10.0.0.1:5678")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Success_IndependentLimitsPerIP", func(t *testing.T) {
		router := newRateLimitedRouter(IPRateLimitMiddleware(0.5, 1, newTestLogger()))

		assert.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.1:1234").Code)
		assert.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.2:1234").Code)
	})
}
