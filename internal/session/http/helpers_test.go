package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/soulbound/internal/auth/domain"
	authHTTP "github.com/allisson/soulbound/internal/auth/http"
)

// createTestContext creates a test Gin context with the given request, authenticated as caller
// when caller is not empty.
func createTestContext(method, path, caller string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req = req.WithContext(authHTTP.WithCaller(req.Context(), &authDomain.Caller{Identity: caller}))
	}
	c.Request = req

	return c, w
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
