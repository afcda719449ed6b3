package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/soulbound/internal/errors"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedCode    string
		expectedMessage string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "template"), http.StatusNotFound, "not_found", "template: not found"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict", "conflict"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "name"), http.StatusUnprocessableEntity, "invalid_input", "name: invalid input"},
		{"unauthorized", apperrors.Wrap(apperrors.ErrUnauthorized, "expired token"), http.StatusUnauthorized, "unauthorized", "authentication is required"},
		{"forbidden", apperrors.Wrap(apperrors.ErrForbidden, "not the owner"), http.StatusForbidden, "forbidden", "not the owner: forbidden"},
		{"invalid state", apperrors.Wrap(apperrors.ErrInvalidState, "session is full"), http.StatusConflict, "invalid_state", "session is full: invalid state"},
		{"paused", apperrors.ErrPaused, http.StatusServiceUnavailable, "paused", "paused"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "internal_error", "an internal error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedCode, response.Error)
			assert.Equal(t, tt.expectedMessage, response.Message)
		})
	}

	t.Run("log level follows status", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/v1/tokens/1", nil)
		HandleErrorGin(c, apperrors.ErrNotFound, logger)
		assert.Contains(t, buf.String(), `"level":"WARN"`)

		buf.Reset()
		c, _ = gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/v1/tokens/1", nil)
		HandleErrorGin(c, errors.New("disk full"), logger)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Contains(t, buf.String(), "disk full")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, nil, nil)
		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("invalid json"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"invalid json"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("name: cannot be blank"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"name: cannot be blank"}`, w.Body.String())
}
