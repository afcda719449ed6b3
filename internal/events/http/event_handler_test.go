package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/soulbound/internal/events/domain"
	"github.com/allisson/soulbound/internal/events/http/dto"
	"github.com/allisson/soulbound/internal/events/publisher"
)

type mockFeedUseCase struct {
	mock.Mock
}

func (m *mockFeedUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventHandler_ListHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success_DefaultPagination", func(t *testing.T) {
		feed := &mockFeedUseCase{}
		handler := NewEventHandler(feed, nil, testLogger())
		events := []*domain.Event{
			{ID: uuid.Must(uuid.NewV7()), Type: domain.Paused, Payload: `{"actor":"0xa1"}`, Status: domain.StatusProcessed, CreatedAt: time.Now().UTC()},
		}
		feed.On("List", mock.Anything, 0, 50).Return(events, nil).Once()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/v1/events", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ListEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, "Paused", response.Data[0].Type)
		feed.AssertExpectations(t)
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler := NewEventHandler(&mockFeedUseCase{}, nil, testLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/v1/events?limit=500", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		feed := &mockFeedUseCase{}
		handler := NewEventHandler(feed, nil, testLogger())
		feed.On("List", mock.Anything, 10, 5).Return(nil, errors.New("db down")).Once()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/v1/events?offset=10&limit=5", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal_error")
	})
}

func TestEventHandler_StreamHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Error_StreamDisabled", func(t *testing.T) {
		handler := NewEventHandler(&mockFeedUseCase{}, nil, testLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/v1/events/stream", nil)

		handler.StreamHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success_ReceivesPublishedEvent", func(t *testing.T) {
		hub := publisher.NewHub(0, testLogger())
		handler := NewEventHandler(&mockFeedUseCase{}, hub, testLogger())

		router := gin.New()
		router.GET("/v1/events/stream", handler.StreamHandler)
		server := httptest.NewServer(router)
		defer server.Close()

		wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/events/stream"
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		defer func() {
			_ = resp.Body.Close()
			_ = conn.Close()
		}()

		require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

		msg := domain.Message{
			ID:        uuid.Must(uuid.NewV7()),
			Type:      domain.TokenRevoked,
			Payload:   json.RawMessage(`{"token_id":3}`),
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, hub.Publish(context.Background(), msg))

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var received domain.Message
		require.NoError(t, conn.ReadJSON(&received))
		assert.Equal(t, msg.ID, received.ID)
		assert.Equal(t, domain.TokenRevoked, received.Type)
	})
}
