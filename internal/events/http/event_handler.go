// Package http provides HTTP handlers for the event feed: a paginated listing of recorded
// events and a WebSocket stream of events as they are relayed.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/allisson/soulbound/internal/events/http/dto"
	eventsUseCase "github.com/allisson/soulbound/internal/events/usecase"
	"github.com/allisson/soulbound/internal/httputil"
)

// StreamServer attaches a WebSocket connection to the live event stream.
type StreamServer interface {
	Serve(ctx context.Context, conn *websocket.Conn) error
}

// EventHandler handles HTTP requests for the event feed.
type EventHandler struct {
	feedUseCase eventsUseCase.FeedUseCase
	stream      StreamServer
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewEventHandler creates a new event handler. stream may be nil, in which case the stream
// endpoint answers 404.
func NewEventHandler(
	feedUseCase eventsUseCase.FeedUseCase,
	stream StreamServer,
	logger *slog.Logger,
) *EventHandler {
	return &EventHandler{
		feedUseCase: feedUseCase,
		stream:      stream,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ListHandler returns recorded events newest first.
// GET /v1/events?offset=0&limit=50
func (h *EventHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	events, err := h.feedUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}

// StreamHandler upgrades the request to a WebSocket and pushes every relayed event to it.
// GET /v1/events/stream
func (h *EventHandler) StreamHandler(c *gin.Context) {
	if h.stream == nil {
		c.JSON(http.StatusNotFound, httputil.ErrorResponse{
			Error:   "not_found",
			Message: "event stream is disabled",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	if err := h.stream.Serve(c.Request.Context(), conn); err != nil {
		h.logger.Warn("event stream closed", slog.Any("error", err))
	}
}
