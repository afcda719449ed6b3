// Package dto provides data transfer objects for the event feed endpoints.
package dto

import (
	"encoding/json"
	"time"

	"github.com/allisson/soulbound/internal/events/domain"
)

// EventResponse represents a recorded event in API responses.
type EventResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListEventsResponse represents a page of events.
type ListEventsResponse struct {
	Data []EventResponse `json:"data"`
}

// MapEventsToListResponse converts domain events to a list response. Payloads that are not
// valid JSON are rendered as a JSON string.
func MapEventsToListResponse(events []*domain.Event) ListEventsResponse {
	data := make([]EventResponse, 0, len(events))
	for _, event := range events {
		payload := json.RawMessage(event.Payload)
		if !json.Valid(payload) {
			payload, _ = json.Marshal(event.Payload)
		}
		data = append(data, EventResponse{
			ID:          event.ID.String(),
			Type:        string(event.Type),
			Payload:     payload,
			Status:      string(event.Status),
			ProcessedAt: event.ProcessedAt,
			CreatedAt:   event.CreatedAt,
		})
	}
	return ListEventsResponse{Data: data}
}
