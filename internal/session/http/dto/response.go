package dto

import (
	"time"

	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
)

// SessionResponse represents a session in API responses.
type SessionResponse struct {
	ID           string    `json:"id"`
	TemplateID   int64     `json:"template_id"`
	Issuer       string    `json:"issuer"`
	MaxMints     int64     `json:"max_mints"`
	CurrentMints int64     `json:"current_mints"`
	ExpiresAt    time.Time `json:"expires_at"`
	Active       bool      `json:"active"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListSessionsResponse represents a page of sessions.
type ListSessionsResponse struct {
	Data []SessionResponse `json:"data"`
}

// StatsResponse carries the derived statistics of a session.
type StatsResponse struct {
	SessionID            string    `json:"session_id"`
	MaxMints             int64     `json:"max_mints"`
	CurrentMints         int64     `json:"current_mints"`
	Remaining            int64     `json:"remaining"`
	ExpiresAt            time.Time `json:"expires_at"`
	TimeRemainingSeconds int64     `json:"time_remaining_seconds"`
	Active               bool      `json:"active"`
	Claimable            bool      `json:"claimable"`
}

// ClaimableResponse answers whether a session admits another mint.
type ClaimableResponse struct {
	ID        string `json:"id"`
	Claimable bool   `json:"claimable"`
}

// MapSessionToResponse converts a domain session to an API response.
func MapSessionToResponse(session *sessionDomain.Session) SessionResponse {
	return SessionResponse{
		ID:           session.ID,
		TemplateID:   session.TemplateID,
		Issuer:       session.Issuer,
		MaxMints:     session.MaxMints,
		CurrentMints: session.CurrentMints,
		ExpiresAt:    session.ExpiresAt,
		Active:       session.Active,
		Title:        session.Title,
		CreatedAt:    session.CreatedAt,
	}
}

// MapSessionsToListResponse converts domain sessions to a list response.
func MapSessionsToListResponse(sessions []*sessionDomain.Session) ListSessionsResponse {
	data := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		data = append(data, MapSessionToResponse(session))
	}
	return ListSessionsResponse{Data: data}
}

// MapStatsToResponse converts session statistics to an API response. The remaining time is
// truncated to whole seconds.
func MapStatsToResponse(stats *sessionDomain.Stats) StatsResponse {
	return StatsResponse{
		SessionID:            stats.SessionID,
		MaxMints:             stats.MaxMints,
		CurrentMints:         stats.CurrentMints,
		Remaining:            stats.Remaining,
		ExpiresAt:            stats.ExpiresAt,
		TimeRemainingSeconds: int64(stats.TimeRemaining / time.Second),
		Active:               stats.Active,
		Claimable:            stats.Claimable,
	}
}
