// Package domain defines claim sessions: time and quantity bounded windows during which
// tokens of one template can be minted or self-claimed.
package domain

import (
	"regexp"
	"strings"
	"time"
)

var sessionIDRegex = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

// Session is a claim window over one template. CurrentMints only grows; Active only goes from
// true to false.
type Session struct {
	ID           string
	TemplateID   int64
	Issuer       string
	MaxMints     int64
	CurrentMints int64
	ExpiresAt    time.Time
	Active       bool
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Stats is the derived view of a session's capacity and remaining time.
type Stats struct {
	SessionID     string
	MaxMints      int64
	CurrentMints  int64
	Remaining     int64
	ExpiresAt     time.Time
	TimeRemaining time.Duration
	Active        bool
	Claimable     bool
}

// IsExpired reports whether now is past the expiry. The expiry instant itself is still open.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Remaining returns the number of mints the session still admits.
func (s *Session) Remaining() int64 {
	if s.CurrentMints >= s.MaxMints {
		return 0
	}
	return s.MaxMints - s.CurrentMints
}

// IsClaimable reports whether the session is active, unexpired and not full.
func (s *Session) IsClaimable(now time.Time) bool {
	return s.CheckClaimable(now) == nil
}

// CheckClaimable returns the reason the session cannot admit another mint, or nil.
func (s *Session) CheckClaimable(now time.Time) error {
	switch {
	case !s.Active:
		return ErrSessionEnded
	case s.IsExpired(now):
		return ErrSessionExpired
	case s.CurrentMints >= s.MaxMints:
		return ErrSessionFull
	}
	return nil
}

// Stats derives the session's statistics at now.
func (s *Session) Stats(now time.Time) *Stats {
	timeRemaining := s.ExpiresAt.Sub(now)
	if timeRemaining < 0 {
		timeRemaining = 0
	}
	return &Stats{
		SessionID:     s.ID,
		MaxMints:      s.MaxMints,
		CurrentMints:  s.CurrentMints,
		Remaining:     s.Remaining(),
		ExpiresAt:     s.ExpiresAt,
		TimeRemaining: timeRemaining,
		Active:        s.Active,
		Claimable:     s.IsClaimable(now),
	}
}

// NormalizeID lowercases and trims a session id.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// IsValidID reports whether id has the form of a session id: 0x followed by 64 hex digits.
func IsValidID(id string) bool {
	return sessionIDRegex.MatchString(NormalizeID(id))
}
