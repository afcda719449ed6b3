// Package dto provides data transfer objects for the Session Manager endpoints.
package dto

import (
	"math"
	"time"

	validation "github.com/jellydator/validation"
)

// MaxDurationSeconds is the longest duration that still fits a time.Duration.
const MaxDurationSeconds = int64(math.MaxInt64 / int64(time.Second))

// CreateSessionRequest opens a claim session over a template.
type CreateSessionRequest struct {
	TemplateID      int64  `json:"template_id"`
	MaxMints        int64  `json:"max_mints"`
	DurationSeconds int64  `json:"duration_seconds"`
	Title           string `json:"title"`
}

// Validate checks if the create session request is valid.
func (r *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TemplateID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.MaxMints, validation.Required, validation.Min(int64(1))),
		validation.Field(
			&r.DurationSeconds,
			validation.Required,
			validation.Min(int64(1)),
			validation.Max(MaxDurationSeconds),
		),
		validation.Field(&r.Title, validation.Length(0, 255)),
	)
}

// Duration returns DurationSeconds as a time.Duration. Validate must have passed.
func (r *CreateSessionRequest) Duration() time.Duration {
	return time.Duration(r.DurationSeconds) * time.Second
}
