// Package dto provides data transfer objects for the Template Store endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/soulbound/internal/validation"
)

// TemplateRequest contains the text of a template for create and update.
type TemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the template request is valid.
func (r *TemplateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required, customValidation.NotBlank, validation.Length(1, 4096)),
	)
}
