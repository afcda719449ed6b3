// Package dto provides data transfer objects for the Issuer Registry endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/soulbound/internal/validation"
)

// AddIssuerRequest contains the parameters for authorizing an issuer.
type AddIssuerRequest struct {
	Address      string `json:"address"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

// Validate checks if the add issuer request is valid.
func (r *AddIssuerRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Address, validation.Required, customValidation.Address),
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Organization, validation.Length(0, 255)),
	)
}

// UpdateIssuerRequest contains the parameters for updating an issuer. The address comes from
// the URL.
type UpdateIssuerRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

// Validate checks if the update issuer request is valid.
func (r *UpdateIssuerRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Organization, validation.Length(0, 255)),
	)
}

// TransferAdminRequest contains the new administrator identity.
type TransferAdminRequest struct {
	NewAdmin string `json:"new_admin"`
}

// Validate checks if the transfer request is valid.
func (r *TransferAdminRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.NewAdmin, validation.Required, customValidation.Address),
	)
}
