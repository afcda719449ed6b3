// Package dto provides data transfer objects for the Token Ledger endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/soulbound/internal/validation"
)

// MintRequest names the recipient of an issuer-initiated mint.
type MintRequest struct {
	Recipient string `json:"recipient"`
}

// Validate checks if the mint request is valid.
func (r *MintRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Recipient, validation.Required, customValidation.Address),
	)
}

// BatchMintRequest lists the recipients of a batch mint.
type BatchMintRequest struct {
	Recipients []string `json:"recipients"`
}

// Validate checks if the batch mint request is valid. The upper bound on the batch size is
// enforced by the ledger, which owns that setting.
func (r *BatchMintRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Recipients,
			validation.Required,
			validation.Each(validation.Required, customValidation.Address),
			customValidation.UniqueAddresses{},
		),
	)
}

// TransferRequest is accepted for interface compatibility only.
type TransferRequest struct {
	To string `json:"to"`
}

// ApproveRequest is accepted for interface compatibility only.
type ApproveRequest struct {
	Operator string `json:"operator"`
}
