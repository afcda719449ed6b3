package dto

import (
	"time"

	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
)

// IssuerResponse represents an issuer in API responses.
type IssuerResponse struct {
	Address      string    `json:"address"`
	Name         string    `json:"name"`
	Organization string    `json:"organization"`
	Authorized   bool      `json:"authorized"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListIssuersResponse represents a page of authorized issuers plus their total count.
type ListIssuersResponse struct {
	Data  []IssuerResponse `json:"data"`
	Total int64            `json:"total"`
}

// AuthorizedResponse answers an authorization check.
type AuthorizedResponse struct {
	Address    string `json:"address"`
	Authorized bool   `json:"authorized"`
}

// RegistryStateResponse represents the administrator and pause flag.
type RegistryStateResponse struct {
	Admin     string    `json:"admin"`
	Paused    bool      `json:"paused"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapIssuerToResponse converts a domain issuer to an API response.
func MapIssuerToResponse(issuer *registryDomain.Issuer) IssuerResponse {
	return IssuerResponse{
		Address:      issuer.Address,
		Name:         issuer.Name,
		Organization: issuer.Organization,
		Authorized:   issuer.Authorized,
		CreatedAt:    issuer.CreatedAt,
		UpdatedAt:    issuer.UpdatedAt,
	}
}

// MapIssuersToListResponse converts domain issuers to a list response.
func MapIssuersToListResponse(issuers []*registryDomain.Issuer, total int64) ListIssuersResponse {
	data := make([]IssuerResponse, 0, len(issuers))
	for _, issuer := range issuers {
		data = append(data, MapIssuerToResponse(issuer))
	}
	return ListIssuersResponse{Data: data, Total: total}
}

// MapStateToResponse converts the registry state to an API response.
func MapStateToResponse(state *registryDomain.State) RegistryStateResponse {
	return RegistryStateResponse{
		Admin:     state.Admin,
		Paused:    state.Paused,
		UpdatedAt: state.UpdatedAt,
	}
}
