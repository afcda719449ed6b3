package dto

import (
	"time"

	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

// TemplateResponse represents a template in API responses.
type TemplateResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Issuer      string    `json:"issuer"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListTemplatesResponse represents a page of templates.
type ListTemplatesResponse struct {
	Data []TemplateResponse `json:"data"`
}

// ActiveResponse answers whether a template is active.
type ActiveResponse struct {
	ID     int64 `json:"id"`
	Active bool  `json:"active"`
}

// MapTemplateToResponse converts a domain template to an API response.
func MapTemplateToResponse(template *templateDomain.Template) TemplateResponse {
	return TemplateResponse{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
		Issuer:      template.Issuer,
		Active:      template.Active,
		CreatedAt:   template.CreatedAt,
		UpdatedAt:   template.UpdatedAt,
	}
}

// MapTemplatesToListResponse converts domain templates to a list response.
func MapTemplatesToListResponse(templates []*templateDomain.Template) ListTemplatesResponse {
	data := make([]TemplateResponse, 0, len(templates))
	for _, template := range templates {
		data = append(data, MapTemplateToResponse(template))
	}
	return ListTemplatesResponse{Data: data}
}
