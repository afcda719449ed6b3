// Package domain defines credential templates: reusable name and description pairs owned by
// one issuer from which tokens copy their text at mint time.
package domain

import "time"

// Template is a reusable credential definition. ID and Issuer never change after creation.
type Template struct {
	ID          int64
	Name        string
	Description string
	Issuer      string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy reports whether issuer owns the template.
func (t *Template) IsOwnedBy(issuer string) bool {
	return t.Issuer == issuer
}
