// Package domain defines the Issuer Registry: the issuer records that gate every privileged
// operation and the singleton registry state holding the administrator and the pause flag.
package domain

import "time"

// AdministratorName is the display name given to the administrator's issuer record at bootstrap.
const AdministratorName = "Administrator"

// Issuer is an identity that may be authorized to create templates and sessions and to
// mint and revoke tokens. Deauthorized issuers keep their record.
type Issuer struct {
	Address      string
	Name         string
	Organization string
	Authorized   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// State is the registry singleton: the current administrator and the global pause flag.
type State struct {
	Admin     string
	Paused    bool
	UpdatedAt time.Time
}

// IsAdmin reports whether address is the current administrator.
func (s *State) IsAdmin(address string) bool {
	return s != nil && s.Admin == address
}
