// Package marketplace holds the domain types shared by the AyosNow client:
// identities, bookings, jobs and the per-role dashboard aggregates.
package marketplace

import (
	"strings"
	"unicode/utf8"
)

// Role distinguishes the two kinds of accounts the backend issues.
// The wire values are stored verbatim by the backend, so they must not change.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleWorker   Role = "WORKER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleWorker
}

// User models an authenticated marketplace identity as returned by the
// auth endpoints. Skill is only populated for workers.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Skill string `json:"skill,omitempty"`
}

// Initial returns the single-letter avatar for the user, or "?" when the
// name is empty.
func (u User) Initial() string {
	trimmed := strings.TrimSpace(u.Name)
	if trimmed == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return strings.ToUpper(string(r))
}

// FirstName returns the leading word of the full name, used by greeting
// toasts. Falls back to the full name when there is only one word.
func (u User) FirstName() string {
	trimmed := strings.TrimSpace(u.Name)
	if i := strings.IndexByte(trimmed, ' '); i > 0 {
		return trimmed[:i]
	}
	return trimmed
}
