// Package identity is the boundary to the external identity service. Callers
// of this package never see transport errors: lookups degrade to nil or empty.
package identity

import (
	"context"
	"strings"
)

// Caller is the identity resolved from a bearer credential. It is never persisted.
type Caller struct {
	UserID       string
	EmployeeID   string
	Email        string
	Role         string
	DepartmentID *int64
	IsActive     bool
}

// NormalizedRole returns the role lower-cased for comparison.
func (c *Caller) NormalizedRole() string {
	if c == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(c.Role))
}

func (c *Caller) HasDepartment() bool {
	return c != nil && c.DepartmentID != nil
}

// Principal is threaded explicitly from the HTTP layer into services. Token is
// the raw bearer credential, forwarded on downstream identity calls.
type Principal struct {
	Caller *Caller
	Token  string
}

// Authenticated reports whether the principal carries an active identity.
func (p Principal) Authenticated() bool {
	return p.Caller != nil && p.Caller.IsActive
}

//go:generate mockgen -source=identity.go -destination=mock/gateway_mock.go -package=mock
type Gateway interface {
	Validate(ctx context.Context, token string) *Caller
	UsersInDepartment(ctx context.Context, departmentID int64, token string) []Caller
	UserByEmployeeID(ctx context.Context, employeeID, token string) *Caller
}
