// Package access decides whether a caller may invoke an operation. Each
// operation carries its allowed role set as data in a Policy.
package access

import (
	"net/http"

	"github.com/Falasefemi2/hr-portal/internal/identity"
	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"
)

type Role string

const (
	RoleHR       Role = "hr"
	RoleHOD      Role = "hod"
	RoleEmployee Role = "employee"
)

type Operation string

const (
	OpLeaveListAll     Operation = "leave:list_all"
	OpLeaveListMine    Operation = "leave:list_mine"
	OpLeaveListPending Operation = "leave:list_pending"
	OpLeaveGet         Operation = "leave:get"
	OpLeaveCreate      Operation = "leave:create"
	OpLeaveDecide      Operation = "leave:decide"

	OpLeaveTypeRead  Operation = "leave_type:read"
	OpLeaveTypeWrite Operation = "leave_type:write"

	OpDepartmentRead      Operation = "department:read"
	OpDepartmentWrite     Operation = "department:write"
	OpDepartmentAssignHOD Operation = "department:assign_hod"
)

var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"authentication required, provide a valid bearer token",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"forbidden: insufficient permissions",
		http.StatusForbidden,
	)
)

// Policy maps every operation to the roles allowed to invoke it.
type Policy map[Operation][]Role

func DefaultPolicy() Policy {
	all := []Role{RoleHR, RoleHOD, RoleEmployee}
	return Policy{
		OpLeaveListAll:     {RoleHR, RoleHOD},
		OpLeaveListMine:    all,
		OpLeaveListPending: {RoleHOD},
		OpLeaveGet:         all,
		OpLeaveCreate:      {RoleEmployee},
		OpLeaveDecide:      {RoleHOD},

		OpLeaveTypeRead:  all,
		OpLeaveTypeWrite: {RoleHR},

		OpDepartmentRead:      all,
		OpDepartmentWrite:     {RoleHR},
		OpDepartmentAssignHOD: {RoleHR},
	}
}

// roleOf returns the caller's normalized role. A missing or inactive caller
// is unauthenticated.
func roleOf(p identity.Principal) (string, error) {
	if !p.Authenticated() {
		return "", ErrUnauthenticated
	}
	return p.Caller.NormalizedRole(), nil
}
