package access_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/Falasefemi2/hr-portal/internal/access"
	"github.com/Falasefemi2/hr-portal/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principal(role string) identity.Principal {
	return identity.Principal{
		Caller: &identity.Caller{EmployeeID: "E1", Role: role, IsActive: true},
		Token:  "tok",
	}
}

func inactive(role string) identity.Principal {
	p := principal(role)
	p.Caller.IsActive = false
	return p
}

func TestGate_MatchesPolicyTable(t *testing.T) {
	policy := access.DefaultPolicy()
	gate, err := access.NewGate(policy)
	require.NoError(t, err)

	roles := []string{"hr", "HOD", "Employee", "contractor"}
	for op, allowed := range policy {
		for _, role := range roles {
			err := gate.Check(principal(role), op)
			if slices.Contains(allowed, access.Role(strings.ToLower(role))) {
				assert.NoError(t, err, "op=%s role=%s", op, role)
				continue
			}
			assert.ErrorIs(t, err, access.ErrForbidden, "op=%s role=%s", op, role)
		}
	}
}

func TestGate_EmptyPolicyForbidsEveryone(t *testing.T) {
	gate, err := access.NewGate(access.Policy{})
	require.NoError(t, err)

	assert.ErrorIs(t, gate.Check(principal("hr"), access.OpLeaveListAll), access.ErrForbidden)
	assert.ErrorIs(t, gate.Check(identity.Principal{}, access.OpLeaveListAll), access.ErrUnauthenticated)
}

func TestGate_Check(t *testing.T) {
	gate, err := access.NewGate(access.DefaultPolicy())
	require.NoError(t, err)

	cases := []struct {
		name string
		p    identity.Principal
		op   access.Operation
		want error
	}{
		{"employee creates", principal("employee"), access.OpLeaveCreate, nil},
		{"hod cannot create", principal("hod"), access.OpLeaveCreate, access.ErrForbidden},
		{"hr cannot create", principal("hr"), access.OpLeaveCreate, access.ErrForbidden},
		{"hod decides", principal("hod"), access.OpLeaveDecide, nil},
		{"hr cannot decide", principal("hr"), access.OpLeaveDecide, access.ErrForbidden},
		{"employee cannot list all", principal("employee"), access.OpLeaveListAll, access.ErrForbidden},
		{"hr lists all", principal("hr"), access.OpLeaveListAll, nil},
		{"everyone lists own", principal("employee"), access.OpLeaveListMine, nil},
		{"only hod lists pending", principal("hr"), access.OpLeaveListPending, access.ErrForbidden},
		{"hr writes leave types", principal("hr"), access.OpLeaveTypeWrite, nil},
		{"hod cannot assign hod", principal("hod"), access.OpDepartmentAssignHOD, access.ErrForbidden},
		{"anonymous", identity.Principal{}, access.OpLeaveGet, access.ErrUnauthenticated},
		{"inactive caller", inactive("hr"), access.OpLeaveListAll, access.ErrUnauthenticated},
		{"role is case insensitive", principal("HoD"), access.OpLeaveDecide, nil},
		{"role is trimmed", principal(" HR "), access.OpLeaveTypeWrite, nil},
		{"unknown operation", principal("hr"), access.Operation("payroll:run"), access.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := gate.Check(tc.p, tc.op)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
