package auth

import "testing"

func TestRoleHas(t *testing.T) {
	cases := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleEmployee, PermLeaveWrite, true},
		{RoleEmployee, PermLeaveApprove, false},
		{RoleEmployee, PermAuditRead, false},
		{RoleManager, PermLeaveApprove, true},
		{RoleManager, PermExportsWrite, true},
		{RoleManager, PermLeaveWrite, false},
		{RoleAdmin, PermAuditRead, true},
		{RoleAdmin, PermOrgAdmin, true},
		{RoleAdmin, PermLeaveApprove, false},
		{"ghost", PermLeaveRead, false},
	}
	for _, c := range cases {
		if got := RoleHas(c.role, c.permission); got != c.want {
			t.Fatalf("RoleHas(%s, %s) = %v, want %v", c.role, c.permission, got, c.want)
		}
	}
}

func TestEveryRoleReadsLeave(t *testing.T) {
	for _, role := range []string{RoleEmployee, RoleManager, RoleAdmin} {
		if !RoleHas(role, PermLeaveRead) {
			t.Fatalf("role %s must be able to read leave data", role)
		}
	}
}
