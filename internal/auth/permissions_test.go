package auth

import "testing"

func TestRolePermissionsSubset(t *testing.T) {
	allowed := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		allowed[perm] = struct{}{}
	}

	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		for _, perm := range perms {
			if _, ok := allowed[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
		}
	}
}

func TestDefaultPermissionsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		if _, ok := seen[perm]; ok {
			t.Fatalf("duplicate permission %s", perm)
		}
		seen[perm] = struct{}{}
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role string
		perm string
		want bool
	}{
		{role: RoleAdmin, perm: PermSalaryWrite, want: true},
		{role: "HR", perm: PermSalaryWrite, want: true},
		{role: RolePayroll, perm: PermSalaryExport, want: true},
		{role: RoleEmployee, perm: PermSalaryRead, want: true},
		{role: RoleEmployee, perm: PermSalaryWrite, want: false},
		{role: RolePayroll, perm: PermAuditRead, want: false},
		{role: RoleHR, perm: PermAuditRead, want: true},
		{role: "contractor", perm: PermSalaryRead, want: false},
	}
	for _, tc := range tests {
		if got := HasPermission(tc.role, tc.perm); got != tc.want {
			t.Fatalf("HasPermission(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}
