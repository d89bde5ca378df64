package auth

import "strings"

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RolePayroll  = "payroll"
	RoleEmployee = "employee"
)

const (
	PermSalaryRead   = "salary.read"
	PermSalaryWrite  = "salary.write"
	PermSalaryExport = "salary.export"
	PermAuditRead    = "salary.audit"
)

var DefaultPermissions = []string{
	PermSalaryRead,
	PermSalaryWrite,
	PermSalaryExport,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermSalaryRead,
		PermSalaryWrite,
		PermSalaryExport,
		PermAuditRead,
	},
	RoleHR: {
		PermSalaryRead,
		PermSalaryWrite,
		PermSalaryExport,
		PermAuditRead,
	},
	RolePayroll: {
		PermSalaryRead,
		PermSalaryWrite,
		PermSalaryExport,
	},
	RoleEmployee: {
		PermSalaryRead,
	},
}

// HasPermission reports whether role grants permission. Role names are
// matched case-insensitively.
func HasPermission(role, permission string) bool {
	for _, perm := range RolePermissions[strings.ToLower(strings.TrimSpace(role))] {
		if perm == permission {
			return true
		}
	}
	return false
}
