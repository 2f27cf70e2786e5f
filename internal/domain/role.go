package domain

import "strings"

// Role is the reviewer-relevant classification of an employee's role name.
type Role string

const (
	RoleEmployee       Role = "Employee"
	RoleDepartmentHead Role = "Department Head"
	RoleHRManager      Role = "HR Manager"
	RoleCXO            Role = "CXO"
)

var AllRoles = []Role{RoleEmployee, RoleDepartmentHead, RoleHRManager, RoleCXO}

// RoleFromName maps a stored role name onto the enum. Matching ignores case
// and surrounding spaces. Unknown names are treated as plain employees.
func RoleFromName(name string) Role {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "department head", "dept head", "department_head":
		return RoleDepartmentHead
	case "hr manager", "hr", "hr_manager":
		return RoleHRManager
	case "cxo", "ceo", "chief executive officer":
		return RoleCXO
	default:
		return RoleEmployee
	}
}

// IsSenior reports whether leave requests from this role skip the
// department stage.
func (r Role) IsSenior() bool {
	switch r {
	case RoleDepartmentHead, RoleHRManager, RoleCXO:
		return true
	default:
		return false
	}
}

// CanReadAll reports whether the role may list organisation-wide records.
func (r Role) CanReadAll() bool {
	return r == RoleHRManager || r == RoleCXO
}

func (r Role) String() string {
	return string(r)
}
