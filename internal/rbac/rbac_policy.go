package rbac

import "github.com/Thomas-Sunil/newhrms/internal/domain"

type permission struct {
	resource string
	action   string
}

var selfService = []permission{
	{"employee", "read"},
	{"employee_history", "read"},
	{"department", "read"},
	{"designation", "read"},
	{"role", "read"},
	{"holiday", "read"},
	{"policy", "read"},
	{"leave", "read"},
	{"leave", "create"},
	{"attendance", "read"},
	{"attendance", "create"},
	{"notification", "read"},
	{"notification", "update"},
	{"dashboard", "read"},
}

var administration = []permission{
	{"employee", "create"},
	{"employee", "update"},
	{"employee", "delete"},
	{"employee_history", "create"},
	{"department", "create"},
	{"department", "update"},
	{"department", "delete"},
	{"designation", "create"},
	{"designation", "update"},
	{"designation", "delete"},
	{"role", "create"},
	{"holiday", "create"},
	{"holiday", "delete"},
	{"policy", "create"},
	{"policy", "update"},
	{"policy", "delete"},
	{"attendance", "mark_absent"},
	{"leave", "review_hr"},
}

// DefaultPolicies maps each role to the resource:action pairs it holds.
// Row level rules (own department, own requests) live in the services.
func DefaultPolicies() map[domain.Role][]permission {
	with := func(base []permission, extra ...permission) []permission {
		out := make([]permission, 0, len(base)+len(extra))
		out = append(out, base...)
		return append(out, extra...)
	}

	return map[domain.Role][]permission{
		domain.RoleEmployee:       with(selfService),
		domain.RoleDepartmentHead: with(selfService, permission{"leave", "review_department"}),
		domain.RoleHRManager:      with(selfService, administration...),
		domain.RoleCXO:            with(selfService, administration...),
	}
}
