package dashboard

type DepartmentHeadcount struct {
	DepartmentID   string `json:"department_id" gorm:"column:department_id"`
	DepartmentName string `json:"department_name" gorm:"column:department_name"`
	EmployeeCount  int64  `json:"employee_count" gorm:"column:employee_count"`
}

// StatsResponse is the landing page summary. Pending leaves and present
// today are scoped to what the caller can act on or see.
type StatsResponse struct {
	Role                  string                `json:"role"`
	TotalDepartments      int64                 `json:"total_departments"`
	ActiveEmployees       int64                 `json:"active_employees"`
	HRManagers            int64                 `json:"hr_managers"`
	CXOs                  int64                 `json:"cxos"`
	PendingLeaves         int64                 `json:"pending_leaves"`
	PresentToday          int64                 `json:"present_today"`
	TeamMembers           *int64                `json:"team_members,omitempty"`
	UnassignedDepartments *int64                `json:"unassigned_departments,omitempty"`
	Departments           []DepartmentHeadcount `json:"departments"`
}
