package rbac

import "gorm.io/gorm"

type Repository interface {
	GetEmployeeRoles() ([]EmployeeRoleRow, error)
	GetEmployeeRole(employeeID string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type EmployeeRoleRow struct {
	EmployeeID string
	RoleName   string
}

// GetEmployeeRoles lists active employees with their role name. Employees
// without a role are reported as Employee.
func (r *repository) GetEmployeeRoles() ([]EmployeeRoleRow, error) {
	var result []EmployeeRoleRow

	err := r.db.
		Table("employees e").
		Select("e.id AS employee_id, COALESCE(ro.name, 'Employee') AS role_name").
		Joins("LEFT JOIN roles ro ON ro.id = e.role_id").
		Where("e.status = ?", "active").
		Scan(&result).Error

	return result, err
}

// GetEmployeeRole returns "" with no error when the employee is unknown or
// inactive.
func (r *repository) GetEmployeeRole(employeeID string) (string, error) {
	var names []string

	err := r.db.
		Table("employees e").
		Select("COALESCE(ro.name, 'Employee') AS role_name").
		Joins("LEFT JOIN roles ro ON ro.id = e.role_id").
		Where("e.id = ? AND e.status = ?", employeeID, "active").
		Limit(1).
		Pluck("role_name", &names).Error
	if err != nil || len(names) == 0 {
		return "", err
	}

	return names[0], nil
}
