package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveScope narrows a leave count. Nil fields do not filter.
type LeaveScope struct {
	EmployeeID   *uuid.UUID
	DepartmentID *uuid.UUID
	Statuses     []string
}

type Repository interface {
	CountDepartments(ctx context.Context) (int64, error)
	CountUnassignedDepartments(ctx context.Context) (int64, error)
	CountActiveEmployees(ctx context.Context, departmentID *uuid.UUID) (int64, error)
	CountActiveByRole(ctx context.Context, roleName string) (int64, error)
	DepartmentHeadcounts(ctx context.Context) ([]DepartmentHeadcount, error)
	CountLeaves(ctx context.Context, scope LeaveScope) (int64, error)
	CountPresent(ctx context.Context, day time.Time, departmentID, employeeID *uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountDepartments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("departments").Count(&n).Error
	return n, err
}

func (r *repository) CountUnassignedDepartments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("departments").Where("dept_head_id IS NULL").Count(&n).Error
	return n, err
}

func (r *repository) CountActiveEmployees(ctx context.Context, departmentID *uuid.UUID) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Table("employees").Where("status = ?", "active")
	if departmentID != nil {
		q = q.Where("department_id = ?", *departmentID)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *repository) CountActiveByRole(ctx context.Context, roleName string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("employees e").
		Joins("JOIN roles ro ON ro.id = e.role_id").
		Where("e.status = ? AND ro.name = ?", "active", roleName).
		Count(&n).Error
	return n, err
}

func (r *repository) DepartmentHeadcounts(ctx context.Context) ([]DepartmentHeadcount, error) {
	var rows []DepartmentHeadcount
	err := r.db.WithContext(ctx).Raw(`
		SELECT d.id AS department_id, d.name AS department_name, COUNT(e.id) AS employee_count
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id AND e.status = 'active'
		GROUP BY d.id, d.name
		ORDER BY d.name
	`).Scan(&rows).Error
	return rows, err
}

func (r *repository) CountLeaves(ctx context.Context, scope LeaveScope) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Table("leave_requests")
	if scope.EmployeeID != nil {
		q = q.Where("employee_id = ?", *scope.EmployeeID)
	}
	if scope.DepartmentID != nil {
		q = q.Where("department_id = ?", *scope.DepartmentID)
	}
	if len(scope.Statuses) > 0 {
		q = q.Where("status IN ?", scope.Statuses)
	}
	err := q.Count(&n).Error
	return n, err
}

// CountPresent counts attendance rows for day that have a clock in.
func (r *repository) CountPresent(ctx context.Context, day time.Time, departmentID, employeeID *uuid.UUID) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).
		Table("attendances a").
		Where("a.attendance_date = ? AND a.clock_in IS NOT NULL", day.Format("2006-01-02"))
	if departmentID != nil {
		q = q.Joins("JOIN employees e ON e.id = a.employee_id").Where("e.department_id = ?", *departmentID)
	}
	if employeeID != nil {
		q = q.Where("a.employee_id = ?", *employeeID)
	}
	err := q.Count(&n).Error
	return n, err
}
