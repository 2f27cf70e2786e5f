package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/domain"
	"github.com/Thomas-Sunil/newhrms/internal/leave"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context) ([]Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	FindHolidayDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
	FindLeaveIntervals(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveInterval, error)
	FindActorRole(ctx context.Context, employeeID string) (domain.Role, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit("Employee").Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit("Employee").Save(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Preload("Employee").
		Order("attendance_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindHolidayDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.conn(ctx).
		Table("holidays").
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Pluck("date", &dates).Error
	return dates, err
}

type leaveIntervalRow struct {
	StartDate time.Time
	EndDate   time.Time
	Status    string
}

func (r *repository) FindLeaveIntervals(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveInterval, error) {
	var rows []leaveIntervalRow
	err := r.conn(ctx).
		Table("leave_requests").
		Select("start_date, end_date, status").
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{string(leave.StatusApproved), string(leave.StatusDeptApproved)}).
		Where("NOT (end_date < ? OR start_date > ?)", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	intervals := make([]LeaveInterval, len(rows))
	for i, row := range rows {
		intervals[i] = LeaveInterval{Start: row.StartDate, End: row.EndDate, Status: leave.Status(row.Status)}
	}
	return intervals, nil
}

func (r *repository) FindActorRole(ctx context.Context, employeeID string) (domain.Role, error) {
	var row struct {
		RoleName *string
	}
	res := r.conn(ctx).
		Table("employees e").
		Select("ro.name AS role_name").
		Joins("LEFT JOIN roles ro ON ro.id = e.role_id").
		Where("e.id = ?", employeeID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}
	if row.RoleName == nil {
		return domain.RoleEmployee, nil
	}
	return domain.RoleFromName(*row.RoleName), nil
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
