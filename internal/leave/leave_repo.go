package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindActor(ctx context.Context, employeeID string) (*Actor, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	// TransitionStatus applies u only while the row is still in status from and
	// returns the number of rows changed.
	TransitionStatus(ctx context.Context, id string, from Status, u ReviewUpdate) (int64, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	db := r.conn(ctx).Preload("Employee")

	if filter.EmployeeID != nil {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.DepartmentID != nil {
		db = db.Where("department_id = ?", *filter.DepartmentID)
	}
	if len(filter.Statuses) > 0 {
		db = db.Where("status IN ?", statusStrings(filter.Statuses))
	}

	var leaves []LeaveRequest
	err := db.Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type actorRow struct {
	EmployeeID         uuid.UUID
	RoleName           *string
	DepartmentID       *uuid.UUID
	HeadOfDepartmentID *uuid.UUID
}

func (r *repository) FindActor(ctx context.Context, employeeID string) (*Actor, error) {
	var row actorRow
	res := r.conn(ctx).Raw(`
		SELECT
			e.id AS employee_id,
			ro.name AS role_name,
			e.department_id,
			d.id AS head_of_department_id
		FROM employees e
		LEFT JOIN roles ro ON ro.id = e.role_id
		LEFT JOIN departments d ON d.dept_head_id = e.id
		WHERE e.id = ?
		ORDER BY d.created_at
		LIMIT 1
	`, employeeID).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	actor := &Actor{
		EmployeeID:         row.EmployeeID,
		Role:               domain.RoleEmployee,
		DepartmentID:       row.DepartmentID,
		HeadOfDepartmentID: row.HeadOfDepartmentID,
	}
	if row.RoleName != nil {
		actor.Role = domain.RoleFromName(*row.RoleName)
	}
	return actor, nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []string{string(StatusRejected), string(StatusDeptRejected)}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) TransitionStatus(ctx context.Context, id string, from Status, u ReviewUpdate) (int64, error) {
	var comments *string
	if u.Comments != "" {
		c := u.Comments
		comments = &c
	}

	cols := map[string]any{"status": string(u.To)}
	switch u.Stage {
	case StageDepartment:
		cols["reviewed_by_dept_head"] = u.ReviewerID
		cols["dept_head_comments"] = comments
		cols["dept_review_date"] = u.ReviewedAt
	case StageHR:
		cols["reviewed_by_hr"] = u.ReviewerID
		cols["hr_comments"] = comments
		cols["hr_review_date"] = u.ReviewedAt
	}

	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(cols)
	return res.RowsAffected, res.Error
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
