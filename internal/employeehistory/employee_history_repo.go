package employeehistory

import (
	"context"
	"database/sql"

	"github.com/Thomas-Sunil/newhrms/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *EmploymentHistory) error
	FindByEmployee(ctx context.Context, employeeID string) ([]EmploymentHistory, error)
	FindPlacement(ctx context.Context, employeeID string) (*Placement, error)
	UpdatePlacement(ctx context.Context, employeeID string, p Placement) error
	FindActorRole(ctx context.Context, employeeID string) (domain.Role, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, entry *EmploymentHistory) error {
	return r.conn(ctx).
		Omit("OldDepartment", "NewDepartment", "OldDesignation", "NewDesignation").
		Create(entry).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]EmploymentHistory, error) {
	var entries []EmploymentHistory
	err := r.conn(ctx).
		Preload("OldDepartment").
		Preload("NewDepartment").
		Preload("OldDesignation").
		Preload("NewDesignation").
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC, created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindPlacement(ctx context.Context, employeeID string) (*Placement, error) {
	var p Placement
	res := r.conn(ctx).
		Table("employees").
		Select("department_id", "designation_id").
		Where("id = ?", employeeID).
		Limit(1).
		Scan(&p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *repository) UpdatePlacement(ctx context.Context, employeeID string, p Placement) error {
	return r.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Updates(map[string]any{
			"department_id":  p.DepartmentID,
			"designation_id": p.DesignationID,
			"updated_at":     gorm.Expr("NOW()"),
		}).Error
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
	if res.RowsAffected == 0 || row.RoleName == nil {
		return domain.RoleEmployee, nil
	}
	return domain.RoleFromName(*row.RoleName), nil
}
