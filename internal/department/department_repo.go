package department

import (
	"context"
	"database/sql"

	"github.com/Thomas-Sunil/newhrms/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id string) error
	FindEmployeeRole(ctx context.Context, employeeID string) (domain.Role, error)
	SetHead(ctx context.Context, id string, employeeID uuid.UUID) error
	FindHeadedDepartmentID(ctx context.Context, employeeID uuid.UUID) (*uuid.UUID, error)
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Omit("Head").Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.conn(ctx).
		Preload("Head").
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var dept Department
	err := r.conn(ctx).
		Preload("Head").
		First(&dept, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Omit("Head").Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Department{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindEmployeeRole(ctx context.Context, employeeID string) (domain.Role, error) {
	var row struct {
		RoleName *string
	}
	res := r.conn(ctx).
		Table("employees AS e").
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

func (r *repository) SetHead(ctx context.Context, id string, employeeID uuid.UUID) error {
	res := r.conn(ctx).
		Model(&Department{}).
		Where("id = ?", id).
		Update("dept_head_id", employeeID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindHeadedDepartmentID returns the department the employee already heads,
// or nil when none.
func (r *repository) FindHeadedDepartmentID(ctx context.Context, employeeID uuid.UUID) (*uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&Department{}).
		Where("dept_head_id = ?", employeeID).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	return &ids[0], nil
}
