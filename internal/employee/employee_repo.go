package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateAccount(ctx context.Context, account *Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindRoleIDByName(ctx context.Context, name string) (*uuid.UUID, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) (*Employee, error)
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

func (r *repository) CreateAccount(ctx context.Context, account *Account) error {
	return r.conn(ctx).Create(account).Error
}

func (r *repository) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&Account{}, "id = ?", id).Error
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Preload("Role").
		Preload("Department").
		Preload("Designation").
		Order("first_name ASC, last_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Select("id", "employee_number", "first_name", "last_name").
		Where("status = ?", StatusActive).
		Order("first_name ASC, last_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Preload("Role").
		Preload("Department").
		Preload("Designation").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// FindRoleIDByName returns nil without error when no role carries the name.
func (r *repository) FindRoleIDByName(ctx context.Context, name string) (*uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Table("roles").
		Where("LOWER(name) = LOWER(?)", name).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	return &ids[0], nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) (*Employee, error) {
	var deleted []Employee
	res := r.conn(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&deleted)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || len(deleted) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &deleted[0], nil
}
