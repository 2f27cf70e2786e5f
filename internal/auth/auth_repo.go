package auth

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Thomas-Sunil/newhrms/internal/department"
	"github.com/Thomas-Sunil/newhrms/internal/designation"
	"github.com/Thomas-Sunil/newhrms/internal/employee"
	"github.com/Thomas-Sunil/newhrms/internal/role"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAccountByLogin(ctx context.Context, login string) (*employee.Account, error)
	FindAccountByID(ctx context.Context, id string) (*employee.Account, error)
	FindProfile(ctx context.Context, accountID uuid.UUID) (*Profile, error)
	FindEmailByUsername(ctx context.Context, username string) (string, error)

	EnsureRole(ctx context.Context, name, description string) (uuid.UUID, error)
	EnsureDesignation(ctx context.Context, name string, level int) (uuid.UUID, error)
	EnsureDepartment(ctx context.Context, name string) (uuid.UUID, error)
	FindEmployeeByUsername(ctx context.Context, username string) (*employee.Employee, error)
	SaveAccount(ctx context.Context, account *employee.Account) error
	SaveEmployee(ctx context.Context, empl *employee.Employee) error
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

func (r *repository) FindAccountByLogin(ctx context.Context, login string) (*employee.Account, error) {
	var account employee.Account
	login = strings.ToLower(strings.TrimSpace(login))
	err := r.conn(ctx).
		Where("LOWER(username) = ? OR LOWER(email) = ?", login, login).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) FindAccountByID(ctx context.Context, id string) (*employee.Account, error) {
	var account employee.Account
	if err := r.conn(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) FindProfile(ctx context.Context, accountID uuid.UUID) (*Profile, error) {
	var p Profile
	res := r.conn(ctx).
		Table("employees e").
		Select(`e.id AS employee_id, e.employee_number, e.first_name, e.last_name,
			e.status, e.department_id, ro.name AS role_name`).
		Joins("LEFT JOIN roles ro ON ro.id = e.role_id").
		Where("e.account_id = ?", accountID).
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

func (r *repository) FindEmailByUsername(ctx context.Context, username string) (string, error) {
	var emails []string
	err := r.conn(ctx).
		Table("employees").
		Where("LOWER(username) = LOWER(?)", username).
		Limit(1).
		Pluck("email", &emails).Error
	if err != nil {
		return "", err
	}
	if len(emails) == 0 || emails[0] == "" {
		return "", gorm.ErrRecordNotFound
	}
	return emails[0], nil
}

func (r *repository) EnsureRole(ctx context.Context, name, description string) (uuid.UUID, error) {
	var ro role.Role
	err := r.conn(ctx).
		Where(role.Role{Name: name}).
		Attrs(role.Role{ID: uuid.New(), Description: description}).
		FirstOrCreate(&ro).Error
	return ro.ID, err
}

func (r *repository) EnsureDesignation(ctx context.Context, name string, level int) (uuid.UUID, error) {
	var d designation.Designation
	err := r.conn(ctx).
		Where(designation.Designation{Name: name}).
		Attrs(designation.Designation{ID: uuid.New(), Level: level}).
		FirstOrCreate(&d).Error
	return d.ID, err
}

func (r *repository) EnsureDepartment(ctx context.Context, name string) (uuid.UUID, error) {
	var d department.Department
	err := r.conn(ctx).
		Omit("Head").
		Where(department.Department{Name: name}).
		Attrs(department.Department{ID: uuid.New()}).
		FirstOrCreate(&d).Error
	return d.ID, err
}

func (r *repository) FindEmployeeByUsername(ctx context.Context, username string) (*employee.Employee, error) {
	var empl employee.Employee
	err := r.conn(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) SaveAccount(ctx context.Context, account *employee.Account) error {
	return r.conn(ctx).Save(account).Error
}

func (r *repository) SaveEmployee(ctx context.Context, empl *employee.Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Save(empl).Error
}
