package designation

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Designation) error
	FindAll(ctx context.Context) ([]Designation, error)
	FindByID(ctx context.Context, id string) (*Designation, error)
	Update(ctx context.Context, d *Designation) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, d *Designation) error {
	return r.conn(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Designation, error) {
	var items []Designation
	err := r.conn(ctx).
		Order("level DESC, name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Designation, error) {
	var d Designation
	if err := r.conn(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Designation) error {
	return r.conn(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Designation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
