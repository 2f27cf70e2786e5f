package holiday

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	// CreateIfAbsent inserts h unless a holiday exists on the same date.
	CreateIfAbsent(ctx context.Context, h *Holiday) (bool, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
	// Delete removes the holiday and returns the deleted row.
	Delete(ctx context.Context, id string) (*Holiday, error)
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

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) CreateIfAbsent(ctx context.Context, h *Holiday) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "date"}}, DoNothing: true}).
		Create(h)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindBetween(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	var items []Holiday
	err := r.conn(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) Delete(ctx context.Context, id string) (*Holiday, error) {
	var h Holiday
	res := r.conn(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&h)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &h, nil
}
