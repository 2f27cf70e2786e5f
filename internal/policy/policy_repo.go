package policy

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Policy) error
	FindAll(ctx context.Context) ([]Policy, error)
	FindByID(ctx context.Context, id string) (*Policy, error)
	Update(ctx context.Context, p *Policy) error
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Policy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Policy, error) {
	var items []Policy
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Policy, error) {
	var p Policy
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Policy) error {
	return r.db.WithContext(ctx).
		Model(p).
		Updates(map[string]any{"name": p.Name, "description": p.Description}).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Policy{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
