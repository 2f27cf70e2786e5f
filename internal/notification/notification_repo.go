package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateBatch(ctx context.Context, items []Notification) error
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error)
	FindDepartmentHead(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error)
	FindActiveByRole(ctx context.Context, roleName string) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBatch skips rows whose event key already exists.
func (r *repository) CreateBatch(ctx context.Context, items []Notification) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_key"}}, DoNothing: true}).
		Create(&items).Error
}

func (r *repository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	var items []Notification
	q := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *repository) MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read_at", gorm.Expr("COALESCE(read_at, ?)", at))
	return res.RowsAffected, res.Error
}

func (r *repository) MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

// FindDepartmentHead returns nil when the department has no head.
func (r *repository) FindDepartmentHead(ctx context.Context, departmentID uuid.UUID) (*uuid.UUID, error) {
	var heads []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("id = ? AND dept_head_id IS NOT NULL", departmentID).
		Limit(1).
		Pluck("dept_head_id", &heads).Error
	if err != nil || len(heads) == 0 {
		return nil, err
	}
	return &heads[0], nil
}

func (r *repository) FindActiveByRole(ctx context.Context, roleName string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("employees e").
		Joins("JOIN roles ro ON ro.id = e.role_id").
		Where("ro.name = ? AND e.status = ?", roleName, "active").
		Pluck("e.id", &ids).Error
	return ids, err
}
