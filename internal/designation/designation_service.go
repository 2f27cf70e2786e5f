package designation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	designationerrors "github.com/Thomas-Sunil/newhrms/internal/designation/errors"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DesignationAllKey = "designations:all"

	uniqueDesignationName = "uq_designation_name"
)

type Service interface {
	Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error)
	GetAll(ctx context.Context) ([]DesignationResponse, error)
	GetByID(ctx context.Context, id string) (DesignationResponse, error)
	Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("designation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("designation.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d := &Designation{
		ID:    uuid.New(),
		Name:  req.Name,
		Level: levelOrDefault(req.Level),
	}

	if err := qtx.Create(ctx, d); err != nil {
		return DesignationResponse{}, s.mapWriteError(err)
	}

	if err := tx.Commit(); err != nil {
		return DesignationResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DesignationResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, DesignationAllKey).Result()
		if err == nil {
			var resp []DesignationResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DesignationAllKey, func() (interface{}, error) {
		items, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(items)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, DesignationAllKey, string(jsonData), 30*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DesignationResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DesignationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DesignationResponse{}, designationerrors.ErrInvalidDesignationID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DesignationResponse{}, notFound(err)
	}

	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DesignationResponse{}, designationerrors.ErrInvalidDesignationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DesignationResponse{}, notFound(err)
	}

	d.Name = req.Name
	if req.Level > 0 {
		d.Level = req.Level
	}

	if err := qtx.Update(ctx, d); err != nil {
		return DesignationResponse{}, s.mapWriteError(err)
	}

	if err := tx.Commit(); err != nil {
		return DesignationResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return designationerrors.ErrInvalidDesignationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return designationerrors.ErrDesignationInUse
		}
		return notFound(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) mapWriteError(err error) error {
	if apperror.IsUniqueViolation(err, uniqueDesignationName) {
		return designationerrors.ErrDesignationNameTaken
	}
	s.logger.Error("persist designation failed", zap.Error(err))
	return err
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DesignationAllKey).Err(); err != nil {
		s.logger.Error("failed to invalidate cache", zap.String("key", DesignationAllKey), zap.Error(err))
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return designationerrors.ErrDesignationNotFound
	}
	return err
}

func levelOrDefault(level int) int {
	if level < 1 {
		return 1
	}
	return level
}

func mapToResponse(d Designation) DesignationResponse {
	resp := DesignationResponse{
		ID:    d.ID.String(),
		Name:  d.Name,
		Level: d.Level,
	}
	if !d.CreatedAt.IsZero() {
		resp.CreatedAt = d.CreatedAt.Format(time.RFC3339)
	}
	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = d.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(items []Designation) []DesignationResponse {
	res := make([]DesignationResponse, len(items))
	for i, d := range items {
		res[i] = mapToResponse(d)
	}
	return res
}
