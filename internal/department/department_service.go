package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	departmenterrors "github.com/Thomas-Sunil/newhrms/internal/department/errors"
	"github.com/Thomas-Sunil/newhrms/internal/domain"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DepartmentAllKey = "departments:all"
	cacheTTL         = 30 * time.Minute

	uniqueDepartmentName = "uq_department_name"
	uniqueDepartmentHead = "uq_department_head"
)

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
	AssignHead(ctx context.Context, id string, req AssignHeadRequest) (DepartmentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		if apperror.IsUniqueViolation(err, uniqueDepartmentName) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNameTaken
		}
		s.logger.Error("create department failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("department created", zap.String("department_id", dept.ID.String()))
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, DepartmentAllKey).Result()
		if err == nil {
			var resp []DepartmentResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DepartmentAllKey, func() (interface{}, error) {
		depts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(depts)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, DepartmentAllKey, string(jsonData), cacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, notFound(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, notFound(err)
	}

	dept.Name = req.Name
	dept.Description = req.Description

	if err := qtx.Update(ctx, dept); err != nil {
		if apperror.IsUniqueViolation(err, uniqueDepartmentName) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNameTaken
		}
		s.logger.Error("update department failed", zap.String("department_id", id), zap.Error(err))
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		if apperror.IsForeignKeyViolation(err) {
			s.logger.Warn("delete department still referenced", zap.String("department_id", id))
			return departmenterrors.ErrDepartmentInUse
		}
		return notFound(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("department deleted", zap.String("department_id", id))
	return nil
}

func (s *service) AssignHead(ctx context.Context, id string, req AssignHeadRequest) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	headID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrHeadNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role, err := qtx.FindEmployeeRole(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrHeadNotFound
		}
		return DepartmentResponse{}, err
	}
	if role != domain.RoleDepartmentHead {
		s.logger.Warn("assign head rejected",
			zap.String("department_id", id),
			zap.String("employee_id", req.EmployeeID),
			zap.String("role", role.String()),
		)
		return DepartmentResponse{}, departmenterrors.ErrHeadRoleRequired
	}

	// A head reviews for exactly one department.
	headed, err := qtx.FindHeadedDepartmentID(ctx, headID)
	if err != nil {
		return DepartmentResponse{}, err
	}
	if headed != nil && *headed != deptID {
		s.logger.Warn("assign head rejected, employee already heads a department",
			zap.String("department_id", id),
			zap.String("employee_id", req.EmployeeID),
			zap.String("headed_department_id", headed.String()),
		)
		return DepartmentResponse{}, departmenterrors.ErrHeadAlreadyAssigned
	}

	if err := qtx.SetHead(ctx, id, headID); err != nil {
		if apperror.IsUniqueViolation(err, uniqueDepartmentHead) {
			return DepartmentResponse{}, departmenterrors.ErrHeadAlreadyAssigned
		}
		return DepartmentResponse{}, notFound(err)
	}

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, notFound(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("department head assigned",
		zap.String("department_id", id),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*dept), nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DepartmentAllKey).Err(); err != nil {
		s.logger.Error("failed to invalidate cache", zap.String("key", DepartmentAllKey), zap.Error(err))
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	return err
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          dept.ID.String(),
		Name:        dept.Name,
		Description: dept.Description,
	}
	if dept.DeptHeadID != nil {
		resp.DeptHeadID = dept.DeptHeadID.String()
	}
	if dept.Head != nil {
		resp.HeadName = dept.Head.FirstName
		if dept.Head.LastName != "" {
			resp.HeadName += " " + dept.Head.LastName
		}
	}
	if !dept.CreatedAt.IsZero() {
		resp.CreatedAt = dept.CreatedAt.Format(time.RFC3339)
	}
	if !dept.UpdatedAt.IsZero() {
		resp.UpdatedAt = dept.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
