package role

import (
	"context"
	"strings"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/domain"
	roleerrors "github.com/Thomas-Sunil/newhrms/internal/role/errors"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]RoleResponse, error)
	Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("role.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list roles failed", zap.Error(err))
		return nil, err
	}

	res := make([]RoleResponse, len(roles))
	for i, r := range roles {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return RoleResponse{}, roleerrors.ErrRoleNameBlank
	}

	r := &Role{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		if apperror.IsUniqueViolation(err, "uq_role_name") {
			return RoleResponse{}, roleerrors.ErrRoleNameTaken
		}
		s.logger.Error("create role failed", zap.String("name", name), zap.Error(err))
		return RoleResponse{}, err
	}

	s.logger.Info("role created", zap.String("role_id", r.ID.String()), zap.String("name", name))
	return mapToResponse(*r), nil
}

func mapToResponse(r Role) RoleResponse {
	resp := RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Workflow:    domain.RoleFromName(r.Name).String(),
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
