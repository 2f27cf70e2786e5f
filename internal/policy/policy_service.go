package policy

import (
	"context"
	"errors"
	"time"

	policyerrors "github.com/Thomas-Sunil/newhrms/internal/policy/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actorID string, req UpsertPolicyRequest) (PolicyResponse, error)
	GetAll(ctx context.Context) ([]PolicyResponse, error)
	GetByID(ctx context.Context, id string) (PolicyResponse, error)
	Update(ctx context.Context, id string, req UpsertPolicyRequest) (PolicyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req UpsertPolicyRequest) (PolicyResponse, error) {
	p := &Policy{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if id, err := uuid.Parse(actorID); err == nil {
		p.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create policy failed", zap.Error(err))
		return PolicyResponse{}, err
	}

	s.logger.Info("policy published", zap.String("policy_id", p.ID.String()), zap.String("actor_id", actorID))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PolicyResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]PolicyResponse, len(items))
	for i, p := range items {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PolicyResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return PolicyResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpsertPolicyRequest) (PolicyResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return PolicyResponse{}, err
	}

	p.Name = req.Name
	p.Description = req.Description
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update policy failed", zap.String("policy_id", id), zap.Error(err))
		return PolicyResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return policyerrors.ErrInvalidPolicyID
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return policyerrors.ErrPolicyNotFound
	}
	return nil
}

func (s *service) find(ctx context.Context, id string) (*Policy, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, policyerrors.ErrInvalidPolicyID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policyerrors.ErrPolicyNotFound
		}
		return nil, err
	}
	return p, nil
}

func mapToResponse(p Policy) PolicyResponse {
	resp := PolicyResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
	}
	if p.CreatedBy != nil {
		resp.CreatedBy = p.CreatedBy.String()
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
