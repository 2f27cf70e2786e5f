package rbac

import (
	"sort"
	"sync"

	"github.com/Thomas-Sunil/newhrms/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(employeeID string) ([]domain.PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

// LoadPolicy replaces every policy with the role table and the current
// employee to role grouping.
func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	policies := DefaultPolicies()
	count := 0
	for role, perms := range policies {
		for _, p := range perms {
			if _, err := s.enforcer.AddPolicy(role.String(), p.resource, p.action); err != nil {
				return err
			}
			count++
		}
	}

	employeeRoles, err := s.repo.GetEmployeeRoles()
	if err != nil {
		return err
	}
	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, policySubject(er.RoleName)); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policy loaded",
		zap.Int("role_permissions", count),
		zap.Int("employee_roles", len(employeeRoles)),
	)
	return nil
}

// Enforce re-reads the employee's role first, so a role change or
// deactivation takes effect on the next request.
func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncEmployeeUnlocked(req.EmployeeID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("employee_id", req.EmployeeID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(employeeID string) ([]domain.PermissionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncEmployeeUnlocked(employeeID); err != nil {
		return nil, err
	}

	perms, err := s.enforcer.GetImplicitPermissionsForUser(employeeID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		out = append(out, domain.PermissionResponse{Role: p[0], Resource: p[1], Action: p[2]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Action < out[j].Action
	})
	return out, nil
}

func (s *service) syncEmployeeUnlocked(employeeID string) error {
	role, err := s.repo.GetEmployeeRole(employeeID)
	if err != nil {
		return err
	}

	if _, err := s.enforcer.RemoveFilteredGroupingPolicy(0, employeeID); err != nil {
		return err
	}
	if role == "" {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(employeeID, policySubject(role))
	return err
}

// policySubject maps a stored role name, aliases included, onto the
// canonical role the policy table is keyed by.
func policySubject(roleName string) string {
	return domain.RoleFromName(roleName).String()
}
