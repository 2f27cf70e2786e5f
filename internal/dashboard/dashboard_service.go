package dashboard

import (
	"context"
	"errors"
	"time"

	dashboarderrors "github.com/Thomas-Sunil/newhrms/internal/dashboard/errors"
	"github.com/Thomas-Sunil/newhrms/internal/domain"
	"github.com/Thomas-Sunil/newhrms/internal/leave"
	"github.com/Thomas-Sunil/newhrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ActorFinder resolves the caller's role and department. leave.Repository
// satisfies it.
type ActorFinder interface {
	FindActor(ctx context.Context, employeeID string) (*leave.Actor, error)
}

type Service interface {
	Stats(ctx context.Context, actorID string) (StatsResponse, error)
}

type service struct {
	repo   Repository
	actors ActorFinder
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, actors ActorFinder, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:   repo,
		actors: actors,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Stats(ctx context.Context, actorID string) (StatsResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(actorID); err != nil {
		log.Warn("dashboard invalid actor id", zap.String("actor_id", actorID))
		return StatsResponse{}, dashboarderrors.ErrInvalidEmployeeID
	}

	actor, err := s.actors.FindActor(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatsResponse{}, dashboarderrors.ErrEmployeeNotFound
		}
		log.Error("dashboard actor lookup failed", zap.Error(err))
		return StatsResponse{}, err
	}

	resp := StatsResponse{Role: actor.Role.String()}
	today := s.now().Truncate(24 * time.Hour)

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&resp.TotalDepartments, s.repo.CountDepartments)
	count(&resp.ActiveEmployees, func(c context.Context) (int64, error) {
		return s.repo.CountActiveEmployees(c, nil)
	})
	count(&resp.HRManagers, func(c context.Context) (int64, error) {
		return s.repo.CountActiveByRole(c, domain.RoleHRManager.String())
	})
	count(&resp.CXOs, func(c context.Context) (int64, error) {
		return s.repo.CountActiveByRole(c, domain.RoleCXO.String())
	})
	count(&resp.PendingLeaves, func(c context.Context) (int64, error) {
		return s.repo.CountLeaves(c, awaitingScope(*actor))
	})
	g.Go(func() error {
		rows, err := s.repo.DepartmentHeadcounts(gctx)
		if err != nil {
			return err
		}
		resp.Departments = rows
		return nil
	})

	switch {
	case actor.Role.CanReadAll():
		var unassigned int64
		resp.UnassignedDepartments = &unassigned
		count(&unassigned, s.repo.CountUnassignedDepartments)
		count(&resp.PresentToday, func(c context.Context) (int64, error) {
			return s.repo.CountPresent(c, today, nil, nil)
		})
	case actor.Role == domain.RoleDepartmentHead && actor.HeadOfDepartmentID != nil:
		dept := *actor.HeadOfDepartmentID
		var team int64
		resp.TeamMembers = &team
		count(&team, func(c context.Context) (int64, error) {
			return s.repo.CountActiveEmployees(c, &dept)
		})
		count(&resp.PresentToday, func(c context.Context) (int64, error) {
			return s.repo.CountPresent(c, today, &dept, nil)
		})
	default:
		self := actor.EmployeeID
		count(&resp.PresentToday, func(c context.Context) (int64, error) {
			return s.repo.CountPresent(c, today, nil, &self)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("dashboard stats failed", zap.String("actor_id", actorID), zap.Error(err))
		return StatsResponse{}, err
	}
	if resp.Departments == nil {
		resp.Departments = []DepartmentHeadcount{}
	}

	return resp, nil
}

// awaitingScope is the set of leave requests waiting on the actor: the HR
// queue for HR and CXO, the department queue for a department head, and
// the actor's own open requests otherwise.
func awaitingScope(actor leave.Actor) LeaveScope {
	switch {
	case actor.Role.CanReadAll():
		return LeaveScope{Statuses: []string{string(leave.StatusDeptApproved)}}
	case actor.Role == domain.RoleDepartmentHead && actor.HeadOfDepartmentID != nil:
		dept := *actor.HeadOfDepartmentID
		return LeaveScope{DepartmentID: &dept, Statuses: []string{string(leave.StatusPending)}}
	}
	self := actor.EmployeeID
	return LeaveScope{
		EmployeeID: &self,
		Statuses:   []string{string(leave.StatusPending), string(leave.StatusDeptApproved)},
	}
}
