package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/events"
	leaveerrors "github.com/Thomas-Sunil/newhrms/internal/leave/errors"
	"github.com/Thomas-Sunil/newhrms/internal/messaging/kafka"
	"github.com/Thomas-Sunil/newhrms/internal/shared/audit"
	"github.com/Thomas-Sunil/newhrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actorID string, mine bool) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actorID, id string) (LeaveResponse, error)
	DeptReview(ctx context.Context, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	HRReview(ctx context.Context, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	GenerateSlip(ctx context.Context, actorID, id string) ([]byte, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	audit  audit.Logger
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, audit.Nop(), logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	auditLogger audit.Logger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		audit:  auditLogger,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("actor_id", actorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	totalDays, err := TotalDays(startDate, endDate)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	actor, err := s.loadActor(ctx, qtx, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, actorID, startDate, endDate)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", actorID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:           uuid.New(),
		EmployeeID:   actor.EmployeeID,
		DepartmentID: actor.DepartmentID,
		LeaveType:    req.LeaveType,
		StartDate:    startDate,
		EndDate:      endDate,
		TotalDays:    totalDays,
		Reason:       req.Reason,
		Status:       InitialStatus(actor.Role),
		CreatedAt:    s.now(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueue(ctx, tx, l.ID.String(), events.LeaveSubmittedEventType, events.LeaveSubmittedEvent{
		EventType:    events.LeaveSubmittedEventType,
		RequestID:    contextutil.GetRequestID(ctx),
		LeaveID:      l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		DepartmentID: uuidString(l.DepartmentID),
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format(dateLayout),
		EndDate:      l.EndDate.Format(dateLayout),
		TotalDays:    l.TotalDays,
		Status:       string(l.Status),
		OccurredAt:   s.now(),
	}); err != nil {
		s.logger.Error("create leave outbox persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", actorID),
		zap.String("status", string(l.Status)),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, mine bool) ([]LeaveResponse, error) {
	actor, err := s.loadActor(ctx, s.repo, actorID)
	if err != nil {
		return nil, err
	}

	filter := VisibilityFor(*actor)
	if mine {
		filter = OwnRequests(*actor)
	}

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list leaves failed", zap.String("actor_id", actorID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	actor, err := s.loadActor(ctx, s.repo, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.findVisible(ctx, s.repo, *actor, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) DeptReview(ctx context.Context, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	return s.review(ctx, actorID, id, StageDepartment, req)
}

func (s *service) HRReview(ctx context.Context, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	return s.review(ctx, actorID, id, StageHR, req)
}

func (s *service) review(ctx context.Context, actorID, id string, stage Stage, req ReviewLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("stage", string(stage)),
		zap.String("action", req.Action),
	)

	action, err := ParseAction(req.Action)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidAction
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	actor, err := s.loadActor(ctx, qtx, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("review leave load failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if l.Status.IsTerminal() {
		s.logger.Warn("review leave already finalized",
			zap.String("leave_id", id),
			zap.String("status", string(l.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveFinalized
	}
	if current, _ := StageOf(l.Status); current != stage {
		if stage == StageHR {
			return LeaveResponse{}, leaveerrors.ErrNotAwaitingHRReview
		}
		return LeaveResponse{}, leaveerrors.ErrNotAwaitingDepartmentReview
	}
	if !CanReview(*actor, *l) {
		s.logger.Warn("review leave forbidden",
			zap.String("leave_id", id),
			zap.String("actor_id", actorID),
			zap.String("actor_role", actor.Role.String()),
			zap.String("status", string(l.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrReviewForbidden
	}

	next, err := NextStatus(l.Status, actor.Role, action)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrReviewForbidden
	}

	update := ReviewUpdate{
		Stage:      stage,
		To:         next,
		ReviewerID: actor.EmployeeID,
		Comments:   req.Comments,
		ReviewedAt: s.now(),
	}
	affected, err := qtx.TransitionStatus(ctx, id, l.Status, update)
	if err != nil {
		s.logger.Error("review leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if affected == 0 {
		s.logger.Warn("review leave lost race",
			zap.String("leave_id", id),
			zap.String("expected_status", string(l.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveConflict
	}

	from := l.Status
	applyReview(l, update)

	if err := s.enqueue(ctx, tx, l.ID.String(), events.LeaveReviewedEventType, events.LeaveReviewedEvent{
		EventType:    events.LeaveReviewedEventType,
		RequestID:    contextutil.GetRequestID(ctx),
		LeaveID:      l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		DepartmentID: uuidString(l.DepartmentID),
		Stage:        string(stage),
		Action:       string(action),
		FromStatus:   string(from),
		ToStatus:     string(next),
		ReviewerID:   actor.EmployeeID.String(),
		Comments:     req.Comments,
		OccurredAt:   update.ReviewedAt,
	}); err != nil {
		s.logger.Error("review leave outbox persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  "LEAVE_REVIEWED",
		Message: fmt.Sprintf("leave %s moved from %s to %s", id, from, next),
		ActorID: actorID,
		Meta: map[string]any{
			"leave_id": id,
			"stage":    string(stage),
			"action":   string(action),
		},
	})
	s.logger.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("from_status", string(from)),
		zap.String("to_status", string(next)),
	)

	return mapToResponse(*l), nil
}

func (s *service) GenerateSlip(ctx context.Context, actorID, id string) ([]byte, error) {
	actor, err := s.loadActor(ctx, s.repo, actorID)
	if err != nil {
		return nil, err
	}

	l, err := s.findVisible(ctx, s.repo, *actor, id)
	if err != nil {
		return nil, err
	}
	if l.Status != StatusApproved {
		return nil, leaveerrors.ErrSlipUnavailable
	}

	pdf, err := RenderSlip(*l, s.now())
	if err != nil {
		s.logger.Error("render leave slip failed", zap.String("leave_id", id), zap.Error(err))
		return nil, err
	}
	return pdf, nil
}

func (s *service) loadActor(ctx context.Context, repo Repository, actorID string) (*Actor, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}
	actor, err := repo.FindActor(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("leave actor not found", zap.String("actor_id", actorID))
			return nil, leaveerrors.ErrActorNotFound
		}
		s.logger.Error("load leave actor failed", zap.String("actor_id", actorID), zap.Error(err))
		return nil, err
	}
	return actor, nil
}

// findVisible hides requests outside the actor's visibility behind a 404.
func (s *service) findVisible(ctx context.Context, repo Repository, actor Actor, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	if !CanView(actor, *l) {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	return l, nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, aggregateID, eventType string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"leave_request",
		aggregateID,
		eventType,
		events.LeaveWorkflowTopic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func applyReview(l *LeaveRequest, u ReviewUpdate) {
	var comments *string
	if u.Comments != "" {
		c := u.Comments
		comments = &c
	}
	reviewer := u.ReviewerID
	at := u.ReviewedAt

	l.Status = u.To
	switch u.Stage {
	case StageDepartment:
		l.ReviewedByDeptHead = &reviewer
		l.DeptHeadComments = comments
		l.DeptReviewDate = &at
	case StageHR:
		l.ReviewedByHR = &reviewer
		l.HRComments = comments
		l.HRReviewDate = &at
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func optionalUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func optionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                 l.ID.String(),
		EmployeeID:         l.EmployeeID.String(),
		DepartmentID:       optionalUUID(l.DepartmentID),
		LeaveType:          l.LeaveType,
		StartDate:          l.StartDate.Format(dateLayout),
		EndDate:            l.EndDate.Format(dateLayout),
		TotalDays:          l.TotalDays,
		Reason:             l.Reason,
		Status:             string(l.Status),
		ReviewedByDeptHead: optionalUUID(l.ReviewedByDeptHead),
		DeptHeadComments:   l.DeptHeadComments,
		DeptReviewDate:     optionalTime(l.DeptReviewDate),
		ReviewedByHR:       optionalUUID(l.ReviewedByHR),
		HRComments:         l.HRComments,
		HRReviewDate:       optionalTime(l.HRReviewDate),
		CreatedAt:          l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName()
		resp.EmployeeNumber = l.Employee.EmployeeNumber
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
