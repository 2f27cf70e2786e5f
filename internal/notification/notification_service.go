package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/domain"
	"github.com/Thomas-Sunil/newhrms/internal/events"
	notificationerrors "github.com/Thomas-Sunil/newhrms/internal/notification/errors"
	"github.com/Thomas-Sunil/newhrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Leave statuses as they appear on the wire.
const (
	statusPending      = "pending"
	statusDeptApproved = "dept_approved"
	statusApproved     = "approved"
	statusRejected     = "rejected"
	statusDeptRejected = "dept_rejected"
)

type Service interface {
	List(ctx context.Context, actorID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, actorID, id string) error
	MarkAllRead(ctx context.Context, actorID string) (MarkAllReadResponse, error)
	HandleLeaveEvent(ctx context.Context, payload []byte) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		repo:   repo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) List(ctx context.Context, actorID string, unreadOnly bool) ([]NotificationResponse, error) {
	recipient, err := uuid.Parse(actorID)
	if err != nil {
		return nil, notificationerrors.ErrInvalidEmployeeID
	}

	items, err := s.repo.FindByRecipient(ctx, recipient, unreadOnly)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("actor_id", actorID), zap.Error(err))
		return nil, err
	}

	resp := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		resp = append(resp, toResponse(n))
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, actorID, id string) error {
	recipient, err := uuid.Parse(actorID)
	if err != nil {
		return notificationerrors.ErrInvalidEmployeeID
	}
	nid, err := uuid.Parse(id)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	n, err := s.repo.MarkRead(ctx, nid, recipient, s.now())
	if err != nil {
		s.logger.Error("mark notification read failed", zap.String("id", id), zap.Error(err))
		return err
	}
	// Someone else's notification looks the same as a missing one.
	if n == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, actorID string) (MarkAllReadResponse, error) {
	recipient, err := uuid.Parse(actorID)
	if err != nil {
		return MarkAllReadResponse{}, notificationerrors.ErrInvalidEmployeeID
	}

	n, err := s.repo.MarkAllRead(ctx, recipient, s.now())
	if err != nil {
		s.logger.Error("mark all notifications read failed", zap.String("actor_id", actorID), zap.Error(err))
		return MarkAllReadResponse{}, err
	}
	return MarkAllReadResponse{Updated: n}, nil
}

// HandleLeaveEvent turns a leave workflow event into notifications:
// the department head hears about new requests, HR managers about requests
// that cleared the department stage, and the requester about decisions.
func (s *service) HandleLeaveEvent(ctx context.Context, payload []byte) error {
	log := contextutil.GetLogger(ctx, s.logger)

	var env events.LeaveEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("%w: %v", notificationerrors.ErrMalformedEvent, err)
	}

	var (
		items []Notification
		err   error
	)
	switch env.EventType {
	case events.LeaveSubmittedEventType:
		var evt events.LeaveSubmittedEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("%w: %v", notificationerrors.ErrMalformedEvent, err)
		}
		items, err = s.forSubmitted(ctx, evt)
	case events.LeaveReviewedEventType:
		var evt events.LeaveReviewedEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("%w: %v", notificationerrors.ErrMalformedEvent, err)
		}
		items, err = s.forReviewed(ctx, evt)
	default:
		log.Debug("ignoring leave event", zap.String("event_type", env.EventType))
		return nil
	}
	if err != nil {
		log.Error("resolve notification recipients failed", zap.String("event_type", env.EventType), zap.Error(err))
		return err
	}

	if err := s.repo.CreateBatch(ctx, items); err != nil {
		log.Error("store notifications failed", zap.Int("count", len(items)), zap.Error(err))
		return err
	}

	log.Info("leave notifications stored", zap.String("event_type", env.EventType), zap.Int("count", len(items)))
	return nil
}

func (s *service) forSubmitted(ctx context.Context, evt events.LeaveSubmittedEvent) ([]Notification, error) {
	leaveID, requester, err := parseLeaveIDs(evt.LeaveID, evt.EmployeeID)
	if err != nil {
		return nil, err
	}

	period := fmt.Sprintf("%s to %s (%d day(s))", evt.StartDate, evt.EndDate, evt.TotalDays)

	if evt.Status == statusDeptApproved {
		return s.notifyRole(ctx, domain.RoleHRManager, requester, leaveID, evt.Status, TypeLeaveAwaitingHR,
			"Leave request awaiting HR review",
			fmt.Sprintf("A %s leave request for %s is waiting for HR review.", evt.LeaveType, period))
	}

	if evt.DepartmentID == "" {
		return nil, nil
	}
	deptID, err := uuid.Parse(evt.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: department_id", notificationerrors.ErrMalformedEvent)
	}
	head, err := s.repo.FindDepartmentHead(ctx, deptID)
	if err != nil {
		return nil, err
	}
	if head == nil || *head == requester {
		return nil, nil
	}

	return []Notification{s.build(*head, leaveID, evt.Status, TypeLeaveSubmitted,
		"New leave request",
		fmt.Sprintf("A %s leave request for %s needs your review.", evt.LeaveType, period))}, nil
}

func (s *service) forReviewed(ctx context.Context, evt events.LeaveReviewedEvent) ([]Notification, error) {
	leaveID, requester, err := parseLeaveIDs(evt.LeaveID, evt.EmployeeID)
	if err != nil {
		return nil, err
	}

	switch evt.ToStatus {
	case statusDeptApproved:
		return s.notifyRole(ctx, domain.RoleHRManager, requester, leaveID, evt.ToStatus, TypeLeaveAwaitingHR,
			"Leave request awaiting HR review",
			"A leave request was approved by the department and is waiting for HR review.")
	case statusDeptRejected:
		return []Notification{s.build(requester, leaveID, evt.ToStatus, TypeLeaveDeptRejected,
			"Leave request rejected",
			withComments("Your leave request was rejected by your department head.", evt.Comments))}, nil
	case statusApproved, statusRejected:
		return []Notification{s.build(requester, leaveID, evt.ToStatus, TypeLeaveDecided,
			"Leave request "+evt.ToStatus,
			withComments("Your leave request was "+evt.ToStatus+".", evt.Comments))}, nil
	}
	return nil, nil
}

func (s *service) notifyRole(
	ctx context.Context,
	role domain.Role,
	skip, leaveID uuid.UUID,
	status, kind, title, message string,
) ([]Notification, error) {
	ids, err := s.repo.FindActiveByRole(ctx, role.String())
	if err != nil {
		return nil, err
	}
	items := make([]Notification, 0, len(ids))
	for _, id := range ids {
		if id == skip {
			continue
		}
		items = append(items, s.build(id, leaveID, status, kind, title, message))
	}
	return items, nil
}

func (s *service) build(recipient, leaveID uuid.UUID, status, kind, title, message string) Notification {
	lid := leaveID
	return Notification{
		ID:          uuid.New(),
		RecipientID: recipient,
		Type:        kind,
		Title:       title,
		Message:     message,
		LeaveID:     &lid,
		EventKey:    fmt.Sprintf("%s:%s:%s", leaveID, status, recipient),
		CreatedAt:   s.now(),
	}
}

func parseLeaveIDs(leaveID, employeeID string) (uuid.UUID, uuid.UUID, error) {
	lid, err := uuid.Parse(leaveID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: leave_id", notificationerrors.ErrMalformedEvent)
	}
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: employee_id", notificationerrors.ErrMalformedEvent)
	}
	return lid, eid, nil
}

func withComments(msg, comments string) string {
	if comments == "" {
		return msg
	}
	return msg + " Comments: " + comments
}

func toResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.ReadAt != nil,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.LeaveID != nil {
		v := n.LeaveID.String()
		resp.LeaveID = &v
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
