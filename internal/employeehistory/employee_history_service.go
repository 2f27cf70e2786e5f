package employeehistory

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	employeehistoryerrors "github.com/Thomas-Sunil/newhrms/internal/employeehistory/errors"
	"github.com/Thomas-Sunil/newhrms/internal/events"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	List(ctx context.Context, actorID, employeeID string) ([]HistoryResponse, error)
	Record(ctx context.Context, actorID, employeeID string, req RecordChangeRequest) (HistoryResponse, error)
	RecordHired(ctx context.Context, event events.EmployeeCreatedEvent) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeehistory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeehistory.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, actorID, employeeID string) ([]HistoryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeehistoryerrors.ErrInvalidEmployeeID
	}

	if !strings.EqualFold(actorID, employeeID) {
		role, err := s.repo.FindActorRole(ctx, actorID)
		if err != nil {
			s.logger.Error("load actor role failed", zap.String("actor_id", actorID), zap.Error(err))
			return nil, err
		}
		if !role.CanReadAll() {
			s.logger.Warn("employment history read denied",
				zap.String("actor_id", actorID),
				zap.String("employee_id", employeeID),
			)
			return nil, employeehistoryerrors.ErrHistoryForbidden
		}
	}

	entries, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list employment history failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	resp := make([]HistoryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

// Record stores a promotion or transfer and moves the employee to the new
// placement in the same transaction. Fields left empty keep the current value.
func (s *service) Record(
	ctx context.Context,
	actorID, employeeID string,
	req RecordChangeRequest,
) (HistoryResponse, error) {
	s.logger.Debug("record employment change requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", employeeID),
		zap.String("change_type", req.ChangeType),
	)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return HistoryResponse{}, employeehistoryerrors.ErrInvalidEmployeeID
	}
	effective, err := time.Parse(dateLayout, strings.TrimSpace(req.EffectiveDate))
	if err != nil {
		return HistoryResponse{}, employeehistoryerrors.ErrInvalidEffectiveDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record employment change begin tx failed", zap.Error(err))
		return HistoryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindPlacement(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HistoryResponse{}, employeehistoryerrors.ErrEmployeeNotFound
		}
		s.logger.Error("record employment change load placement failed", zap.Error(err))
		return HistoryResponse{}, err
	}

	next := Placement{
		DepartmentID:  pick(req.NewDepartmentID, current.DepartmentID),
		DesignationID: pick(req.NewDesignationID, current.DesignationID),
	}

	switch req.ChangeType {
	case ChangePromotion:
		if sameID(current.DesignationID, next.DesignationID) {
			return HistoryResponse{}, employeehistoryerrors.ErrNoPlacementChange
		}
	case ChangeTransfer:
		if sameID(current.DepartmentID, next.DepartmentID) {
			return HistoryResponse{}, employeehistoryerrors.ErrNoPlacementChange
		}
	}

	entry := &EmploymentHistory{
		ID:               uuid.New(),
		EmployeeID:       empID,
		ChangeType:       req.ChangeType,
		OldDepartmentID:  current.DepartmentID,
		NewDepartmentID:  next.DepartmentID,
		OldDesignationID: current.DesignationID,
		NewDesignationID: next.DesignationID,
		EffectiveDate:    effective,
		ChangeReason:     optionalText(req.ChangeReason),
		Remarks:          optionalText(req.Remarks),
	}
	if id, err := uuid.Parse(actorID); err == nil {
		entry.RecordedBy = &id
	}

	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Warn("record employment change persist failed", zap.Error(err))
		return HistoryResponse{}, mapWriteError(err)
	}

	if err := qtx.UpdatePlacement(ctx, employeeID, next); err != nil {
		s.logger.Error("record employment change update employee failed", zap.Error(err))
		return HistoryResponse{}, mapWriteError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("record employment change commit failed", zap.Error(err))
		return HistoryResponse{}, err
	}

	s.logger.Info("employment change recorded",
		zap.String("employee_id", employeeID),
		zap.String("history_id", entry.ID.String()),
		zap.String("change_type", entry.ChangeType),
	)
	return mapToResponse(*entry), nil
}

// RecordHired writes the initial history row for a newly created employee.
// Redelivered events hit the unique entry constraint and are ignored.
func (s *service) RecordHired(ctx context.Context, event events.EmployeeCreatedEvent) error {
	empID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return employeehistoryerrors.ErrInvalidEmployeeID
	}
	joined, err := time.Parse(dateLayout, event.JoinedOn)
	if err != nil {
		joined = event.OccurredAt.UTC().Truncate(24 * time.Hour)
	}

	entry := &EmploymentHistory{
		ID:               uuid.New(),
		EmployeeID:       empID,
		ChangeType:       ChangeHired,
		NewDepartmentID:  pick(event.DepartmentID, nil),
		NewDesignationID: pick(event.DesignationID, nil),
		EffectiveDate:    joined,
		RecordedBy:       pick(event.CreatedBy, nil),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if apperror.IsUniqueViolation(err, "uq_employment_history_entry") {
			s.logger.Warn("hired entry already recorded, skipping",
				zap.String("employee_id", event.EmployeeID),
				zap.String("request_id", event.RequestID),
			)
			return nil
		}
		s.logger.Error("record hired entry failed", zap.String("employee_id", event.EmployeeID), zap.Error(err))
		return err
	}

	s.logger.Info("hired entry recorded",
		zap.String("employee_id", event.EmployeeID),
		zap.String("request_id", event.RequestID),
	)
	return nil
}

func mapWriteError(err error) error {
	switch {
	case apperror.IsUniqueViolation(err, "uq_employment_history_entry"):
		return employeehistoryerrors.ErrHistoryEntryExists
	case apperror.IsForeignKeyViolation(err):
		return employeehistoryerrors.ErrInvalidReference
	}
	return err
}

func pick(v string, fallback *uuid.UUID) *uuid.UUID {
	if id, err := uuid.Parse(v); err == nil {
		return &id
	}
	return fallback
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func optionalText(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func idString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func mapToResponse(e EmploymentHistory) HistoryResponse {
	resp := HistoryResponse{
		ID:               e.ID.String(),
		EmployeeID:       e.EmployeeID.String(),
		ChangeType:       e.ChangeType,
		OldDepartmentID:  idString(e.OldDepartmentID),
		NewDepartmentID:  idString(e.NewDepartmentID),
		OldDesignationID: idString(e.OldDesignationID),
		NewDesignationID: idString(e.NewDesignationID),
		EffectiveDate:    e.EffectiveDate.Format(dateLayout),
		RecordedBy:       idString(e.RecordedBy),
	}
	if e.ChangeReason != nil {
		resp.ChangeReason = *e.ChangeReason
	}
	if e.Remarks != nil {
		resp.Remarks = *e.Remarks
	}
	if e.OldDepartment != nil {
		resp.OldDepartmentName = e.OldDepartment.Name
	}
	if e.NewDepartment != nil {
		resp.NewDepartmentName = e.NewDepartment.Name
	}
	if e.OldDesignation != nil {
		resp.OldDesignationName = e.OldDesignation.Name
	}
	if e.NewDesignation != nil {
		resp.NewDesignationName = e.NewDesignation.Name
	}
	return resp
}
