package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/Thomas-Sunil/newhrms/internal/attendance/errors"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"

	uniqueEmployeeDate = "uq_attendance_employee_date"
)

type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	MarkAbsent(ctx context.Context, actorID string, req MarkAbsentRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, actorID string) ([]AttendanceResponse, error)
	Calendar(ctx context.Context, actorID, employeeID, month string) (CalendarResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	s.logger.Debug("clock in requested", zap.String("employee_id", employeeID))

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := civil(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeUUID,
			AttendanceDate: today,
			ClockIn:        &now,
			Status:         StatusPresent,
			Notes:          req.Notes,
		}
		if err := qtx.Create(ctx, row); err != nil {
			if apperror.IsUniqueViolation(err, uniqueEmployeeDate) {
				s.logger.Warn("clock in raced with another clock in", zap.String("employee_id", employeeID))
				return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
			}
			s.logger.Error("clock in persist failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	case err != nil:
		s.logger.Error("clock in lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	case row.ClockIn != nil:
		s.logger.Warn("clock in duplicate", zap.String("employee_id", employeeID))
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	default:
		// Pre-marked absent; the employee showed up after all.
		row.ClockIn = &now
		row.Status = StatusPresent
		if req.Notes != nil {
			row.Notes = req.Notes
		}
		if err := qtx.Update(ctx, row); err != nil {
			s.logger.Error("clock in update failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock in commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	s.logger.Info("clock in success",
		zap.String("employee_id", employeeID),
		zap.String("attendance_id", row.ID.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	s.logger.Debug("clock out requested", zap.String("employee_id", employeeID))

	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, civil(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrClockInNotFound
		}
		s.logger.Error("clock out lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if row.ClockIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrClockInNotFound
	}
	if row.ClockOut != nil {
		s.logger.Warn("clock out duplicate", zap.String("employee_id", employeeID))
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.ClockOut = &now
	row.Status = StatusClockedOut
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("clock out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("clock out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	s.logger.Info("clock out success", zap.String("employee_id", employeeID))
	return mapToResponse(*row), nil
}

func (s *service) MarkAbsent(ctx context.Context, actorID string, req MarkAbsentRequest) (AttendanceResponse, error) {
	s.logger.Debug("mark absent requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark absent begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !exists {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	row, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, date)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeUUID,
			AttendanceDate: date,
			Status:         StatusAbsent,
			Notes:          req.Notes,
			MarkedBy:       &actorUUID,
		}
		if err := qtx.Create(ctx, row); err != nil {
			if apperror.IsUniqueViolation(err, uniqueEmployeeDate) {
				return AttendanceResponse{}, attendanceerrors.ErrAlreadyPresent
			}
			s.logger.Error("mark absent persist failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	case err != nil:
		return AttendanceResponse{}, err
	case row.ClockIn != nil:
		s.logger.Warn("mark absent on present day",
			zap.String("employee_id", req.EmployeeID),
			zap.String("date", req.Date),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyPresent
	default:
		// Already absent; nothing to change.
		return mapToResponse(*row), nil
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark absent commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	s.logger.Info("mark absent success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actorID string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, attendanceerrors.ErrInvalidActorID
	}

	role, err := s.repo.FindActorRole(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	var rows []Attendance
	if role.CanReadAll() {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, actorID)
	}
	if err != nil {
		s.logger.Error("list attendance failed", zap.String("actor_id", actorID), zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Calendar(ctx context.Context, actorID, employeeID, month string) (CalendarResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return CalendarResponse{}, attendanceerrors.ErrInvalidActorID
	}
	if employeeID == "" {
		employeeID = actorID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return CalendarResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	first := civil(s.now())
	if month != "" {
		parsed, err := time.Parse(monthLayout, month)
		if err != nil {
			return CalendarResponse{}, attendanceerrors.ErrInvalidMonth
		}
		first = parsed
	}
	days := MonthDays(first)
	from, to := days[0], days[len(days)-1]

	if employeeID != actorID {
		role, err := s.repo.FindActorRole(ctx, actorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return CalendarResponse{}, attendanceerrors.ErrEmployeeNotFound
			}
			return CalendarResponse{}, err
		}
		if !role.CanReadAll() {
			return CalendarResponse{}, attendanceerrors.ErrCalendarForbidden
		}
	}

	holidayDates, err := s.repo.FindHolidayDatesBetween(ctx, from, to)
	if err != nil {
		return CalendarResponse{}, err
	}
	leaves, err := s.repo.FindLeaveIntervals(ctx, employeeID, from, to)
	if err != nil {
		return CalendarResponse{}, err
	}
	records, err := s.repo.FindByEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		return CalendarResponse{}, err
	}

	byDate := make(map[string]*Attendance, len(records))
	for i := range records {
		byDate[dateKey(records[i].AttendanceDate)] = &records[i]
	}
	holidays := NewHolidaySet(holidayDates...)

	resp := CalendarResponse{
		EmployeeID: employeeID,
		Month:      from.Format(monthLayout),
		Days:       make([]CalendarDay, len(days)),
		Summary:    make(map[DayStatus]int),
	}
	for i, d := range days {
		status := Classify(d, holidays, leaves, byDate[dateKey(d)])
		resp.Days[i] = CalendarDay{Date: dateKey(d), Status: status}
		resp.Summary[status]++
	}
	return resp, nil
}

func optionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		ClockIn:        optionalTime(a.ClockIn),
		ClockOut:       optionalTime(a.ClockOut),
		Status:         a.Status,
		Notes:          a.Notes,
	}
	if a.MarkedBy != nil {
		v := a.MarkedBy.String()
		resp.MarkedBy = &v
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FirstName
		if a.Employee.LastName != "" {
			resp.EmployeeName += " " + a.Employee.LastName
		}
	}
	return resp
}
