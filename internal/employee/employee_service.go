package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/domain"
	employeeerrors "github.com/Thomas-Sunil/newhrms/internal/employee/errors"
	"github.com/Thomas-Sunil/newhrms/internal/events"
	"github.com/Thomas-Sunil/newhrms/internal/messaging/kafka"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
	"github.com/Thomas-Sunil/newhrms/internal/shared/contextutil"
	"github.com/Thomas-Sunil/newhrms/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsCacheTTL    = time.Hour
	dateLayout         = "2006-01-02"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("username", req.Username),
		zap.String("email", req.Email),
	)

	dob, err := parseOptionalDate(req.DOB)
	if err != nil {
		s.logger.Warn("create employee invalid dob", zap.String("dob", req.DOB))
		return EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	roleID := uuidPtr(req.RoleID)
	if roleID == nil {
		roleID, err = qtx.FindRoleIDByName(ctx, domain.RoleEmployee.String())
		if err != nil {
			s.logger.Error("create employee default role lookup failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	nextVal, err := s.counter.GetNextValue(ctx, counter.EmployeeNumber)
	if err != nil {
		s.logger.Error("create employee generate number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account := &Account{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := qtx.CreateAccount(ctx, account); err != nil {
		s.logger.Warn("create employee account persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	now := s.now()
	empl := &Employee{
		ID:                 uuid.New(),
		AccountID:          &account.ID,
		EmployeeNumber:     counter.FormatEmployeeNumber(nextVal),
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              email,
		Username:           username,
		RoleID:             roleID,
		DepartmentID:       uuidPtr(req.DepartmentID),
		DesignationID:      uuidPtr(req.DesignationID),
		ReportingManagerID: uuidPtr(req.ReportingManagerID),
		Phone:              req.Phone,
		Address:            req.Address,
		Gender:             req.Gender,
		DOB:                dob,
		DOJ:                time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Status:             StatusActive,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			rid,
			"employee",
			empl.ID.String(),
			events.EmployeeCreatedEventType,
			events.EmployeeLifecycleTopic,
			events.EmployeeCreatedEvent{
				EventType:     events.EmployeeCreatedEventType,
				RequestID:     rid,
				EmployeeID:    empl.ID.String(),
				DepartmentID:  uuidToString(empl.DepartmentID),
				DesignationID: uuidToString(empl.DesignationID),
				JoinedOn:      empl.DOJ.Format(dateLayout),
				CreatedBy:     actorID,
				OccurredAt:    now,
			},
		)
		if err != nil {
			s.logger.Error("create employee build event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOptionResponse{
				ID:             e.ID.String(),
				EmployeeNumber: e.EmployeeNumber,
				FullName:       e.FullName(),
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, string(jsonData), optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("employee options cache write failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if req.ReportingManagerID != "" && strings.EqualFold(req.ReportingManagerID, id) {
		return EmployeeResponse{}, employeeerrors.ErrSelfReportingManager
	}
	dob, err := parseOptionalDate(req.DOB)
	if err != nil {
		s.logger.Warn("update employee invalid dob", zap.String("dob", req.DOB))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Phone = req.Phone
	empl.Address = req.Address
	empl.Gender = req.Gender
	empl.DOB = dob
	empl.DepartmentID = uuidPtr(req.DepartmentID)
	empl.DesignationID = uuidPtr(req.DesignationID)
	empl.ReportingManagerID = uuidPtr(req.ReportingManagerID)
	if req.RoleID != "" {
		empl.RoleID = uuidPtr(req.RoleID)
	}
	if req.Status != "" {
		empl.Status = req.Status
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	s.logger.Debug("delete employee requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	if strings.EqualFold(actorID, id) {
		return employeeerrors.ErrCannotDeleteSelf
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	deleted, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		if apperror.IsForeignKeyViolation(err) {
			return employeeerrors.ErrEmployeeInUse
		}
		return mapRepositoryError(err)
	}

	if deleted.AccountID != nil {
		if err := qtx.DeleteAccount(ctx, *deleted.AccountID); err != nil {
			s.logger.Error("delete employee account failed", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func parseOptionalDate(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return nil, employeeerrors.ErrInvalidDateOfBirth
	}
	return &t, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 empl.ID.String(),
		EmployeeNumber:     empl.EmployeeNumber,
		FirstName:          empl.FirstName,
		LastName:           empl.LastName,
		FullName:           empl.FullName(),
		Email:              empl.Email,
		Username:           empl.Username,
		Phone:              empl.Phone,
		Address:            empl.Address,
		Gender:             empl.Gender,
		DOJ:                empl.DOJ.Format(dateLayout),
		Status:             empl.Status,
		RoleID:             uuidToString(empl.RoleID),
		DepartmentID:       uuidToString(empl.DepartmentID),
		DesignationID:      uuidToString(empl.DesignationID),
		ReportingManagerID: uuidToString(empl.ReportingManagerID),
	}
	if empl.DOB != nil {
		resp.DOB = empl.DOB.Format(dateLayout)
	}
	if empl.Role != nil {
		resp.Role = &EmployeeRefResponse{ID: empl.Role.ID.String(), Name: empl.Role.Name}
	}
	if empl.Department != nil {
		resp.Department = &EmployeeRefResponse{ID: empl.Department.ID.String(), Name: empl.Department.Name}
	}
	if empl.Designation != nil {
		resp.Designation = &EmployeeRefResponse{ID: empl.Designation.ID.String(), Name: empl.Designation.Name}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
