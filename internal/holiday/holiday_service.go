package holiday

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"time"

	holidayerrors "github.com/Thomas-Sunil/newhrms/internal/holiday/errors"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	HolidayYearKeyPrefix = "holidays:year:"
	uniqueHolidayDate    = "uq_holiday_date"
)

func HolidayYearKey(year int) string {
	return HolidayYearKeyPrefix + strconv.Itoa(year)
}

type Service interface {
	List(ctx context.Context, year int) ([]HolidayResponse, error)
	Create(ctx context.Context, actorID string, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, actorID string, r io.Reader) (ImportResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) List(ctx context.Context, year int) ([]HolidayResponse, error) {
	if year < 1900 || year > 9999 {
		return nil, holidayerrors.ErrInvalidYear
	}
	cacheKey := HolidayYearKey(year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []HolidayResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		items, err := s.repo.FindBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}

		resp := make([]HolidayResponse, len(items))
		for i, h := range items {
			resp[i] = mapToResponse(h)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, string(jsonData), 6*time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("list holidays failed", zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	return v.([]HolidayResponse), nil
}

func (s *service) Create(ctx context.Context, actorID string, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	h := &Holiday{
		ID:        uuid.New(),
		Date:      date,
		Reason:    req.Reason,
		CreatedBy: optionalUUID(actorID),
	}
	if err := s.repo.Create(ctx, h); err != nil {
		if apperror.IsUniqueViolation(err, uniqueHolidayDate) {
			return HolidayResponse{}, holidayerrors.ErrHolidayExists
		}
		s.logger.Error("create holiday failed", zap.String("date", req.Date), zap.Error(err))
		return HolidayResponse{}, err
	}

	s.invalidate(ctx, date.Year())
	s.logger.Info("holiday created", zap.String("date", req.Date), zap.String("actor_id", actorID))
	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	s.invalidate(ctx, deleted.Date.Year())
	s.logger.Info("holiday deleted", zap.String("holiday_id", id))
	return nil
}

func (s *service) Import(ctx context.Context, actorID string, r io.Reader) (ImportResponse, error) {
	rows, rowErrs, err := ParseWorkbook(r)
	if err != nil {
		s.logger.Warn("holiday import rejected", zap.Error(err))
		return ImportResponse{}, err
	}

	resp := ImportResponse{Errors: rowErrs}
	if resp.Errors == nil {
		resp.Errors = []RowError{}
	}
	resp.Skipped = len(rowErrs)
	if len(rows) == 0 {
		return resp, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	createdBy := optionalUUID(actorID)
	years := make(map[int]struct{})

	for _, row := range rows {
		inserted, err := qtx.CreateIfAbsent(ctx, &Holiday{
			ID:        uuid.New(),
			Date:      row.Date,
			Reason:    row.Reason,
			CreatedBy: createdBy,
		})
		if err != nil {
			s.logger.Error("holiday import row failed", zap.Int("row", row.Row), zap.Error(err))
			return ImportResponse{}, err
		}
		if !inserted {
			resp.Skipped++
			resp.Errors = append(resp.Errors, RowError{Row: row.Row, Message: "holiday already exists on this date"})
			continue
		}
		resp.Imported++
		years[row.Date.Year()] = struct{}{}
	}

	if err := tx.Commit(); err != nil {
		return ImportResponse{}, err
	}

	for y := range years {
		s.invalidate(ctx, y)
	}
	s.logger.Info("holiday import finished",
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

func (s *service) invalidate(ctx context.Context, years ...int) {
	if s.rdb == nil || len(years) == 0 {
		return
	}
	keys := make([]string, len(years))
	for i, y := range years {
		keys[i] = HolidayYearKey(y)
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

func optionalUUID(id string) *uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	return &parsed
}

func mapToResponse(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:     h.ID.String(),
		Date:   h.Date.Format("2006-01-02"),
		Reason: h.Reason,
	}
	if h.CreatedBy != nil {
		resp.CreatedBy = h.CreatedBy.String()
	}
	return resp
}
