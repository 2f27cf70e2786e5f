package holiday_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/holiday"
	holidayerrors "github.com/Thomas-Sunil/newhrms/internal/holiday/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn         func(ctx context.Context, h *holiday.Holiday) error
	createIfAbsentFn func(ctx context.Context, h *holiday.Holiday) (bool, error)
	findBetweenFn    func(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error)
	deleteFn         func(ctx context.Context, id string) (*holiday.Holiday, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) holiday.Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, h *holiday.Holiday) error {
	return f.createFn(ctx, h)
}
func (f *fakeRepo) CreateIfAbsent(ctx context.Context, h *holiday.Holiday) (bool, error) {
	return f.createIfAbsentFn(ctx, h)
}
func (f *fakeRepo) FindBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	return f.findBetweenFn(ctx, from, to)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) (*holiday.Holiday, error) {
	return f.deleteFn(ctx, id)
}

func TestHolidayService_List(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	id := uuid.New()
	repo := &fakeRepo{
		findBetweenFn: func(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
			assert.Equal(t, "2026-01-01", from.Format("2006-01-02"))
			assert.Equal(t, "2026-12-31", to.Format("2006-01-02"))
			return []holiday.Holiday{{ID: id, Date: time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC), Reason: "Republic Day"}}, nil
		},
	}
	svc := holiday.NewService(nil, repo, rdb)

	want := []holiday.HolidayResponse{{ID: id.String(), Date: "2026-01-26", Reason: "Republic Day"}}
	raw, _ := json.Marshal(want)
	redisMock.ExpectGet("holidays:year:2026").RedisNil()
	redisMock.ExpectSet("holidays:year:2026", string(raw), 6*time.Hour).SetVal("OK")

	resp, err := svc.List(context.Background(), 2026)

	assert.NoError(t, err)
	assert.Equal(t, want, resp)
	assert.NoError(t, redisMock.ExpectationsWereMet())

	_, err = svc.List(context.Background(), 12)
	assert.ErrorIs(t, err, holidayerrors.ErrInvalidYear)
}

func TestHolidayService_Create(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("records the creator", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		var saved *holiday.Holiday
		repo := &fakeRepo{createFn: func(ctx context.Context, h *holiday.Holiday) error { saved = h; return nil }}
		svc := holiday.NewService(nil, repo, rdb)
		redisMock.ExpectDel("holidays:year:2026").SetVal(1)

		resp, err := svc.Create(context.Background(), actorID, holiday.CreateHolidayRequest{Date: "2026-08-15", Reason: "Independence Day"})

		assert.NoError(t, err)
		assert.Equal(t, actorID, resp.CreatedBy)
		assert.Equal(t, actorID, saved.CreatedBy.String())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("date taken", func(t *testing.T) {
		repo := &fakeRepo{createFn: func(ctx context.Context, h *holiday.Holiday) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_holiday_date"}
		}}
		svc := holiday.NewService(nil, repo, nil)

		_, err := svc.Create(context.Background(), actorID, holiday.CreateHolidayRequest{Date: "2026-08-15", Reason: "Again"})

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayExists)
	})

	t.Run("bad date", func(t *testing.T) {
		svc := holiday.NewService(nil, &fakeRepo{}, nil)

		_, err := svc.Create(context.Background(), actorID, holiday.CreateHolidayRequest{Date: "15-08-2026", Reason: "x"})

		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
	})
}

func TestHolidayService_Delete(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	id := uuid.New().String()
	repo := &fakeRepo{deleteFn: func(ctx context.Context, got string) (*holiday.Holiday, error) {
		if got != id {
			return nil, gorm.ErrRecordNotFound
		}
		return &holiday.Holiday{Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)}, nil
	}}
	svc := holiday.NewService(nil, repo, rdb)

	redisMock.ExpectDel("holidays:year:2025").SetVal(1)
	assert.NoError(t, svc.Delete(context.Background(), id))
	assert.NoError(t, redisMock.ExpectationsWereMet())

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New().String()), holidayerrors.ErrHolidayNotFound)
}

func TestHolidayService_Import(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	existing := "2024-01-01"
	var inserted []string
	repo := &fakeRepo{createIfAbsentFn: func(ctx context.Context, h *holiday.Holiday) (bool, error) {
		d := h.Date.Format("2006-01-02")
		if d == existing {
			return false, nil
		}
		inserted = append(inserted, d)
		return true, nil
	}}
	svc := holiday.NewService(db, repo, nil)

	buf := buildWorkbook(t, [][]any{
		{"Date", "Reason"},
		{"2024-01-01", "New Year"},
		{"2024-01-26", "Republic Day"},
		{"not a date", "Mystery"},
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Import(context.Background(), uuid.New().String(), buf)

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 2, resp.Skipped)
	assert.Len(t, resp.Errors, 2)
	assert.Equal(t, []string{"2024-01-26"}, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
