package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "github.com/Thomas-Sunil/newhrms/internal/attendance/errors"
	"github.com/Thomas-Sunil/newhrms/internal/domain"
	"github.com/Thomas-Sunil/newhrms/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn                  func(ctx context.Context, a *Attendance) error
	updateFn                  func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn   func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	findAllFn                 func(ctx context.Context) ([]Attendance, error)
	findAllByEmployeeFn       func(ctx context.Context, employeeID string) ([]Attendance, error)
	findByEmployeeBetweenFn   func(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	findHolidayDatesBetweenFn func(ctx context.Context, from, to time.Time) ([]time.Time, error)
	findLeaveIntervalsFn      func(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveInterval, error)
	findActorRoleFn           func(ctx context.Context, employeeID string) (domain.Role, error)
	employeeExistsFn          func(ctx context.Context, employeeID string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Attendance, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeRepo) FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	if f.findByEmployeeBetweenFn != nil {
		return f.findByEmployeeBetweenFn(ctx, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeRepo) FindHolidayDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	if f.findHolidayDatesBetweenFn != nil {
		return f.findHolidayDatesBetweenFn(ctx, from, to)
	}
	return nil, nil
}

func (f *fakeRepo) FindLeaveIntervals(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveInterval, error) {
	if f.findLeaveIntervalsFn != nil {
		return f.findLeaveIntervalsFn(ctx, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeRepo) FindActorRole(ctx context.Context, employeeID string) (domain.Role, error) {
	if f.findActorRoleFn != nil {
		return f.findActorRoleFn(ctx, employeeID)
	}
	return domain.RoleEmployee, nil
}

func (f *fakeRepo) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

var fixedNow = time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)

func setupService(t *testing.T) (*service, *fakeRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeRepo{}
	svc := NewService(db, repo).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, mock
}

func TestService_ClockInAndClockOut(t *testing.T) {
	svc, repo, mock := setupService(t)
	ctx := context.Background()
	employeeID := uuid.New().String()

	var saved *Attendance
	repo.createFn = func(ctx context.Context, a *Attendance) error { saved = a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { saved = a; return nil }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, eid string, date time.Time) (*Attendance, error) {
		assert.Equal(t, "2026-03-10", dateKey(date))
		if saved == nil {
			return nil, gorm.ErrRecordNotFound
		}
		cp := *saved
		return &cp, nil
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	in, err := svc.ClockIn(ctx, employeeID, ClockInRequest{})
	assert.NoError(t, err)
	assert.NotEmpty(t, in.ID)
	assert.Equal(t, StatusPresent, in.Status)
	assert.Equal(t, "2026-03-10", in.AttendanceDate)
	assert.NotNil(t, in.ClockIn)
	assert.Nil(t, in.ClockOut)

	mock.ExpectBegin()
	mock.ExpectCommit()
	out, err := svc.ClockOut(ctx, employeeID, ClockOutRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusClockedOut, out.Status)
	assert.NotNil(t, out.ClockOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn(t *testing.T) {
	clockIn := fixedNow.Add(-time.Hour)

	cases := []struct {
		name     string
		actorID  string
		existing *Attendance
		createEr error
		wantErr  error
		wantTx   bool
	}{
		{
			name:    "invalid actor",
			actorID: "nope",
			wantErr: attendanceerrors.ErrInvalidActorID,
		},
		{
			name:     "duplicate clock in",
			actorID:  uuid.New().String(),
			existing: &Attendance{ID: uuid.New(), ClockIn: &clockIn, Status: StatusPresent},
			wantErr:  attendanceerrors.ErrAlreadyClockedIn,
			wantTx:   true,
		},
		{
			name:     "concurrent insert hits unique index",
			actorID:  uuid.New().String(),
			createEr: &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"},
			wantErr:  attendanceerrors.ErrAlreadyClockedIn,
			wantTx:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, mock := setupService(t)
			repo.findByEmployeeAndDateFn = func(ctx context.Context, eid string, date time.Time) (*Attendance, error) {
				if tc.existing == nil {
					return nil, gorm.ErrRecordNotFound
				}
				return tc.existing, nil
			}
			repo.createFn = func(ctx context.Context, a *Attendance) error { return tc.createEr }

			if tc.wantTx {
				mock.ExpectBegin()
				mock.ExpectRollback()
			}

			_, err := svc.ClockIn(context.Background(), tc.actorID, ClockInRequest{})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestService_ClockIn_AfterAbsentMark(t *testing.T) {
	svc, repo, mock := setupService(t)
	marker := uuid.New()
	existing := &Attendance{ID: uuid.New(), Status: StatusAbsent, MarkedBy: &marker}

	var updated *Attendance
	repo.findByEmployeeAndDateFn = func(ctx context.Context, eid string, date time.Time) (*Attendance, error) {
		return existing, nil
	}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		t.Fatal("create must not be called when a row exists")
		return nil
	}
	repo.updateFn = func(ctx context.Context, a *Attendance) error { updated = a; return nil }

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ClockIn(context.Background(), uuid.New().String(), ClockInRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
	assert.NotNil(t, updated)
	assert.Equal(t, fixedNow, *updated.ClockIn)
}

func TestService_ClockOut_Errors(t *testing.T) {
	clockIn := fixedNow.Add(-8 * time.Hour)
	clockOut := fixedNow.Add(-time.Hour)

	cases := []struct {
		name     string
		existing *Attendance
		wantErr  error
	}{
		{name: "no row today", wantErr: attendanceerrors.ErrClockInNotFound},
		{name: "absent row", existing: &Attendance{Status: StatusAbsent}, wantErr: attendanceerrors.ErrClockInNotFound},
		{name: "already clocked out", existing: &Attendance{ClockIn: &clockIn, ClockOut: &clockOut, Status: StatusClockedOut}, wantErr: attendanceerrors.ErrAlreadyClockedOut},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, mock := setupService(t)
			repo.findByEmployeeAndDateFn = func(ctx context.Context, eid string, date time.Time) (*Attendance, error) {
				if tc.existing == nil {
					return nil, gorm.ErrRecordNotFound
				}
				return tc.existing, nil
			}

			mock.ExpectBegin()
			mock.ExpectRollback()
			_, err := svc.ClockOut(context.Background(), uuid.New().String(), ClockOutRequest{})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestService_MarkAbsent(t *testing.T) {
	actorID := uuid.New().String()
	employeeID := uuid.New().String()
	clockIn := fixedNow

	t.Run("creates absent row", func(t *testing.T) {
		svc, repo, mock := setupService(t)
		var created *Attendance
		repo.createFn = func(ctx context.Context, a *Attendance) error { created = a; return nil }

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.MarkAbsent(context.Background(), actorID, MarkAbsentRequest{EmployeeID: employeeID, Date: "2026-03-09"})
		assert.NoError(t, err)
		assert.Equal(t, StatusAbsent, resp.Status)
		assert.Equal(t, "2026-03-09", resp.AttendanceDate)
		if assert.NotNil(t, created) && assert.NotNil(t, created.MarkedBy) {
			assert.Equal(t, actorID, created.MarkedBy.String())
			assert.Nil(t, created.ClockIn)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already absent is a no-op", func(t *testing.T) {
		svc, repo, mock := setupService(t)
		existing := &Attendance{ID: uuid.New(), Status: StatusAbsent, AttendanceDate: day("2026-03-09")}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, eid string, date time.Time) (*Attendance, error) {
			return existing, nil
		}
		repo.createFn = func(ctx context.Context, a *Attendance) error {
			t.Fatal("unexpected create")
			return nil
		}

		mock.ExpectBegin()
		mock.ExpectRollback()
		resp, err := svc.MarkAbsent(context.Background(), actorID, MarkAbsentRequest{EmployeeID: employeeID, Date: "2026-03-09"})
		assert.NoError(t, err)
		assert.Equal(t, existing.ID.String(), resp.ID)
	})

	t.Run("present day is rejected", func(t *testing.T) {
		svc, repo, mock := setupService(t)
		repo.findByEmployeeAndDateFn = func(ctx context.Context, eid string, date time.Time) (*Attendance, error) {
			return &Attendance{ID: uuid.New(), ClockIn: &clockIn, Status: StatusPresent}, nil
		}

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.MarkAbsent(context.Background(), actorID, MarkAbsentRequest{EmployeeID: employeeID, Date: "2026-03-10"})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyPresent)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, repo, mock := setupService(t)
		repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) { return false, nil }

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.MarkAbsent(context.Background(), actorID, MarkAbsentRequest{EmployeeID: employeeID, Date: "2026-03-10"})
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("bad date", func(t *testing.T) {
		svc, _, _ := setupService(t)
		_, err := svc.MarkAbsent(context.Background(), actorID, MarkAbsentRequest{EmployeeID: employeeID, Date: "10/03/2026"})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFormat)
	})
}

func TestService_GetAll_ScopesByRole(t *testing.T) {
	cases := []struct {
		role    domain.Role
		wantAll bool
	}{
		{role: domain.RoleEmployee, wantAll: false},
		{role: domain.RoleDepartmentHead, wantAll: false},
		{role: domain.RoleHRManager, wantAll: true},
		{role: domain.RoleCXO, wantAll: true},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			svc, repo, _ := setupService(t)
			actorID := uuid.New().String()
			var usedAll, usedOwn bool

			repo.findActorRoleFn = func(ctx context.Context, eid string) (domain.Role, error) { return tc.role, nil }
			repo.findAllFn = func(ctx context.Context) ([]Attendance, error) {
				usedAll = true
				return []Attendance{{ID: uuid.New()}, {ID: uuid.New()}}, nil
			}
			repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]Attendance, error) {
				usedOwn = true
				assert.Equal(t, actorID, eid)
				return []Attendance{{ID: uuid.New()}}, nil
			}

			resp, err := svc.GetAll(context.Background(), actorID)
			assert.NoError(t, err)
			assert.Equal(t, tc.wantAll, usedAll)
			assert.Equal(t, !tc.wantAll, usedOwn)
			if tc.wantAll {
				assert.Len(t, resp, 2)
			} else {
				assert.Len(t, resp, 1)
			}
		})
	}
}

func TestService_Calendar(t *testing.T) {
	svc, repo, _ := setupService(t)
	actorID := uuid.New().String()
	actorUUID := uuid.MustParse(actorID)
	clockIn := day("2026-03-03").Add(9 * time.Hour)

	repo.findHolidayDatesBetweenFn = func(ctx context.Context, from, to time.Time) ([]time.Time, error) {
		assert.Equal(t, "2026-03-01", dateKey(from))
		assert.Equal(t, "2026-03-31", dateKey(to))
		return []time.Time{day("2026-03-02")}, nil
	}
	repo.findLeaveIntervalsFn = func(ctx context.Context, eid string, from, to time.Time) ([]LeaveInterval, error) {
		return []LeaveInterval{{Start: day("2026-03-05"), End: day("2026-03-06"), Status: leave.StatusApproved}}, nil
	}
	repo.findByEmployeeBetweenFn = func(ctx context.Context, eid string, from, to time.Time) ([]Attendance, error) {
		return []Attendance{
			{EmployeeID: actorUUID, AttendanceDate: day("2026-03-03"), ClockIn: &clockIn, Status: StatusPresent},
			{EmployeeID: actorUUID, AttendanceDate: day("2026-03-04"), Status: StatusAbsent},
		}, nil
	}

	resp, err := svc.Calendar(context.Background(), actorID, "", "2026-03")
	assert.NoError(t, err)
	assert.Equal(t, actorID, resp.EmployeeID)
	assert.Equal(t, "2026-03", resp.Month)
	assert.Len(t, resp.Days, 31)
	assert.Equal(t, DayNoRecord, resp.Days[0].Status)
	assert.Equal(t, DayHoliday, resp.Days[1].Status)
	assert.Equal(t, DayPresent, resp.Days[2].Status)
	assert.Equal(t, DayAbsent, resp.Days[3].Status)
	assert.Equal(t, DayOnLeave, resp.Days[4].Status)
	assert.Equal(t, DayOnLeave, resp.Days[5].Status)
	assert.Equal(t, map[DayStatus]int{
		DayHoliday:  1,
		DayPresent:  1,
		DayAbsent:   1,
		DayOnLeave:  2,
		DayNoRecord: 26,
	}, resp.Summary)
}

func TestService_Calendar_OtherEmployee(t *testing.T) {
	t.Run("employee forbidden", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.findActorRoleFn = func(ctx context.Context, eid string) (domain.Role, error) { return domain.RoleEmployee, nil }

		_, err := svc.Calendar(context.Background(), uuid.New().String(), uuid.New().String(), "2026-03")
		assert.ErrorIs(t, err, attendanceerrors.ErrCalendarForbidden)
	})

	t.Run("hr allowed", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.findActorRoleFn = func(ctx context.Context, eid string) (domain.Role, error) { return domain.RoleHRManager, nil }
		target := uuid.New().String()

		resp, err := svc.Calendar(context.Background(), uuid.New().String(), target, "2026-02")
		assert.NoError(t, err)
		assert.Equal(t, target, resp.EmployeeID)
		assert.Len(t, resp.Days, 28)
		assert.Equal(t, 28, resp.Summary[DayNoRecord])
	})

	t.Run("bad month", func(t *testing.T) {
		svc, _, _ := setupService(t)
		_, err := svc.Calendar(context.Background(), uuid.New().String(), "", "March")
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonth)
	})

	t.Run("repo failure surfaces", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		boom := errors.New("db down")
		repo.findHolidayDatesBetweenFn = func(ctx context.Context, from, to time.Time) ([]time.Time, error) { return nil, boom }

		_, err := svc.Calendar(context.Background(), uuid.New().String(), "", "")
		assert.ErrorIs(t, err, boom)
	})
}
