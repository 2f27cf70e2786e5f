package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/auth"
	autherrors "github.com/Thomas-Sunil/newhrms/internal/auth/errors"
	authMock "github.com/Thomas-Sunil/newhrms/internal/auth/mock"
	"github.com/Thomas-Sunil/newhrms/internal/employee"
	"github.com/Thomas-Sunil/newhrms/internal/shared/counter"
	counterMock "github.com/Thomas-Sunil/newhrms/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *authMock.MockRepository
	counter *counterMock.MockRepository
	service auth.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, mock, _ := sqlmock.New()
	repo := authMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	t.Cleanup(func() { db.Close() })

	return &serviceDeps{
		db:      db,
		sqlMock: mock,
		repo:    repo,
		counter: counterRepo,
		service: auth.NewService(db, repo, counterRepo, testSecret),
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func strPtr(s string) *string { return &s }

func activeProfile(role string) *auth.Profile {
	deptID := uuid.New()
	return &auth.Profile{
		EmployeeID:     uuid.New(),
		EmployeeNumber: "EMP-000001",
		FirstName:      "Ravi",
		LastName:       "Kumar",
		Status:         employee.StatusActive,
		DepartmentID:   &deptID,
		RoleName:       strPtr(role),
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success by username", func(t *testing.T) {
		deps := setupServiceTest(t)
		account := &employee.Account{ID: uuid.New(), Username: "ravi", Email: "ravi@example.com", PasswordHash: hashed(t, "secret-123")}
		profile := activeProfile("Department Head")

		deps.repo.EXPECT().FindAccountByLogin(ctx, "ravi").Return(account, nil)
		deps.repo.EXPECT().FindProfile(ctx, account.ID).Return(profile, nil)

		access, refresh, resp, err := deps.service.Login(ctx, "ravi", "secret-123")

		assert.NoError(t, err)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, "Ravi Kumar", resp.Name)
		assert.Equal(t, "Department Head", resp.Role)
		assert.Equal(t, profile.DepartmentID.String(), resp.DepartmentID)

		claims, err := auth.ParseToken(access, []byte(testSecret))
		assert.NoError(t, err)
		assert.Equal(t, account.ID.String(), claims.UserID)
		assert.Equal(t, profile.EmployeeID.String(), claims.EmployeeID)
		assert.Equal(t, "Department Head", claims.Role)
		assert.Equal(t, auth.TokenTypeAccess, claims.TokenType)

		refreshClaims, err := auth.ParseToken(refresh, []byte(testSecret))
		assert.NoError(t, err)
		assert.Equal(t, auth.TokenTypeRefresh, refreshClaims.TokenType)
	})

	t.Run("unknown login", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAccountByLogin(ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := deps.service.Login(ctx, "ghost", "whatever1")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		deps := setupServiceTest(t)
		account := &employee.Account{ID: uuid.New(), PasswordHash: hashed(t, "secret-123")}
		deps.repo.EXPECT().FindAccountByLogin(ctx, "ravi@example.com").Return(account, nil)

		_, _, _, err := deps.service.Login(ctx, "ravi@example.com", "nope-nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		account := &employee.Account{ID: uuid.New(), PasswordHash: hashed(t, "secret-123")}
		profile := activeProfile("Employee")
		profile.Status = employee.StatusInactive

		deps.repo.EXPECT().FindAccountByLogin(ctx, "ravi").Return(account, nil)
		deps.repo.EXPECT().FindProfile(ctx, account.ID).Return(profile, nil)

		_, _, _, err := deps.service.Login(ctx, "ravi", "secret-123")
		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})

	t.Run("role defaults to employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		account := &employee.Account{ID: uuid.New(), PasswordHash: hashed(t, "secret-123")}
		profile := activeProfile("")
		profile.RoleName = nil

		deps.repo.EXPECT().FindAccountByLogin(ctx, "ravi").Return(account, nil)
		deps.repo.EXPECT().FindProfile(ctx, account.ID).Return(profile, nil)

		_, _, resp, err := deps.service.Login(ctx, "ravi", "secret-123")
		assert.NoError(t, err)
		assert.Equal(t, "Employee", resp.Role)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		account := &employee.Account{ID: uuid.New(), PasswordHash: hashed(t, "secret-123")}
		profile := activeProfile("HR Manager")

		deps.repo.EXPECT().FindAccountByLogin(ctx, "hr").Return(account, nil)
		deps.repo.EXPECT().FindProfile(ctx, account.ID).Return(profile, nil).Times(2)
		deps.repo.EXPECT().FindAccountByID(ctx, account.ID.String()).Return(account, nil)

		_, refresh, _, err := deps.service.Login(ctx, "hr", "secret-123")
		assert.NoError(t, err)

		access, newRefresh, resp, err := deps.service.RefreshToken(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, "HR Manager", resp.Role)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		deps := setupServiceTest(t)
		account := &employee.Account{ID: uuid.New(), PasswordHash: hashed(t, "secret-123")}

		deps.repo.EXPECT().FindAccountByLogin(ctx, "hr").Return(account, nil)
		deps.repo.EXPECT().FindProfile(ctx, account.ID).Return(activeProfile("HR Manager"), nil)

		access, _, _, err := deps.service.Login(ctx, "hr", "secret-123")
		assert.NoError(t, err)

		_, _, _, err = deps.service.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, _, _, err := deps.service.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		deps := setupServiceTest(t)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": uuid.NewString(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		raw, _ := token.SignedString([]byte("other-secret"))

		_, _, _, err := deps.service.RefreshToken(ctx, raw)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("expired", func(t *testing.T) {
		deps := setupServiceTest(t)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": uuid.NewString(),
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		raw, _ := token.SignedString([]byte(testSecret))

		_, _, _, err := deps.service.RefreshToken(ctx, raw)
		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})

	t.Run("account deleted", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.NewString()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID,
			"typ":     auth.TokenTypeRefresh,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		raw, _ := token.SignedString([]byte(testSecret))
		deps.repo.EXPECT().FindAccountByID(ctx, userID).Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := deps.service.RefreshToken(ctx, raw)
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetMe(ctx, "abc")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		account := &employee.Account{ID: uuid.New(), Username: "cxo", Email: "cxo@example.com"}
		profile := activeProfile("CXO")
		deps.repo.EXPECT().FindAccountByID(ctx, account.ID.String()).Return(account, nil)
		deps.repo.EXPECT().FindProfile(ctx, account.ID).Return(profile, nil)

		resp, err := deps.service.GetMe(ctx, account.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, "cxo", resp.Username)
		assert.Equal(t, profile.EmployeeID.String(), resp.EmployeeID)
	})
}

func TestService_LookupUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("blank", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.LookupUsername(ctx, "   ")
		assert.ErrorIs(t, err, autherrors.ErrUsernameRequired)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindEmailByUsername(ctx, "nobody").Return("", gorm.ErrRecordNotFound)
		_, err := deps.service.LookupUsername(ctx, " nobody ")
		assert.ErrorIs(t, err, autherrors.ErrUsernameNotFound)
	})

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindEmailByUsername(ctx, "ravi").Return("ravi@example.com", nil)
		resp, err := deps.service.LookupUsername(ctx, "ravi")
		assert.NoError(t, err)
		assert.Equal(t, "ravi@example.com", resp.Email)
	})
}

func TestService_BootstrapCEO(t *testing.T) {
	ctx := context.Background()

	t.Run("creates ceo with defaults", func(t *testing.T) {
		deps := setupServiceTest(t)
		roleID, desigID, deptID := uuid.New(), uuid.New(), uuid.New()
		var accountID uuid.UUID

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EnsureRole(ctx, "CXO", gomock.Any()).Return(roleID, nil)
		deps.repo.EXPECT().EnsureDesignation(ctx, "Chief Executive Officer", 1).Return(desigID, nil)
		deps.repo.EXPECT().EnsureDepartment(ctx, "Board of Directors").Return(deptID, nil)
		deps.repo.EXPECT().FindEmployeeByUsername(ctx, "ceo").Return(nil, gorm.ErrRecordNotFound)
		deps.counter.EXPECT().GetNextValue(ctx, counter.EmployeeNumber).Return(int64(1), nil)
		deps.repo.EXPECT().SaveAccount(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *employee.Account) error {
			assert.Equal(t, "ceo", a.Username)
			assert.Equal(t, "ceo@yourcompany.com", a.Email)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("Password123")))
			accountID = a.ID
			return nil
		})
		deps.repo.EXPECT().SaveEmployee(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.Equal(t, "EMP-000001", e.EmployeeNumber)
			assert.Equal(t, "Chief", e.FirstName)
			assert.Equal(t, accountID, *e.AccountID)
			assert.Equal(t, roleID, *e.RoleID)
			assert.Equal(t, desigID, *e.DesignationID)
			assert.Equal(t, deptID, *e.DepartmentID)
			assert.Equal(t, employee.StatusActive, e.Status)
			return nil
		})

		resp, err := deps.service.BootstrapCEO(ctx, auth.BootstrapRequest{})
		assert.NoError(t, err)
		assert.True(t, resp.Created)
		assert.Equal(t, "ceo", resp.Username)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("resets existing ceo", func(t *testing.T) {
		deps := setupServiceTest(t)
		accountID := uuid.New()
		existing := &employee.Employee{ID: uuid.New(), AccountID: &accountID, Username: "ceo", EmployeeNumber: "EMP-000001", Status: employee.StatusInactive}
		account := &employee.Account{ID: accountID, Username: "ceo", Email: "old@example.com", PasswordHash: "x"}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EnsureRole(ctx, "CXO", gomock.Any()).Return(uuid.New(), nil)
		deps.repo.EXPECT().EnsureDesignation(ctx, gomock.Any(), 1).Return(uuid.New(), nil)
		deps.repo.EXPECT().EnsureDepartment(ctx, gomock.Any()).Return(uuid.New(), nil)
		deps.repo.EXPECT().FindEmployeeByUsername(ctx, "ceo").Return(existing, nil)
		deps.repo.EXPECT().FindAccountByID(ctx, accountID.String()).Return(account, nil)
		deps.repo.EXPECT().SaveAccount(ctx, account).Return(nil)
		deps.repo.EXPECT().SaveEmployee(ctx, existing).Return(nil)

		resp, err := deps.service.BootstrapCEO(ctx, auth.BootstrapRequest{Email: "Boss@Example.com", Password: "new-pass-1"})
		assert.NoError(t, err)
		assert.False(t, resp.Created)
		assert.Equal(t, existing.ID.String(), resp.EmployeeID)
		assert.Equal(t, "boss@example.com", account.Email)
		assert.Equal(t, employee.StatusActive, existing.Status)
		assert.Equal(t, "EMP-000001", existing.EmployeeNumber)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("new-pass-1")))
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EnsureRole(ctx, "CXO", gomock.Any()).Return(uuid.Nil, errors.New("db down"))

		_, err := deps.service.BootstrapCEO(ctx, auth.BootstrapRequest{})
		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestService_BootstrapHR(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	roleID := uuid.New()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().EnsureRole(ctx, "HR Manager", "Human Resources Manager").Return(roleID, nil)
	deps.repo.EXPECT().FindEmployeeByUsername(ctx, "hr").Return(nil, gorm.ErrRecordNotFound)
	deps.counter.EXPECT().GetNextValue(ctx, counter.EmployeeNumber).Return(int64(2), nil)
	deps.repo.EXPECT().SaveAccount(ctx, gomock.Any()).Return(nil)
	deps.repo.EXPECT().SaveEmployee(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
		assert.Nil(t, e.DepartmentID)
		assert.Nil(t, e.DesignationID)
		assert.Equal(t, "hr@company.com", e.Email)
		return nil
	})

	resp, err := deps.service.BootstrapHR(ctx, auth.BootstrapRequest{})
	assert.NoError(t, err)
	assert.True(t, resp.Created)
}
