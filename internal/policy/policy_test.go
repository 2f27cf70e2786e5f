package policy_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/Thomas-Sunil/newhrms/internal/policy"
	policyerrors "github.com/Thomas-Sunil/newhrms/internal/policy/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPolicyTest(t *testing.T) (sqlmock.Sqlmock, policy.Service) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	return mock, policy.NewService(policy.NewRepository(gormDB))
}

func TestPolicyService_Create(t *testing.T) {
	mock, svc := setupPolicyTest(t)
	actorID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "policies"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), actorID, policy.UpsertPolicyRequest{
		Name:        "Remote work",
		Description: "Up to two days a week.",
	})

	assert.NoError(t, err)
	assert.Equal(t, actorID, resp.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyService_GetByID_NotFound(t *testing.T) {
	mock, svc := setupPolicyTest(t)
	id := uuid.New().String()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "policies" WHERE id = $1`)).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, policyerrors.ErrPolicyNotFound)
}

func TestPolicyService_Delete(t *testing.T) {
	mock, svc := setupPolicyTest(t)
	id := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "policies" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, policyerrors.ErrPolicyNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "x"), policyerrors.ErrInvalidPolicyID)
}

type fakeService struct {
	policy.Service
	updateFn func(ctx context.Context, id string, req policy.UpsertPolicyRequest) (policy.PolicyResponse, error)
}

func (f *fakeService) Update(ctx context.Context, id string, req policy.UpsertPolicyRequest) (policy.PolicyResponse, error) {
	return f.updateFn(ctx, id, req)
}

func TestPolicyHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New().String()
	h := policy.NewHandler(&fakeService{
		updateFn: func(ctx context.Context, got string, req policy.UpsertPolicyRequest) (policy.PolicyResponse, error) {
			assert.Equal(t, id, got)
			return policy.PolicyResponse{}, policyerrors.ErrPolicyNotFound
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest(http.MethodPut, "/policies/"+id, strings.NewReader(`{"name":"Leave","description":"Updated"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
