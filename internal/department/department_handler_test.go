package department_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Thomas-Sunil/newhrms/internal/department"
	departmenterrors "github.com/Thomas-Sunil/newhrms/internal/department/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentService struct {
	CreateFn     func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn     func(ctx context.Context) ([]department.DepartmentResponse, error)
	GetByIDFn    func(ctx context.Context, id string) (department.DepartmentResponse, error)
	UpdateFn     func(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteFn     func(ctx context.Context, id string) error
	AssignHeadFn func(ctx context.Context, id string, req department.AssignHeadRequest) (department.DepartmentResponse, error)
}

func (f *fakeDepartmentService) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeDepartmentService) AssignHead(ctx context.Context, id string, req department.AssignHeadRequest) (department.DepartmentResponse, error) {
	return f.AssignHeadFn(ctx, id, req)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDepartmentHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{ID: uuid.New().String(), Name: req.Name}, nil
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/departments", `{"name":"HR"}`)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/departments", `{}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, errors.New("failed")
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/departments", `{"name":"HR"}`)

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "failed")
	})
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeDepartmentService{
		GetAllFn: func(ctx context.Context) ([]department.DepartmentResponse, error) {
			return []department.DepartmentResponse{{ID: uuid.New().String(), Name: "HR"}}, nil
		},
	}

	h := department.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/departments", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestDepartmentHandler_GetByID_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deptID := uuid.New().String()
	svc := &fakeDepartmentService{
		GetByIDFn: func(ctx context.Context, id string) (department.DepartmentResponse, error) {
			assert.Equal(t, deptID, id)
			return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		},
	}

	h := department.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/departments/"+deptID, nil)
	c.Params = []gin.Param{{Key: "id", Value: deptID}}

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDepartmentHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deptID := uuid.New().String()
	svc := &fakeDepartmentService{
		UpdateFn: func(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
			return department.DepartmentResponse{ID: id, Name: req.Name}, nil
		},
	}

	h := department.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPut, "/departments/"+deptID, `{"name":"Finance"}`)
	c.Params = []gin.Param{{Key: "id", Value: deptID}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDepartmentHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deptID := uuid.New().String()
	svc := &fakeDepartmentService{
		DeleteFn: func(ctx context.Context, id string) error {
			assert.Equal(t, deptID, id)
			return departmenterrors.ErrDepartmentInUse
		},
	}

	h := department.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/departments/"+deptID, nil)
	c.Params = []gin.Param{{Key: "id", Value: deptID}}

	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDepartmentHandler_AssignHead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deptID := uuid.New().String()

	t.Run("role mismatch", func(t *testing.T) {
		svc := &fakeDepartmentService{
			AssignHeadFn: func(ctx context.Context, id string, req department.AssignHeadRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrHeadRoleRequired
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPut, "/departments/"+deptID+"/head", `{"employee_id":"`+uuid.New().String()+`"}`)
		c.Params = []gin.Param{{Key: "id", Value: deptID}}

		h.AssignHead(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("employee id must be a uuid", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPut, "/departments/"+deptID+"/head", `{"employee_id":"x"}`)
		c.Params = []gin.Param{{Key: "id", Value: deptID}}

		h.AssignHead(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
