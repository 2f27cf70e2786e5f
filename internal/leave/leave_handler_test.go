package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Thomas-Sunil/newhrms/internal/leave"
	leaveerrors "github.com/Thomas-Sunil/newhrms/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn       func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn       func(ctx context.Context, actorID string, mine bool) ([]leave.LeaveResponse, error)
	getByIDFn      func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
	deptReviewFn   func(ctx context.Context, actorID, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error)
	hrReviewFn     func(ctx context.Context, actorID, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error)
	generateSlipFn func(ctx context.Context, actorID, id string) ([]byte, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, actorID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, actorID string, mine bool) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, actorID, mine)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, actorID, id)
}
func (f *fakeLeaveService) DeptReview(ctx context.Context, actorID, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return f.deptReviewFn(ctx, actorID, id, req)
}
func (f *fakeLeaveService) HRReview(ctx context.Context, actorID, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return f.hrReviewFn(ctx, actorID, id, req)
}
func (f *fakeLeaveService) GenerateSlip(ctx context.Context, actorID, id string) ([]byte, error) {
	return f.generateSlipFn(ctx, actorID, id)
}

func newJSONContext(method, target, body string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "sick", req.LeaveType)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: aid,
					LeaveType:  req.LeaveType,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					TotalDays:  2,
					Reason:     req.Reason,
					Status:     "pending",
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		body := `{"leave_type":"sick","start_date":"2024-03-10","end_date":"2024-03-11","reason":"Fever"}`
		w, c := newJSONContext(http.MethodPost, "/leaves", body)
		c.Set("employee_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, actorID, got.EmployeeID)
		assert.Equal(t, 2, got.TotalDays)
		assert.Equal(t, "pending", got.Status)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		body := `{"leave_type":"sabbatical","start_date":"2024-03-10","end_date":"2024-03-11","reason":"Rest"}`
		w, c := newJSONContext(http.MethodPost, "/leaves", body)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, "Invalid input", env.Error.Message)
	})

	t.Run("negative overlap returns conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		h := leave.NewHandler(svc)
		body := `{"leave_type":"vacation","start_date":"2024-03-10","end_date":"2024-03-11","reason":"Trip"}`
		w, c := newJSONContext(http.MethodPost, "/leaves", body)
		c.Set("employee_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
		assert.Equal(t, "leave already exists in overlapping period", env.Error.Message)
	})

	t.Run("negative unexpected error hides details", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, errors.New("pq: connection reset")
			},
		}
		h := leave.NewHandler(svc)
		body := `{"leave_type":"vacation","start_date":"2024-03-10","end_date":"2024-03-11","reason":"Trip"}`
		w, c := newJSONContext(http.MethodPost, "/leaves", body)
		c.Set("employee_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	t.Run("mine flag and pagination", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, aid string, mine bool) ([]leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.True(t, mine)
				return []leave.LeaveResponse{
					{ID: "a", Status: "pending"},
					{ID: "b", Status: "approved"},
					{ID: "c", Status: "rejected"},
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?mine=true&page=2&page_size=2", nil)
		c.Set("employee_id", actorID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
		assert.Equal(t, "c", got[0].ID)
	})
}

func TestLeaveHandler_GetByID(t *testing.T) {
	t.Run("negative hidden request", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, aid, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		leaveID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/"+leaveID, nil)
		c.Params = []gin.Param{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestLeaveHandler_DeptReview(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		leaveID := uuid.New().String()
		actorID := uuid.New().String()
		svc := &fakeLeaveService{
			deptReviewFn: func(ctx context.Context, aid, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, leaveID, id)
				assert.Equal(t, "approve", req.Action)
				assert.Equal(t, "Enjoy", req.Comments)
				return leave.LeaveResponse{ID: id, Status: "dept_approved"}, nil
			},
		}
		h := leave.NewHandler(svc)
		w, c := newJSONContext(http.MethodPost, "/leaves/"+leaveID+"/dept-review", `{"action":"approve","comments":"Enjoy"}`)
		c.Params = []gin.Param{{Key: "id", Value: leaveID}}
		c.Set("employee_id", actorID)

		h.DeptReview(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "dept_approved", got.Status)
	})

	t.Run("negative lost race returns conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			deptReviewFn: func(ctx context.Context, aid, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveConflict
			},
		}
		h := leave.NewHandler(svc)
		w, c := newJSONContext(http.MethodPost, "/leaves/x/dept-review", `{"action":"reject"}`)
		c.Params = []gin.Param{{Key: "id", Value: uuid.New().String()}}
		c.Set("employee_id", uuid.New().String())

		h.DeptReview(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("negative invalid action", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w, c := newJSONContext(http.MethodPost, "/leaves/x/dept-review", `{"action":"maybe"}`)

		h.DeptReview(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, "Invalid input", env.Error.Message)
	})
}

func TestLeaveHandler_HRReview(t *testing.T) {
	t.Run("negative forbidden", func(t *testing.T) {
		svc := &fakeLeaveService{
			hrReviewFn: func(ctx context.Context, aid, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrReviewForbidden
			},
		}
		h := leave.NewHandler(svc)
		w, c := newJSONContext(http.MethodPost, "/leaves/x/hr-review", `{"action":"approve"}`)
		c.Params = []gin.Param{{Key: "id", Value: uuid.New().String()}}
		c.Set("employee_id", uuid.New().String())

		h.HRReview(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("negative terminal state", func(t *testing.T) {
		svc := &fakeLeaveService{
			hrReviewFn: func(ctx context.Context, aid, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveFinalized
			},
		}
		h := leave.NewHandler(svc)
		w, c := newJSONContext(http.MethodPost, "/leaves/x/hr-review", `{"action":"approve"}`)
		c.Params = []gin.Param{{Key: "id", Value: uuid.New().String()}}

		h.HRReview(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestLeaveHandler_Slip(t *testing.T) {
	leaveID := uuid.New().String()
	svc := &fakeLeaveService{
		generateSlipFn: func(ctx context.Context, aid, id string) ([]byte, error) {
			return []byte("%PDF-1.3 fake"), nil
		},
	}
	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/"+leaveID+"/slip", nil)
	c.Params = []gin.Param{{Key: "id", Value: leaveID}}

	h.Slip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "leave-"+leaveID+".pdf")
}
