package notification_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Thomas-Sunil/newhrms/internal/notification"
	notificationerrors "github.com/Thomas-Sunil/newhrms/internal/notification/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	ListFn        func(ctx context.Context, actorID string, unreadOnly bool) ([]notification.NotificationResponse, error)
	MarkReadFn    func(ctx context.Context, actorID, id string) error
	MarkAllReadFn func(ctx context.Context, actorID string) (notification.MarkAllReadResponse, error)
}

func (f *fakeService) List(ctx context.Context, actorID string, unreadOnly bool) ([]notification.NotificationResponse, error) {
	return f.ListFn(ctx, actorID, unreadOnly)
}

func (f *fakeService) MarkRead(ctx context.Context, actorID, id string) error {
	return f.MarkReadFn(ctx, actorID, id)
}

func (f *fakeService) MarkAllRead(ctx context.Context, actorID string) (notification.MarkAllReadResponse, error) {
	return f.MarkAllReadFn(ctx, actorID)
}

func (f *fakeService) HandleLeaveEvent(context.Context, []byte) error { return nil }

func newContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Set("employee_id", "emp-1")
	return c, w
}

func TestHandler_List(t *testing.T) {
	svc := &fakeService{ListFn: func(_ context.Context, actorID string, unread bool) ([]notification.NotificationResponse, error) {
		assert.Equal(t, "emp-1", actorID)
		assert.True(t, unread)
		return []notification.NotificationResponse{{ID: "n1"}, {ID: "n2"}, {ID: "n3"}}, nil
	}}
	c, w := newContext(http.MethodGet, "/notifications?unread=true&page=1&page_size=2")

	notification.NewHandler(svc).List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":3`)
	assert.NotContains(t, w.Body.String(), "n3")
}

func TestHandler_MarkRead(t *testing.T) {
	svc := &fakeService{MarkReadFn: func(_ context.Context, _ string, id string) error {
		if id == "missing" {
			return notificationerrors.ErrNotificationNotFound
		}
		return nil
	}}
	h := notification.NewHandler(svc)

	c, w := newContext(http.MethodPost, "/notifications/n1/read")
	c.Params = gin.Params{{Key: "id", Value: "n1"}}
	h.MarkRead(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodPost, "/notifications/missing/read")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.MarkRead(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_MarkAllRead(t *testing.T) {
	svc := &fakeService{MarkAllReadFn: func(context.Context, string) (notification.MarkAllReadResponse, error) {
		return notification.MarkAllReadResponse{Updated: 2}, nil
	}}
	c, w := newContext(http.MethodPost, "/notifications/read-all")
	notification.NewHandler(svc).MarkAllRead(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":2`)
}
