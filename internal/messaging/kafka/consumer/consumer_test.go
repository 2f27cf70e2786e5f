package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/events"
	employeehistoryerrors "github.com/Thomas-Sunil/newhrms/internal/employeehistory/errors"
	notificationerrors "github.com/Thomas-Sunil/newhrms/internal/notification/errors"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeReader hands out queued messages and cancels the consumer once drained.
type fakeReader struct {
	queue     []kafkago.Message
	cancel    context.CancelFunc
	committed []int64
	trace     *[]string
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.queue) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
		if r.trace != nil {
			*r.trace = append(*r.trace, fmt.Sprintf("commit:%d", m.Offset))
		}
	}
	return nil
}

func newReader(msgs ...string) (*fakeReader, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &fakeReader{cancel: cancel}
	for i, m := range msgs {
		r.queue = append(r.queue, kafkago.Message{Offset: int64(i), Value: []byte(m)})
	}
	return r, ctx
}

func fastRetry(t *testing.T) {
	t.Helper()
	prevInitial, prevMax := retryInitialBackoff, retryMaxBackoff
	retryInitialBackoff, retryMaxBackoff = time.Millisecond, 2*time.Millisecond
	t.Cleanup(func() {
		retryInitialBackoff, retryMaxBackoff = prevInitial, prevMax
	})
}

type fakeHistory struct {
	recorded []events.EmployeeCreatedEvent
	failures int
	err      error
	calls    int
}

func (f *fakeHistory) RecordHired(_ context.Context, event events.EmployeeCreatedEvent) error {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return f.err
	}
	f.recorded = append(f.recorded, event)
	return nil
}

type fakeLeaveHandler struct {
	errs     []error
	received []string
	trace    *[]string
	onCall   func(n int)
}

func (f *fakeLeaveHandler) HandleLeaveEvent(_ context.Context, payload []byte) error {
	f.received = append(f.received, string(payload))
	if f.trace != nil {
		*f.trace = append(*f.trace, "handle:"+string(payload))
	}
	if f.onCall != nil {
		f.onCall(len(f.received))
	}
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	reader, ctx := newReader(
		`{"event_type":"employee.created","employee_id":"4a3c6a8e-6f0d-4a4b-9a39-5f0a0d6b3c11","joined_on":"2026-01-05"}`,
		`not json`,
		`{"event_type":"employee.updated","employee_id":"x"}`,
	)
	history := &fakeHistory{}

	ConsumeEmployeeLifecycle(ctx, reader, history, zap.NewNop())

	assert.Len(t, history.recorded, 1)
	assert.Equal(t, "4a3c6a8e-6f0d-4a4b-9a39-5f0a0d6b3c11", history.recorded[0].EmployeeID)
	assert.Equal(t, []int64{0, 1, 2}, reader.committed)
}

func TestConsumeEmployeeLifecycle_InvalidEmployeeCommitted(t *testing.T) {
	reader, ctx := newReader(`{"event_type":"employee.created","employee_id":"nope"}`)
	history := &fakeHistory{failures: 1, err: employeehistoryerrors.ErrInvalidEmployeeID}

	ConsumeEmployeeLifecycle(ctx, reader, history, zap.NewNop())

	assert.Equal(t, 1, history.calls)
	assert.Equal(t, []int64{0}, reader.committed)
}

func TestConsumeEmployeeLifecycle_TransientErrorRetried(t *testing.T) {
	fastRetry(t)
	reader, ctx := newReader(`{"event_type":"employee.created","employee_id":"4a3c6a8e-6f0d-4a4b-9a39-5f0a0d6b3c11"}`)
	history := &fakeHistory{failures: 2, err: errors.New("connection reset")}

	ConsumeEmployeeLifecycle(ctx, reader, history, zap.NewNop())

	assert.Equal(t, 3, history.calls)
	assert.Len(t, history.recorded, 1)
	assert.Equal(t, []int64{0}, reader.committed)
}

func TestConsumeLeaveWorkflow(t *testing.T) {
	fastRetry(t)
	reader, ctx := newReader(`{"event_type":"leave.submitted"}`, `{}`, `{"event_type":"leave.reviewed"}`)
	handler := &fakeLeaveHandler{errs: []error{
		nil,
		fmt.Errorf("%w: leave_id", notificationerrors.ErrMalformedEvent),
		errors.New("db timeout"),
	}}

	ConsumeLeaveWorkflow(ctx, reader, handler, zap.NewNop())

	assert.Equal(t, []string{
		`{"event_type":"leave.submitted"}`,
		`{}`,
		`{"event_type":"leave.reviewed"}`,
		`{"event_type":"leave.reviewed"}`,
	}, handler.received)
	assert.Equal(t, []int64{0, 1, 2}, reader.committed)
}

func TestConsumeLeaveWorkflow_FailedMessageHandledBeforeNextCommit(t *testing.T) {
	fastRetry(t)
	var trace []string
	reader, ctx := newReader("first", "second")
	reader.trace = &trace
	handler := &fakeLeaveHandler{errs: []error{errors.New("db down")}, trace: &trace}

	ConsumeLeaveWorkflow(ctx, reader, handler, zap.NewNop())

	assert.Equal(t, []string{
		"handle:first",
		"handle:first",
		"commit:0",
		"handle:second",
		"commit:1",
	}, trace)
}

func TestConsumeLeaveWorkflow_CancelDuringRetryCommitsNothing(t *testing.T) {
	fastRetry(t)
	reader, ctx := newReader("first", "second")
	handler := &fakeLeaveHandler{}
	handler.onCall = func(n int) {
		handler.errs = append(handler.errs, errors.New("db down"))
		if n == 3 {
			reader.cancel()
		}
	}

	ConsumeLeaveWorkflow(ctx, reader, handler, zap.NewNop())

	assert.Equal(t, []string{"first", "first", "first"}, handler.received)
	assert.Empty(t, reader.committed)
	assert.Len(t, reader.queue, 1)
}
