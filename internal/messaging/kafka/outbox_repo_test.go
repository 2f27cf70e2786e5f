package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("rid-1", "leave_request", "leave-1", "leave.submitted", "hrms.leave.workflow.v1", map[string]string{"leave_id": "leave-1"})

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"leave_id":"leave-1"}`, string(event.Payload))
}

func TestNewOutboxEvent_MissingTopic(t *testing.T) {
	_, err := kafka.NewOutboxEvent("", "leave_request", "leave-1", "leave.submitted", "", map[string]string{})
	assert.EqualError(t, err, "outbox topic is required")
}

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	event, err := kafka.NewOutboxEvent("rid-1", "employee", "emp-1", "employee.created", "hrms.employee.lifecycle.v1", map[string]string{"employee_id": "emp-1"})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID, "rid-1", "employee", "emp-1", "employee.created", "hrms.employee.lifecycle.v1", event.Payload, kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)
	assert.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	err = kafka.NewOutboxRepository(db).Create(context.Background(), kafka.OutboxEvent{ID: "x", Topic: "t"})
	assert.EqualError(t, err, "outbox payload is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("o-1", "rid-1", "leave_request", "leave-1", "leave.submitted", "hrms.leave.workflow.v1", []byte(`{}`), kafka.OutboxStatusPending, 0, now).
		AddRow("o-2", "", "leave_request", "leave-2", "leave.reviewed", "hrms.leave.workflow.v1", []byte(`{}`), kafka.OutboxStatusFailed, 2, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, kafka.MaxRetries, kafka.DefaultBatchSize).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 0)

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "rid-1", events[0].RequestID)
	assert.Equal(t, "o-2", events[1].ID)
	assert.Equal(t, 2, events[1].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("o-1", kafka.OutboxStatusFailed, "broker down").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "o-1", "broker down"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
