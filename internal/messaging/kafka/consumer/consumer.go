package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/events"
	employeehistoryerrors "github.com/Thomas-Sunil/newhrms/internal/employeehistory/errors"
	notificationerrors "github.com/Thomas-Sunil/newhrms/internal/notification/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type HiredRecorder interface {
	RecordHired(ctx context.Context, event events.EmployeeCreatedEvent) error
}

type LeaveEventHandler interface {
	HandleLeaveEvent(ctx context.Context, payload []byte) error
}

// errSkip marks a message that can never succeed. It is committed so the
// partition keeps moving.
var errSkip = errors.New("skip message")

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	history HiredRecorder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")

	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		var envelope struct {
			EventType string `json:"event_type"`
		}
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			log.Error("decode employee lifecycle envelope failed", zap.Error(err))
			return errSkip
		}
		if envelope.EventType != events.EmployeeCreatedEventType {
			log.Debug("ignoring employee lifecycle event", zap.String("event_type", envelope.EventType))
			return nil
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			return errSkip
		}

		if err := history.RecordHired(ctx, event); err != nil {
			if errors.Is(err, employeehistoryerrors.ErrInvalidEmployeeID) {
				log.Warn("employee_created event has invalid employee id, skipping",
					zap.String("employee_id", event.EmployeeID),
				)
				return errSkip
			}
			log.Error("record hired history failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			return err
		}

		log.Info("employment history recorded from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("request_id", event.RequestID),
		)
		return nil
	})
}

func ConsumeLeaveWorkflow(
	ctx context.Context,
	reader MessageReader,
	notifications LeaveEventHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_workflow")

	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		if err := notifications.HandleLeaveEvent(ctx, msg.Value); err != nil {
			if errors.Is(err, notificationerrors.ErrMalformedEvent) {
				log.Warn("malformed leave workflow event, skipping",
					zap.String("key", string(msg.Key)),
					zap.Error(err),
				)
				return errSkip
			}
			log.Error("handle leave workflow event failed",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
}

// Backoff between attempts at the same message. Vars so tests can shorten them.
var (
	retryInitialBackoff = 500 * time.Millisecond
	retryMaxBackoff     = 30 * time.Second
)

// consume fetches until ctx is cancelled. A message is retried in place until
// it is handled or skipped, and only then committed, so a later offset is
// never committed past a failed one.
func consume(
	ctx context.Context,
	reader MessageReader,
	log *zap.Logger,
	handle func(context.Context, kafkago.Message) error,
) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if !handleWithRetry(ctx, msg, log, handle) {
			log.Info("consumer stopped before message was handled",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

// handleWithRetry returns false only when ctx is cancelled first.
func handleWithRetry(
	ctx context.Context,
	msg kafkago.Message,
	log *zap.Logger,
	handle func(context.Context, kafkago.Message) error,
) bool {
	backoff := retryInitialBackoff
	for attempt := 1; ; attempt++ {
		err := handle(ctx, msg)
		if err == nil || errors.Is(err, errSkip) {
			return true
		}

		log.Warn("handle message failed, retrying",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}

		backoff *= 2
		if backoff > retryMaxBackoff {
			backoff = retryMaxBackoff
		}
	}
}
