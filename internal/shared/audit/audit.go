package audit

import (
	"context"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Entry struct {
	Action  string
	Message string
	ActorID string
	Meta    map[string]any
}

type Logger interface {
	Log(ctx context.Context, entry Entry)
}

// ZapLogger writes audit entries to the "audit" named logger.
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(logger ...*zap.Logger) *ZapLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &ZapLogger{logger: l}
}

func (l *ZapLogger) Log(ctx context.Context, entry Entry) {
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("action", entry.Action),
		zap.String("actor_id", entry.ActorID),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

type nopLogger struct{}

func (nopLogger) Log(context.Context, Entry) {}

// Nop discards entries.
func Nop() Logger {
	return nopLogger{}
}
