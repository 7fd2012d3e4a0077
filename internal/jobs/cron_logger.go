package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger routes cron's own messages, such as skipped ticks, to slog.
type cronLogger struct {
	logger *slog.Logger
}

// NewCronLogger adapts logger to cron.Logger.
func NewCronLogger(logger *slog.Logger) cron.Logger {
	return cronLogger{logger: logger.With("component", "cron")}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.InfoContext(context.Background(), msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.ErrorContext(context.Background(), msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
