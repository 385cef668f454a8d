package error_reporting

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

type ErrorReporter interface {
	ReportError(err error, tags map[string]string)
}

// SentryErrorReporter sends errors to Sentry. Without a DSN the events are
// only logged.
type SentryErrorReporter struct {
	hub    *sentry.Hub
	logger *slog.Logger
}

func NewSentryErrorReporter(hub *sentry.Hub, logger *slog.Logger) *SentryErrorReporter {
	return &SentryErrorReporter{
		hub:    hub,
		logger: logger,
	}
}

// InitSentry configures the global Sentry client. An empty DSN keeps the
// client in no-op mode.
func InitSentry(dsn string, environment string) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
}

func Flush() {
	sentry.Flush(flushTimeout)
}

func (r *SentryErrorReporter) ReportError(err error, tags map[string]string) {
	if err == nil {
		return
	}

	args := []any{slog.String("error", err.Error())}
	for key, value := range tags {
		args = append(args, slog.String(key, value))
	}
	r.logger.Error("Reporting error", args...)

	hub := r.hub
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}
