// Package pub delivers notifications to the terminal log and to remote sinks.
package pub

import (
	"context"
	"empdir/internal/ports"
	"empdir/internal/types"
	"errors"

	log "github.com/sirupsen/logrus"
)

type logPub struct {
	logger log.FieldLogger
}

// NewLog records notifications in the log: errors at error level, the rest at info.
func NewLog(logger log.FieldLogger) *logPub {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &logPub{logger: logger}
}

func (l *logPub) Notify(_ context.Context, n types.Notification) error {
	entry := l.logger.WithFields(log.Fields{"severity": n.Severity, "title": n.Title})
	if n.Severity == types.SeverityError {
		entry.Error(n.Message)
	} else {
		entry.Info(n.Message)
	}
	return nil
}

// Fanout delivers to every notifier, even when an earlier one fails.
type Fanout []ports.Notifier

func (f Fanout) Notify(ctx context.Context, n types.Notification) error {
	var errs []error
	for _, nt := range f {
		if nt == nil {
			continue
		}
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
