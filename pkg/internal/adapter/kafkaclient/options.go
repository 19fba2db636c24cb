package kafkaclient

import (
	"time"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// WithWriteTimeout bounds each message write.
func WithWriteTimeout(d time.Duration) types.Option[*EventListener] {
	return func(l *EventListener) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*EventListener] {
	return func(l *EventListener) {
		l.ConnectLogger(loggers...)
	}
}
