package kafkaclient

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// ConnectLogger attaches loggers to the listener.
func (l *EventListener) ConnectLogger(loggers ...types.Logger) {
	l.loggersLock.Lock()
	defer l.loggersLock.Unlock()
	for _, lg := range loggers {
		if lg != nil {
			l.loggers = append(l.loggers, lg)
		}
	}
}

// NotifyLoggers sends a message to every attached logger that accepts level.
func (l *EventListener) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	l.loggersLock.Lock()
	loggers := append([]types.Logger(nil), l.loggers...)
	l.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}

func (l *EventListener) notifyFailure(event, runID string, err error) {
	l.NotifyLoggers(types.WarnLevel, "Job event not delivered",
		"component", l.componentMetadata,
		"event", event,
		"result", "FAILURE",
		"run_id", runID,
		"error", err,
	)
}
