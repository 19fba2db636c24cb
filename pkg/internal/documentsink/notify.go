package documentsink

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// ConnectLogger attaches loggers to the sink.
func (s *DocumentSink) ConnectLogger(loggers ...types.Logger) {
	s.loggersLock.Lock()
	defer s.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			s.loggers = append(s.loggers, l)
		}
	}
}

// NotifyLoggers sends a message to every attached logger that accepts level.
func (s *DocumentSink) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	s.loggersLock.Lock()
	loggers := append([]types.Logger(nil), s.loggers...)
	s.loggersLock.Unlock()

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

func (s *DocumentSink) notifyFailure(event string, err error, keysAndValues ...interface{}) {
	kv := append([]interface{}{
		"component", s.componentMetadata,
		"event", event,
		"result", "FAILURE",
		"path", s.path,
		"error", err,
	}, keysAndValues...)
	s.NotifyLoggers(types.ErrorLevel, event+" failed", kv...)
}
