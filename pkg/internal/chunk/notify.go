package chunk

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// ConnectLogger attaches loggers to the orchestrator.
func (o *Orchestrator) ConnectLogger(loggers ...types.Logger) {
	o.loggersLock.Lock()
	defer o.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			o.loggers = append(o.loggers, l)
		}
	}
}

// NotifyLoggers sends a message to every attached logger that accepts level.
func (o *Orchestrator) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	o.loggersLock.Lock()
	loggers := append([]types.Logger(nil), o.loggers...)
	o.loggersLock.Unlock()

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
