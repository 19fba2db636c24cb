package s3client

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// ConnectLogger attaches loggers to the publisher.
func (p *Publisher) ConnectLogger(loggers ...types.Logger) {
	p.loggersLock.Lock()
	defer p.loggersLock.Unlock()
	for _, lg := range loggers {
		if lg != nil {
			p.loggers = append(p.loggers, lg)
		}
	}
}

// NotifyLoggers sends a message to every attached logger that accepts level.
func (p *Publisher) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	p.loggersLock.Lock()
	loggers := append([]types.Logger(nil), p.loggers...)
	p.loggersLock.Unlock()

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
