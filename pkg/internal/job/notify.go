package job

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// ConnectLogger attaches loggers to the runner. They are shared with the orchestrator.
func (r *Runner) ConnectLogger(loggers ...types.Logger) {
	r.loggersLock.Lock()
	defer r.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			r.loggers = append(r.loggers, l)
		}
	}
}

func (r *Runner) snapshotLoggers() []types.Logger {
	r.loggersLock.Lock()
	defer r.loggersLock.Unlock()
	return append([]types.Logger(nil), r.loggers...)
}

// NotifyLoggers sends a message to every attached logger that accepts level.
func (r *Runner) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range r.snapshotLoggers() {
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

func (r *Runner) notifyFailure(event string, exec *types.JobExecution, err error) {
	r.NotifyLoggers(types.WarnLevel, event+" failed",
		"component", r.componentMetadata,
		"event", event,
		"result", "FAILURE",
		"run_id", exec.RunID,
		"error", err,
	)
}
