package job

import (
	"context"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// LoggingListener logs the start and outcome of every run.
type LoggingListener struct {
	logger types.Logger
}

// NewLoggingListener returns a listener writing to logger.
func NewLoggingListener(logger types.Logger) *LoggingListener {
	return &LoggingListener{logger: logger}
}

// BeforeJob logs the run start.
func (l *LoggingListener) BeforeJob(_ context.Context, exec *types.JobExecution) {
	if l.logger == nil {
		return
	}
	l.logger.Info("Job started",
		"event", "BeforeJob",
		"result", "SUCCESS",
		"run_id", exec.RunID,
		"job", exec.JobName,
	)
}

// AfterJob logs the terminal status and step counters.
func (l *LoggingListener) AfterJob(_ context.Context, exec *types.JobExecution) {
	if l.logger == nil {
		return
	}
	kv := []interface{}{
		"event", "AfterJob",
		"run_id", exec.RunID,
		"job", exec.JobName,
		"status", string(exec.Status),
		"read", exec.Step.ReadCount,
		"filtered", exec.Step.FilterCount,
		"written", exec.Step.WriteCount,
		"commits", exec.Step.CommitCount,
		"rollbacks", exec.Step.RollbackCount,
		"lastCommittedLine", exec.Step.LastCommittedLine,
		"duration", exec.Duration().String(),
	}
	if exec.Failed() {
		l.logger.Error("Job failed", append(kv, "result", "FAILURE", "error", exec.Cause)...)
		return
	}
	l.logger.Info("Job completed", append(kv, "result", "SUCCESS")...)
}
