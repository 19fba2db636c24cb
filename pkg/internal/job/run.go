package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joeydtaylor/exametl/pkg/internal/chunk"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

type pathReporter interface {
	Path() string
}

// Run executes the job once and returns its execution record. Errors are reported
// through the record's Status and Cause.
func (r *Runner) Run(ctx context.Context) *types.JobExecution {
	exec := &types.JobExecution{
		RunID:     uuid.NewString(),
		JobName:   r.jobName,
		Status:    types.JobStarting,
		StartTime: time.Now().UTC(),
		Step:      types.StepExecution{Name: r.stepName},
	}

	r.mu.Lock()
	alreadyRan := r.ran
	r.ran = true
	r.mu.Unlock()
	if alreadyRan {
		exec.Status = types.JobFailed
		exec.Cause = ErrAlreadyRun
		exec.EndTime = exec.StartTime
		return exec
	}

	for _, l := range r.listeners {
		l.BeforeJob(ctx, exec)
	}
	exec.Status = types.JobStarted

	err := r.execute(ctx, exec)

	exec.EndTime = time.Now().UTC()
	if err != nil {
		exec.Status = types.JobFailed
		exec.Cause = err
	} else {
		exec.Status = types.JobCompleted
	}

	for _, l := range r.listeners {
		l.AfterJob(ctx, exec)
	}
	if r.meter != nil {
		for _, logger := range r.snapshotLoggers() {
			r.meter.ReportSummary(logger, "run_id", exec.RunID, "job", exec.JobName, "status", string(exec.Status))
		}
	}
	return exec
}

func (r *Runner) execute(ctx context.Context, exec *types.JobExecution) (err error) {
	defer func() {
		if cerr := r.source.Close(); cerr != nil {
			r.notifyFailure("CloseSource", exec, cerr)
		}
	}()
	if err := r.source.Open(ctx); err != nil {
		return fmt.Errorf("open source: %w", err)
	}

	defer func() {
		if rerr := r.sink.Release(); rerr != nil {
			r.notifyFailure("ReleaseSink", exec, rerr)
		}
	}()
	if err := r.sink.Open(ctx); err != nil {
		return fmt.Errorf("open sink: %w", err)
	}

	orch := chunk.NewOrchestrator(r.source, r.parser, r.transformer, r.sink,
		chunk.WithChunkSize(r.chunkSize),
		chunk.WithMeter(r.meter),
		chunk.WithStepName(r.stepName),
		chunk.WithLogger(r.snapshotLoggers()...),
	)
	runErr := orch.Run(ctx)
	exec.Step = orch.StepExecution()
	if runErr != nil {
		return runErr
	}

	if err := r.sink.Close(); err != nil {
		return fmt.Errorf("finalize document: %w", err)
	}

	path := ""
	if pr, ok := r.sink.(pathReporter); ok {
		path = pr.Path()
	}
	for _, p := range r.publishers {
		if err := p.Publish(ctx, path, exec); err != nil {
			return &types.IOError{Op: "publish", Path: path, Err: fmt.Errorf("%s: %w", p.Name(), err)}
		}
		r.NotifyLoggers(types.InfoLevel, "Document published",
			"component", r.componentMetadata,
			"event", "Publish",
			"result", "SUCCESS",
			"run_id", exec.RunID,
			"publisher", p.Name(),
			"path", path,
		)
	}
	return nil
}
