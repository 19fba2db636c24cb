package types

import (
	"context"
	"time"
)

// JobStatus is the terminal state of a run.
type JobStatus string

const (
	JobStarting  JobStatus = "STARTING"
	JobStarted   JobStatus = "STARTED"
	JobCompleted JobStatus = "COMPLETED"
	JobFailed    JobStatus = "FAILED"
)

// StepExecution holds the counters of the single chunk-oriented step.
type StepExecution struct {
	Name              string
	ReadCount         int
	FilterCount       int
	WriteCount        int
	CommitCount       int
	RollbackCount     int
	LastCommittedLine int // highest input line covered by a committed chunk
}

// JobExecution describes one run of the job. It lives in memory only.
type JobExecution struct {
	RunID     string
	JobName   string
	Status    JobStatus
	Cause     error
	StartTime time.Time
	EndTime   time.Time
	Step      StepExecution
}

// Failed reports whether the run ended in failure.
func (e *JobExecution) Failed() bool { return e.Status == JobFailed }

// Duration returns the wall time of the run, or zero while it is in progress.
func (e *JobExecution) Duration() time.Duration {
	if e.EndTime.IsZero() {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// JobListener observes the lifecycle of a run.
type JobListener interface {
	BeforeJob(ctx context.Context, exec *JobExecution)
	AfterJob(ctx context.Context, exec *JobExecution)
}

// Publisher ships a finalized document somewhere after a successful run.
type Publisher interface {
	Publish(ctx context.Context, path string, exec *JobExecution) error
	Name() string
}
