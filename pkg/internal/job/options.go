package job

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// WithJobName sets the job name reported in the execution.
func WithJobName(name string) types.Option[*Runner] {
	return func(r *Runner) {
		if name != "" {
			r.jobName = name
		}
	}
}

// WithStepName sets the step name reported in the execution.
func WithStepName(name string) types.Option[*Runner] {
	return func(r *Runner) {
		if name != "" {
			r.stepName = name
		}
	}
}

// WithChunkSize sets the commit interval.
func WithChunkSize(n int) types.Option[*Runner] {
	return func(r *Runner) {
		if n >= 1 {
			r.chunkSize = n
		}
	}
}

// WithMeter collects run metrics on m and logs a summary when the run ends.
func WithMeter(m types.Meter) types.Option[*Runner] {
	return func(r *Runner) {
		r.meter = m
	}
}

// WithListener registers lifecycle listeners, called in registration order.
func WithListener(listeners ...types.JobListener) types.Option[*Runner] {
	return func(r *Runner) {
		for _, l := range listeners {
			if l != nil {
				r.listeners = append(r.listeners, l)
			}
		}
	}
}

// WithPublisher registers publishers run after the document is finalized.
func WithPublisher(publishers ...types.Publisher) types.Option[*Runner] {
	return func(r *Runner) {
		for _, p := range publishers {
			if p != nil {
				r.publishers = append(r.publishers, p)
			}
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Runner] {
	return func(r *Runner) {
		r.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata overrides the name and ID.
func WithComponentMetadata(name string, id string) types.Option[*Runner] {
	return func(r *Runner) {
		r.componentMetadata.Name = name
		r.componentMetadata.ID = id
	}
}
