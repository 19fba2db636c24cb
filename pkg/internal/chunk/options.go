package chunk

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// WithChunkSize sets the maximum number of lines per chunk. Values below 1 are ignored.
func WithChunkSize(n int) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		if n >= 1 {
			o.chunkSize = n
		}
	}
}

// WithMeter records step counters on m as well.
func WithMeter(m types.Meter) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.meter = m
	}
}

// WithStepName sets the name reported in the step execution.
func WithStepName(name string) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		if name != "" {
			o.step.Name = name
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata overrides the name and ID.
func WithComponentMetadata(name string, id string) types.Option[*Orchestrator] {
	return func(o *Orchestrator) {
		o.componentMetadata.Name = name
		o.componentMetadata.ID = id
	}
}
