package builder

import (
	"github.com/joeydtaylor/exametl/pkg/internal/job"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

const DefaultJobName = job.DefaultJobName

var ErrAlreadyRun = job.ErrAlreadyRun

// NewRunner wires a single-step job. The runner owns source and sink.
func NewRunner(
	source types.LineSource,
	parser types.RecordParser,
	transformer types.RecordTransformer,
	sink types.DocumentSink,
	options ...types.Option[*job.Runner],
) *job.Runner {
	return job.NewRunner(source, parser, transformer, sink, options...)
}

// NewLoggingListener logs run start and outcome to logger.
func NewLoggingListener(logger types.Logger) *job.LoggingListener {
	return job.NewLoggingListener(logger)
}

func RunnerWithJobName(name string) types.Option[*job.Runner] {
	return job.WithJobName(name)
}

func RunnerWithStepName(name string) types.Option[*job.Runner] {
	return job.WithStepName(name)
}

// RunnerWithChunkSize sets the commit interval. Values below 1 are ignored.
func RunnerWithChunkSize(n int) types.Option[*job.Runner] {
	return job.WithChunkSize(n)
}

func RunnerWithMeter(m types.Meter) types.Option[*job.Runner] {
	return job.WithMeter(m)
}

func RunnerWithListener(listeners ...types.JobListener) types.Option[*job.Runner] {
	return job.WithListener(listeners...)
}

// RunnerWithPublisher ships the finalized document after a successful run.
func RunnerWithPublisher(publishers ...types.Publisher) types.Option[*job.Runner] {
	return job.WithPublisher(publishers...)
}

func RunnerWithLogger(l ...types.Logger) types.Option[*job.Runner] {
	return job.WithLogger(l...)
}

func RunnerWithComponentMetadata(name string, id string) types.Option[*job.Runner] {
	return job.WithComponentMetadata(name, id)
}

// Option configures a Runner.
type Option = types.Option[*job.Runner]
