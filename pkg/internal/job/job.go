// Package job runs the single chunk-oriented step of the exam result export.
//
// A Runner owns its line source and document sink for the duration of one run. Both
// are opened at the start of Run and released on every exit path; the document is
// finalized only when every chunk committed. Listeners observe the run before and
// after it executes, and publishers ship the finished document once it is closed.
package job

import (
	"errors"
	"sync"

	"github.com/joeydtaylor/exametl/pkg/internal/chunk"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

const DefaultJobName = "examResultJob"

// ErrAlreadyRun is the cause reported when a Runner is asked to run a second time.
var ErrAlreadyRun = errors.New("job: runner has already run")

// Runner executes one run of the job.
type Runner struct {
	componentMetadata types.ComponentMetadata

	jobName     string
	stepName    string
	source      types.LineSource
	parser      types.RecordParser
	transformer types.RecordTransformer
	sink        types.DocumentSink
	chunkSize   int
	meter       types.Meter

	listeners  []types.JobListener
	publishers []types.Publisher

	loggers     []types.Logger
	loggersLock sync.Mutex

	mu  sync.Mutex
	ran bool
}

// NewRunner wires the step components. The runner takes ownership of source and sink.
func NewRunner(
	source types.LineSource,
	parser types.RecordParser,
	transformer types.RecordTransformer,
	sink types.DocumentSink,
	options ...types.Option[*Runner],
) *Runner {
	r := &Runner{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "JOB_RUNNER",
		},
		jobName:     DefaultJobName,
		stepName:    "examResultStep",
		source:      source,
		parser:      parser,
		transformer: transformer,
		sink:        sink,
		chunkSize:   chunk.DefaultChunkSize,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// GetComponentMetadata returns the metadata.
func (r *Runner) GetComponentMetadata() types.ComponentMetadata {
	return r.componentMetadata
}

// JobName returns the configured job name.
func (r *Runner) JobName() string {
	return r.jobName
}

// Publishers returns the registered publishers in run order.
func (r *Runner) Publishers() []types.Publisher {
	return append([]types.Publisher(nil), r.publishers...)
}

// Listeners returns the registered listeners in notification order.
func (r *Runner) Listeners() []types.JobListener {
	return append([]types.JobListener(nil), r.listeners...)
}
