// Package chunk drives the read, process and write cycle of a chunk-oriented step.
//
// Each cycle reads up to chunkSize lines, parses and transforms them, and hands the
// surviving records to the document sink as one unit. The chunk is the commit
// boundary: it is either written completely or, on any error, rolled back without
// touching the sink. The orchestrator keeps no state beyond the chunk in flight and
// the step counters.
package chunk

import (
	"sync"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

const DefaultChunkSize = 10

// State is the position of the orchestrator in its cycle.
type State int

const (
	StateReading State = iota
	StateProcessing
	StateWriting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateReading:
		return "READING"
	case StateProcessing:
		return "PROCESSING"
	case StateWriting:
		return "WRITING"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Orchestrator runs the chunk cycle over one source, parser, transformer and sink.
type Orchestrator struct {
	componentMetadata types.ComponentMetadata

	source      types.LineSource
	parser      types.RecordParser
	transformer types.RecordTransformer
	sink        types.DocumentSink
	meter       types.Meter
	chunkSize   int

	loggers     []types.Logger
	loggersLock sync.Mutex

	state      State
	chunkIndex int
	step       types.StepExecution
	lines      []types.RawLine
}

// NewOrchestrator wires the step components together. The source and sink must already
// be open when Run is called.
func NewOrchestrator(
	source types.LineSource,
	parser types.RecordParser,
	transformer types.RecordTransformer,
	sink types.DocumentSink,
	options ...types.Option[*Orchestrator],
) *Orchestrator {
	o := &Orchestrator{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "CHUNK_ORCHESTRATOR",
		},
		source:      source,
		parser:      parser,
		transformer: transformer,
		sink:        sink,
		chunkSize:   DefaultChunkSize,
		step:        types.StepExecution{Name: "examResultStep"},
	}
	for _, opt := range options {
		opt(o)
	}
	o.lines = make([]types.RawLine, 0, o.chunkSize)
	return o
}

// GetComponentMetadata returns the metadata.
func (o *Orchestrator) GetComponentMetadata() types.ComponentMetadata {
	return o.componentMetadata
}

// State returns the current cycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// ChunkSize returns the configured maximum number of lines per chunk.
func (o *Orchestrator) ChunkSize() int {
	return o.chunkSize
}

// StepExecution returns a copy of the step counters.
func (o *Orchestrator) StepExecution() types.StepExecution {
	return o.step
}
