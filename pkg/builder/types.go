package builder

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// Domain types re-exported for callers of the builder.
type (
	RawLine        = types.RawLine
	ExamResult     = types.ExamResult
	Attribute      = types.Attribute
	Chunk          = types.Chunk
	JobExecution   = types.JobExecution
	StepExecution  = types.StepExecution
	JobStatus      = types.JobStatus
	JobListener    = types.JobListener
	Publisher      = types.Publisher
	TransformStep  = types.TransformStep
	Logger         = types.Logger
	Meter          = types.Meter
	IOError        = types.IOError
	ParseError     = types.ParseError
	ParseFailure   = types.ParseFailure
	TransformError = types.TransformError
)

const (
	JobStarting  = types.JobStarting
	JobStarted   = types.JobStarted
	JobCompleted = types.JobCompleted
	JobFailed    = types.JobFailed

	FieldCountMismatch = types.FieldCountMismatch
	TypeCoercion       = types.TypeCoercion
)
