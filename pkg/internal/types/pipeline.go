package types

import "context"

// LineSource yields raw lines from an input resource, one at a time.
// Next returns io.EOF once the input is exhausted.
type LineSource interface {
	Open(ctx context.Context) error
	Next(ctx context.Context) (RawLine, error)
	Position() int
	Close() error
	GetComponentMetadata() ComponentMetadata
}

// RecordParser maps one raw line onto an ExamResult. Implementations are pure.
type RecordParser interface {
	Parse(line RawLine) (ExamResult, error)
}

// RecordTransformer applies business rules to one record. A false keep result filters
// the record out of the document without failing the run.
type RecordTransformer interface {
	Transform(rec ExamResult) (out ExamResult, keep bool, err error)
}

// TransformStep is a single rule inside a RecordTransformer.
type TransformStep func(ExamResult) (ExamResult, bool, error)

// DocumentSink serializes chunks of records as a single framed document.
//
// Open writes the document start exactly once. Close writes the document end exactly
// once and is a no-op when repeated. Release frees the underlying resource without
// finalizing the document; it is a no-op after Close.
type DocumentSink interface {
	Open(ctx context.Context) error
	Write(ctx context.Context, chunk Chunk) error
	Close() error
	Release() error
	GetComponentMetadata() ComponentMetadata
}
