package documentsink

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// WithRootTag sets the document root element name.
func WithRootTag(tag string) types.Option[*DocumentSink] {
	return func(s *DocumentSink) {
		if tag != "" {
			s.rootTag = tag
		}
	}
}

// WithRecordTag sets the element name of each record.
func WithRecordTag(tag string) types.Option[*DocumentSink] {
	return func(s *DocumentSink) {
		if tag != "" {
			s.recordTag = tag
		}
	}
}

// WithIndent pretty-prints the document. Empty means compact output.
func WithIndent(indent string) types.Option[*DocumentSink] {
	return func(s *DocumentSink) {
		s.indent = indent
	}
}

// WithCompression compresses the output stream. See codec.ValidCompression.
func WithCompression(name string) types.Option[*DocumentSink] {
	return func(s *DocumentSink) {
		s.compression = name
	}
}

// WithOpener replaces the function that creates the output resource.
func WithOpener(opener Opener) types.Option[*DocumentSink] {
	return func(s *DocumentSink) {
		if opener != nil {
			s.opener = opener
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*DocumentSink] {
	return func(s *DocumentSink) {
		s.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata overrides the name and ID.
func WithComponentMetadata(name string, id string) types.Option[*DocumentSink] {
	return func(s *DocumentSink) {
		s.SetComponentMetadata(name, id)
	}
}
