package linesource

import (
	"io/fs"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// WithFS reads the resource from fsys instead of the local filesystem.
func WithFS(fsys fs.FS) types.Option[*LineSource] {
	return func(s *LineSource) {
		s.fsys = fsys
	}
}

// WithEncoding sets the input charset. See ValidEncoding for accepted names.
func WithEncoding(name string) types.Option[*LineSource] {
	return func(s *LineSource) {
		s.encoding = name
	}
}

// WithLinesToSkip skips n leading lines, e.g. a header row.
func WithLinesToSkip(n int) types.Option[*LineSource] {
	return func(s *LineSource) {
		if n >= 0 {
			s.linesToSkip = n
		}
	}
}

// WithCommentPrefix sets the prefix marking comment lines. An empty prefix disables comments.
func WithCommentPrefix(prefix string) types.Option[*LineSource] {
	return func(s *LineSource) {
		s.commentPrefix = prefix
	}
}

// WithSkipBlankLines controls whether empty lines are dropped.
func WithSkipBlankLines(skip bool) types.Option[*LineSource] {
	return func(s *LineSource) {
		s.skipBlank = skip
	}
}

// WithBufferSize sets the read buffer size.
func WithBufferSize(n int) types.Option[*LineSource] {
	return func(s *LineSource) {
		if n > 0 {
			s.bufferSize = n
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*LineSource] {
	return func(s *LineSource) {
		s.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata overrides the name and ID.
func WithComponentMetadata(name string, id string) types.Option[*LineSource] {
	return func(s *LineSource) {
		s.SetComponentMetadata(name, id)
	}
}
