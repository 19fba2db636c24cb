package builder

import (
	"io/fs"

	"github.com/joeydtaylor/exametl/pkg/internal/linesource"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// Supported input charsets.
const (
	EncodingUTF8        = linesource.EncodingUTF8
	EncodingISO88591    = linesource.EncodingISO88591
	EncodingISO885915   = linesource.EncodingISO885915
	EncodingWindows1252 = linesource.EncodingWindows1252
)

// NewLineSource creates a source reading the delimited file at path.
func NewLineSource(path string, options ...types.Option[*linesource.LineSource]) *linesource.LineSource {
	return linesource.NewLineSource(path, options...)
}

// LineSourceWithFS reads from fsys instead of the local filesystem.
func LineSourceWithFS(fsys fs.FS) types.Option[*linesource.LineSource] {
	return linesource.WithFS(fsys)
}

// LineSourceWithEncoding sets the input charset.
func LineSourceWithEncoding(name string) types.Option[*linesource.LineSource] {
	return linesource.WithEncoding(name)
}

// LineSourceWithLinesToSkip skips leading header lines.
func LineSourceWithLinesToSkip(n int) types.Option[*linesource.LineSource] {
	return linesource.WithLinesToSkip(n)
}

// LineSourceWithCommentPrefix sets the comment marker. Empty disables comments.
func LineSourceWithCommentPrefix(prefix string) types.Option[*linesource.LineSource] {
	return linesource.WithCommentPrefix(prefix)
}

// LineSourceWithSkipBlankLines controls whether blank lines are dropped.
func LineSourceWithSkipBlankLines(skip bool) types.Option[*linesource.LineSource] {
	return linesource.WithSkipBlankLines(skip)
}

// LineSourceWithBufferSize sets the read buffer size.
func LineSourceWithBufferSize(n int) types.Option[*linesource.LineSource] {
	return linesource.WithBufferSize(n)
}

// LineSourceWithLogger attaches loggers.
func LineSourceWithLogger(l ...types.Logger) types.Option[*linesource.LineSource] {
	return linesource.WithLogger(l...)
}

// LineSourceWithComponentMetadata overrides name and ID.
func LineSourceWithComponentMetadata(name string, id string) types.Option[*linesource.LineSource] {
	return linesource.WithComponentMetadata(name, id)
}
