// Package linesource reads an input resource line by line for the chunked pipeline.
//
// A LineSource materializes at most one line ahead of its caller. Lines are numbered
// from 1 in the order they appear in the resource, including lines that are skipped
// as headers, comments or blanks, so record line numbers always point back into the
// input file.
package linesource

import (
	"io"
	"io/fs"
	"sync"

	"github.com/joeydtaylor/exametl/pkg/internal/codec"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

const (
	DefaultCommentPrefix = "#"
	DefaultBufferSize    = 64 * 1024
)

// LineSource is a types.LineSource over a file on disk or a file inside an fs.FS.
type LineSource struct {
	componentMetadata types.ComponentMetadata

	path          string
	fsys          fs.FS // nil means the local filesystem
	encoding      string
	linesToSkip   int
	commentPrefix string
	skipBlank     bool
	bufferSize    int

	loggers     []types.Logger
	loggersLock sync.Mutex

	rc       io.ReadCloser
	decoder  *codec.LineDecoder
	position int
	opened   bool
	closed   bool
}

// NewLineSource creates a source for path. Nothing is opened until Open.
func NewLineSource(path string, options ...types.Option[*LineSource]) *LineSource {
	s := &LineSource{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "LINE_SOURCE",
		},
		path:          path,
		encoding:      EncodingUTF8,
		commentPrefix: DefaultCommentPrefix,
		skipBlank:     true,
		bufferSize:    DefaultBufferSize,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// GetComponentMetadata returns the metadata.
func (s *LineSource) GetComponentMetadata() types.ComponentMetadata {
	return s.componentMetadata
}

// SetComponentMetadata sets the component's name and ID.
func (s *LineSource) SetComponentMetadata(name string, id string) {
	s.componentMetadata.Name = name
	s.componentMetadata.ID = id
}

// Path returns the resource path the source reads from.
func (s *LineSource) Path() string {
	return s.path
}
