package linesource

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joeydtaylor/exametl/pkg/internal/codec"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

const utf8BOM = "\ufeff"

// Open acquires the resource. A source can be opened once per run.
func (s *LineSource) Open(ctx context.Context) error {
	if s.opened {
		return types.ErrAlreadyOpen
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		rc  io.ReadCloser
		err error
	)
	if s.fsys != nil {
		rc, err = s.fsys.Open(s.path)
	} else {
		rc, err = os.Open(s.path)
	}
	if err != nil {
		s.NotifyLoggers(types.ErrorLevel, "Open failed",
			"component", s.componentMetadata,
			"event", "Open",
			"result", "FAILURE",
			"path", s.path,
			"error", err,
		)
		return &types.IOError{Op: "open", Path: s.path, Err: err}
	}

	r, err := decodingReader(rc, s.encoding)
	if err != nil {
		_ = rc.Close()
		return &types.IOError{Op: "open", Path: s.path, Err: err}
	}

	s.rc = rc
	s.decoder = codec.NewLineDecoder(r, s.bufferSize)
	s.position = 0
	s.opened = true

	s.NotifyLoggers(types.DebugLevel, "Open",
		"component", s.componentMetadata,
		"event", "Open",
		"result", "SUCCESS",
		"path", s.path,
		"encoding", s.encoding,
	)
	return nil
}

// Next returns the next data line, or io.EOF once the resource is exhausted.
// Header, comment and blank lines are consumed without being returned.
func (s *LineSource) Next(ctx context.Context) (types.RawLine, error) {
	if !s.opened || s.closed {
		return types.RawLine{}, types.ErrNotOpen
	}

	for {
		if err := ctx.Err(); err != nil {
			return types.RawLine{}, err
		}

		text, err := s.decoder.Decode()
		if errors.Is(err, io.EOF) {
			return types.RawLine{}, io.EOF
		}
		if err != nil {
			s.NotifyLoggers(types.ErrorLevel, "Read failed",
				"component", s.componentMetadata,
				"event", "Next",
				"result", "FAILURE",
				"path", s.path,
				"line", s.position+1,
				"error", err,
			)
			return types.RawLine{}, &types.IOError{Op: "read", Path: s.path, Err: err}
		}

		s.position++
		if s.position == 1 {
			text = strings.TrimPrefix(text, utf8BOM)
		}
		if s.skip(text) {
			continue
		}
		return types.RawLine{Number: s.position, Text: text}, nil
	}
}

func (s *LineSource) skip(text string) bool {
	if s.position <= s.linesToSkip {
		return true
	}
	if s.skipBlank && strings.TrimSpace(text) == "" {
		return true
	}
	return s.commentPrefix != "" && strings.HasPrefix(text, s.commentPrefix)
}

// Position returns the number of physical lines consumed so far.
func (s *LineSource) Position() int {
	return s.position
}

// Close releases the resource. It is safe to call repeatedly, and before Open.
func (s *LineSource) Close() error {
	if s.closed || s.rc == nil {
		s.closed = s.opened
		return nil
	}
	s.closed = true

	err := s.rc.Close()
	s.rc = nil
	s.decoder = nil
	if err != nil && !errors.Is(err, fs.ErrClosed) {
		return &types.IOError{Op: "close", Path: s.path, Err: err}
	}

	s.NotifyLoggers(types.DebugLevel, "Close",
		"component", s.componentMetadata,
		"event", "Close",
		"result", "SUCCESS",
		"path", s.path,
		"linesConsumed", s.position,
	)
	return nil
}
