package documentsink

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joeydtaylor/exametl/pkg/internal/codec"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// Open creates the output and writes the root start tag.
func (s *DocumentSink) Open(ctx context.Context) error {
	if s.state != stateNew {
		return types.ErrAlreadyOpen
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !codec.ValidCompression(s.compression) {
		return &types.IOError{Op: "open", Path: s.path, Err: fmt.Errorf("unsupported compression %q", s.compression)}
	}
	if ext := codec.CompressionExtension(s.compression); ext != "" && !strings.HasSuffix(s.path, ext) {
		s.path += ext
	}

	out, err := s.opener(s.path)
	if err != nil {
		s.notifyFailure("Open", err)
		return &types.IOError{Op: "open", Path: s.path, Err: err}
	}
	comp, err := codec.NewCompressedWriter(out, s.compression)
	if err != nil {
		_ = out.Close()
		return &types.IOError{Op: "open", Path: s.path, Err: err}
	}

	s.out = out
	s.comp = comp
	s.enc = codec.NewXMLDocumentEncoder[types.ExamResult](&s.pending, s.rootTag, s.recordTag, s.indent)
	s.state = stateOpen

	if err := s.enc.Begin(); err != nil {
		s.state = stateFailed
		return fmt.Errorf("documentsink: begin document: %w", err)
	}
	if err := s.commit(); err != nil {
		s.state = stateFailed
		return err
	}

	s.NotifyLoggers(types.InfoLevel, "Open",
		"component", s.componentMetadata,
		"event", "Open",
		"result", "SUCCESS",
		"path", s.path,
		"rootTag", s.rootTag,
		"compression", s.compression,
	)
	return nil
}

// Write encodes every record of chunk, then appends them to the output as one unit.
func (s *DocumentSink) Write(ctx context.Context, chunk types.Chunk) error {
	if s.state != stateOpen {
		return types.ErrNotOpen
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, rec := range chunk.Items {
		if err := s.enc.Encode(rec); err != nil {
			s.pending.Reset()
			s.state = stateFailed
			s.notifyFailure("Write", err, "chunk", chunk.Index, "line", rec.Line)
			return fmt.Errorf("documentsink: encode record at line %d: %w", rec.Line, err)
		}
	}
	if err := s.commit(); err != nil {
		s.state = stateFailed
		return err
	}

	s.recordsWritten += chunk.Len()
	s.chunks++
	s.NotifyLoggers(types.DebugLevel, "Write",
		"component", s.componentMetadata,
		"event", "Write",
		"result", "SUCCESS",
		"chunk", chunk.Index,
		"records", chunk.Len(),
		"recordsWritten", s.recordsWritten,
	)
	return nil
}

// Close writes the root end tag, flushes and closes the output. Repeated calls are no-ops.
func (s *DocumentSink) Close() error {
	switch s.state {
	case stateClosed, stateReleased:
		return nil
	case stateNew:
		return types.ErrNotOpen
	case stateFailed:
		return fmt.Errorf("documentsink: cannot finalize after a failed write: %w", types.ErrNotOpen)
	}

	var firstErr error
	if err := s.enc.End(); err != nil {
		firstErr = fmt.Errorf("documentsink: end document: %w", err)
	}
	if firstErr == nil {
		firstErr = s.commit()
	}
	if err := s.comp.Close(); err != nil && firstErr == nil {
		firstErr = &types.IOError{Op: "close", Path: s.path, Err: err}
	}
	if err := s.out.Close(); err != nil && firstErr == nil {
		firstErr = &types.IOError{Op: "close", Path: s.path, Err: err}
	}
	s.state = stateClosed

	if firstErr != nil {
		s.notifyFailure("Close", firstErr)
		return firstErr
	}
	s.NotifyLoggers(types.InfoLevel, "Close",
		"component", s.componentMetadata,
		"event", "Close",
		"result", "SUCCESS",
		"path", s.path,
		"records", s.recordsWritten,
		"chunks", s.chunks,
		"bytes", s.bytesWritten,
	)
	return nil
}

// Release closes the output without writing the root end tag. The document left behind
// is incomplete. It is a no-op after Close and before Open.
func (s *DocumentSink) Release() error {
	if s.state != stateOpen && s.state != stateFailed {
		return nil
	}
	s.pending.Reset()
	err := errors.Join(s.comp.Close(), s.out.Close())
	s.state = stateReleased

	if err != nil {
		ioErr := &types.IOError{Op: "close", Path: s.path, Err: err}
		s.notifyFailure("Release", ioErr, "records", s.recordsWritten, "finalized", false)
		return ioErr
	}
	s.NotifyLoggers(types.WarnLevel, "Release",
		"component", s.componentMetadata,
		"event", "Release",
		"result", "SUCCESS",
		"path", s.path,
		"records", s.recordsWritten,
		"finalized", false,
	)
	return nil
}

// commit moves pending bytes to the output and flushes them downstream.
func (s *DocumentSink) commit() error {
	n, err := s.comp.Write(s.pending.Bytes())
	s.bytesWritten += int64(n)
	s.pending.Reset()
	if err != nil {
		s.notifyFailure("Commit", err)
		return &types.IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := s.comp.Flush(); err != nil {
		s.notifyFailure("Commit", err)
		return &types.IOError{Op: "flush", Path: s.path, Err: err}
	}
	return nil
}
