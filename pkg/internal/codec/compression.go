package codec

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Compression names accepted by NewCompressedWriter.
const (
	CompressionNone   = "none"
	CompressionGzip   = "gzip"
	CompressionZstd   = "zstd"
	CompressionSnappy = "snappy"
	CompressionBrotli = "brotli"
	CompressionLZ4    = "lz4"
)

// FlushWriteCloser is a writer that can push buffered bytes downstream before Close.
type FlushWriteCloser interface {
	io.WriteCloser
	Flush() error
}

// CompressionExtension returns the conventional file suffix for a compression name.
func CompressionExtension(name string) string {
	switch normalizeCompression(name) {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	case CompressionSnappy:
		return ".sz"
	case CompressionBrotli:
		return ".br"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ValidCompression reports whether name is a supported compression.
func ValidCompression(name string) bool {
	switch normalizeCompression(name) {
	case CompressionNone, CompressionGzip, CompressionZstd, CompressionSnappy, CompressionBrotli, CompressionLZ4:
		return true
	default:
		return false
	}
}

// NewCompressedWriter wraps w with the named compression. Closing the result finishes the
// compressed stream but never closes w.
func NewCompressedWriter(w io.Writer, name string) (FlushWriteCloser, error) {
	switch normalizeCompression(name) {
	case CompressionNone:
		return nopFlushCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return enc, nil
	case CompressionSnappy:
		return snappy.NewBufferedWriter(w), nil
	case CompressionBrotli:
		return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", name)
	}
}

// NewDecompressedReader is the read-side counterpart of NewCompressedWriter.
func NewDecompressedReader(r io.Reader, name string) (io.Reader, error) {
	switch normalizeCompression(name) {
	case CompressionNone:
		return r, nil
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionSnappy:
		return snappy.NewReader(r), nil
	case CompressionBrotli:
		return brotli.NewReader(r), nil
	case CompressionLZ4:
		return lz4.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", name)
	}
}

func normalizeCompression(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return CompressionNone
	}
	return n
}

type nopFlushCloser struct {
	io.Writer
}

func (nopFlushCloser) Flush() error { return nil }
func (nopFlushCloser) Close() error { return nil }
