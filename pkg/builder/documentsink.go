package builder

import (
	"github.com/joeydtaylor/exametl/pkg/internal/codec"
	"github.com/joeydtaylor/exametl/pkg/internal/documentsink"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// Output compressions.
const (
	CompressionNone   = codec.CompressionNone
	CompressionGzip   = codec.CompressionGzip
	CompressionZstd   = codec.CompressionZstd
	CompressionSnappy = codec.CompressionSnappy
	CompressionBrotli = codec.CompressionBrotli
	CompressionLZ4    = codec.CompressionLZ4
)

type DocumentOpener = documentsink.Opener

// NewDocumentSink creates the XML document writer for path.
func NewDocumentSink(path string, options ...types.Option[*documentsink.DocumentSink]) *documentsink.DocumentSink {
	return documentsink.NewDocumentSink(path, options...)
}

// DocumentSinkWithRootTag overrides the root element name.
func DocumentSinkWithRootTag(tag string) types.Option[*documentsink.DocumentSink] {
	return documentsink.WithRootTag(tag)
}

// DocumentSinkWithRecordTag overrides the per-record element name.
func DocumentSinkWithRecordTag(tag string) types.Option[*documentsink.DocumentSink] {
	return documentsink.WithRecordTag(tag)
}

// DocumentSinkWithIndent pretty-prints the document.
func DocumentSinkWithIndent(indent string) types.Option[*documentsink.DocumentSink] {
	return documentsink.WithIndent(indent)
}

// DocumentSinkWithCompression compresses the output stream.
func DocumentSinkWithCompression(name string) types.Option[*documentsink.DocumentSink] {
	return documentsink.WithCompression(name)
}

// DocumentSinkWithOpener replaces file creation.
func DocumentSinkWithOpener(opener DocumentOpener) types.Option[*documentsink.DocumentSink] {
	return documentsink.WithOpener(opener)
}

// DocumentSinkWithLogger attaches loggers.
func DocumentSinkWithLogger(l ...types.Logger) types.Option[*documentsink.DocumentSink] {
	return documentsink.WithLogger(l...)
}

// DocumentSinkWithComponentMetadata overrides name and ID.
func DocumentSinkWithComponentMetadata(name string, id string) types.Option[*documentsink.DocumentSink] {
	return documentsink.WithComponentMetadata(name, id)
}
