package documentsink_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeydtaylor/exametl/pkg/internal/codec"
	"github.com/joeydtaylor/exametl/pkg/internal/documentsink"
	"github.com/joeydtaylor/exametl/pkg/internal/internallogger"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

var sampleRecords = []types.ExamResult{
	{StudentID: "S001", CourseID: "CS101", Score: 85, Line: 1},
	{StudentID: "S002", CourseID: "CS101", Score: 91, Line: 2},
	{StudentID: "S003", StudentName: "Ann & Bo", CourseID: "MA200", Score: 77.5, Line: 3,
		Attributes: []types.Attribute{{Name: "room", Value: "B12"}}},
}

func writeDocument(t *testing.T, path string, chunkSize int, opts ...types.Option[*documentsink.DocumentSink]) string {
	t.Helper()
	ctx := context.Background()
	sink := documentsink.NewDocumentSink(path, opts...)
	if err := sink.Open(ctx); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	for i := 0; i < len(sampleRecords); i += chunkSize {
		end := i + chunkSize
		if end > len(sampleRecords) {
			end = len(sampleRecords)
		}
		if err := sink.Write(ctx, types.Chunk{Index: i / chunkSize, Items: sampleRecords[i:end]}); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	return sink.Path()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	return string(b)
}

func TestDocumentSink_WritesFramedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.xml")
	got := readFile(t, writeDocument(t, path, 2))

	want := "<UniversityExamResultList>" +
		"<ExamResult><studentId>S001</studentId><courseId>CS101</courseId><score>85</score></ExamResult>" +
		"<ExamResult><studentId>S002</studentId><courseId>CS101</courseId><score>91</score></ExamResult>" +
		"<ExamResult><studentId>S003</studentId><studentName>Ann &amp; Bo</studentName><courseId>MA200</courseId>" +
		"<score>77.5</score><attribute name=\"room\">B12</attribute></ExamResult>" +
		"</UniversityExamResultList>"
	if got != want {
		t.Fatalf("unexpected document:\nwant %s\ngot  %s", want, got)
	}
}

func TestDocumentSink_ChunkSizeDoesNotChangeOutput(t *testing.T) {
	dir := t.TempDir()
	base := readFile(t, writeDocument(t, filepath.Join(dir, "1.xml"), 1))
	for _, size := range []int{2, 3, 10} {
		got := readFile(t, writeDocument(t, filepath.Join(dir, "n.xml"), size))
		if got != base {
			t.Fatalf("chunk size %d changed output:\n%s\nvs\n%s", size, got, base)
		}
	}
}

func TestDocumentSink_IndentAndCustomTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")
	got := readFile(t, writeDocument(t, path, 1,
		documentsink.WithRootTag("Results"),
		documentsink.WithRecordTag("Result"),
		documentsink.WithIndent("  "),
	))
	if !strings.HasPrefix(got, "<Results>\n  <Result>\n    <studentId>S001</studentId>") {
		t.Fatalf("unexpected indented prefix:\n%s", got)
	}
	if !strings.HasSuffix(got, "</Result>\n</Results>") {
		t.Fatalf("unexpected indented suffix:\n%s", got)
	}
	if strings.Count(got, "<Results>") != 1 || strings.Count(got, "</Results>") != 1 {
		t.Fatalf("framing tags must appear once each:\n%s", got)
	}
}

func TestDocumentSink_EmptyDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty.xml")
	sink := documentsink.NewDocumentSink(path)
	if err := sink.Open(ctx); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if got := readFile(t, path); got != "<UniversityExamResultList></UniversityExamResultList>" {
		t.Fatalf("unexpected empty document %q", got)
	}
}

func TestDocumentSink_Lifecycle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.xml")
	sink := documentsink.NewDocumentSink(path)

	if err := sink.Write(ctx, types.Chunk{Items: sampleRecords[:1]}); !errors.Is(err, types.ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen before Open, got %v", err)
	}
	if err := sink.Close(); !errors.Is(err, types.ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen closing an unopened sink, got %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("Release before Open should be a no-op, got %v", err)
	}
	if err := sink.Open(ctx); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := sink.Open(ctx); !errors.Is(err, types.ErrAlreadyOpen) {
		t.Fatalf("expected ErrAlreadyOpen, got %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("Release after Close should be a no-op, got %v", err)
	}
	if err := sink.Write(ctx, types.Chunk{Items: sampleRecords[:1]}); !errors.Is(err, types.ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen after Close, got %v", err)
	}
	if got := readFile(t, path); strings.Count(got, "</UniversityExamResultList>") != 1 {
		t.Fatalf("root end tag must be written once, got %q", got)
	}
}

func TestDocumentSink_ReleaseLeavesDocumentUnfinalized(t *testing.T) {
	var logs bytes.Buffer
	logger := internallogger.NewLogger(internallogger.LoggerWithWriter(&logs), internallogger.LoggerWithLevel("debug"))

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.xml")
	sink := documentsink.NewDocumentSink(path, documentsink.WithLogger(logger))
	if err := sink.Open(ctx); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := sink.Write(ctx, types.Chunk{Items: sampleRecords[:1]}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("Release error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close after Release should be a no-op, got %v", err)
	}

	got := readFile(t, path)
	if !strings.HasPrefix(got, "<UniversityExamResultList><ExamResult>") {
		t.Fatalf("unexpected content %q", got)
	}
	if strings.Contains(got, "</UniversityExamResultList>") {
		t.Fatalf("released document must not contain the root end tag: %q", got)
	}
	if sink.RecordsWritten() != 1 {
		t.Fatalf("expected 1 record written, got %d", sink.RecordsWritten())
	}
	if !strings.Contains(logs.String(), `"event":"Release"`) {
		t.Fatalf("expected a Release log entry, got %s", logs.String())
	}
}

func TestDocumentSink_Compression(t *testing.T) {
	dir := t.TempDir()
	plain := readFile(t, writeDocument(t, filepath.Join(dir, "plain.xml"), 1))

	for _, name := range []string{codec.CompressionGzip, codec.CompressionZstd, codec.CompressionSnappy, codec.CompressionBrotli, codec.CompressionLZ4} {
		t.Run(name, func(t *testing.T) {
			path := writeDocument(t, filepath.Join(dir, name+".xml"), 2, documentsink.WithCompression(name))
			if !strings.HasSuffix(path, ".xml"+codec.CompressionExtension(name)) {
				t.Fatalf("expected compression suffix on %s", path)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer f.Close()
			r, err := codec.NewDecompressedReader(f, name)
			if err != nil {
				t.Fatalf("NewDecompressedReader: %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(got) != plain {
				t.Fatalf("decompressed document differs from plain output")
			}
		})
	}
}

func TestDocumentSink_UnsupportedCompression(t *testing.T) {
	sink := documentsink.NewDocumentSink(filepath.Join(t.TempDir(), "x.xml"), documentsink.WithCompression("rar"))
	var ioErr *types.IOError
	if err := sink.Open(context.Background()); !errors.As(err, &ioErr) {
		t.Fatalf("expected *types.IOError, got %v", err)
	}
}

type failingWriter struct {
	bytes.Buffer
	failAfter int
	writes    int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.failAfter {
		return 0, errors.New("disk full")
	}
	return w.Buffer.Write(p)
}

func (w *failingWriter) Close() error { return nil }

func TestDocumentSink_WriteFailure(t *testing.T) {
	ctx := context.Background()
	out := &failingWriter{failAfter: 1}
	sink := documentsink.NewDocumentSink("mem.xml", documentsink.WithOpener(func(string) (io.WriteCloser, error) {
		return out, nil
	}))
	if err := sink.Open(ctx); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	err := sink.Write(ctx, types.Chunk{Items: sampleRecords})
	var ioErr *types.IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "write" {
		t.Fatalf("expected write IOError, got %v", err)
	}
	if out.String() != "<UniversityExamResultList>" {
		t.Fatalf("no part of a failed chunk may reach the output, got %q", out.String())
	}
	if err := sink.Close(); err == nil {
		t.Fatalf("Close after a failed write must not finalize the document")
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("Release error: %v", err)
	}
}

func TestDocumentSink_OpenFailure(t *testing.T) {
	sink := documentsink.NewDocumentSink("x.xml", documentsink.WithOpener(func(string) (io.WriteCloser, error) {
		return nil, os.ErrPermission
	}))
	err := sink.Open(context.Background())
	var ioErr *types.IOError
	if !errors.As(err, &ioErr) || !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected open IOError wrapping ErrPermission, got %v", err)
	}
}

type breakableWriter struct {
	bytes.Buffer
	broken   bool
	closeErr error
}

var (
	errDiskFull    = errors.New("disk full")
	errFsyncFailed = errors.New("fsync failed")
)

func (w *breakableWriter) Write(p []byte) (int, error) {
	if w.broken {
		return 0, errDiskFull
	}
	return w.Buffer.Write(p)
}

func (w *breakableWriter) Close() error { return w.closeErr }

func TestDocumentSink_ReleaseReportsCompressorAndOutputErrors(t *testing.T) {
	ctx := context.Background()
	out := &breakableWriter{}
	sink := documentsink.NewDocumentSink("mem.xml",
		documentsink.WithCompression(codec.CompressionGzip),
		documentsink.WithOpener(func(string) (io.WriteCloser, error) { return out, nil }),
	)
	if err := sink.Open(ctx); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := sink.Write(ctx, types.Chunk{Items: sampleRecords[:1]}); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out.broken = true
	out.closeErr = errFsyncFailed

	err := sink.Release()
	var ioErr *types.IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "close" {
		t.Fatalf("expected close IOError, got %v", err)
	}
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("compressor close error must be reported, got %v", err)
	}
	if !errors.Is(err, errFsyncFailed) {
		t.Fatalf("output close error must be reported, got %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("second Release should be a no-op, got %v", err)
	}
}
