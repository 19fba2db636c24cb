package codec_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/joeydtaylor/exametl/pkg/internal/codec"
)

type sample struct {
	ID    string  `xml:"id"`
	Score float64 `xml:"score"`
}

func TestDelimitedTokenizer(t *testing.T) {
	tok := codec.NewDelimitedTokenizer('|', '"')

	cases := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "S001|CS101|85", []string{"S001", "CS101", "85"}},
		{"empty line", "", []string{""}},
		{"trailing delimiter", "a|b|", []string{"a", "b", ""}},
		{"quoted delimiter", `S001|"Smith | Jones"|85`, []string{"S001", "Smith | Jones", "85"}},
		{"doubled quote", `S001|"say ""hi"""|85`, []string{"S001", `say "hi"`, "85"}},
		{"quote mid field is literal", `S0"01|CS101`, []string{`S0"01`, "CS101"}},
		{"unterminated quote", `S001|"open|85`, []string{"S001", "open|85"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tok.Tokenize(tc.line)); diff != "" {
				t.Fatalf("Tokenize(%q) mismatch (-want +got):\n%s", tc.line, diff)
			}
		})
	}
}

func TestDelimitedTokenizer_NoQuote(t *testing.T) {
	tok := codec.NewDelimitedTokenizer(',', 0)
	got := tok.Tokenize(`"a,b",c`)
	want := []string{`"a`, `b"`, "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLineDecoder(t *testing.T) {
	dec := codec.NewLineDecoder(strings.NewReader("one\r\ntwo\n\nthree"), 16)

	var got []string
	for {
		line, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		got = append(got, line)
	}

	want := []string{"one", "two", "", "three"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLineDecoder_Empty(t *testing.T) {
	dec := codec.NewLineDecoder(strings.NewReader(""), 0)
	if _, err := dec.Decode(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestXMLDocumentEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := codec.NewXMLDocumentEncoder[sample](&buf, "Results", "Result", "")

	if err := enc.Begin(); err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if buf.String() != "<Results>" {
		t.Fatalf("expected root start after Begin, got %q", buf.String())
	}
	for _, s := range []sample{{ID: "a&b", Score: 85}, {ID: "c", Score: 91.5}} {
		if err := enc.Encode(s); err != nil {
			t.Fatalf("Encode error: %v", err)
		}
	}
	if err := enc.End(); err != nil {
		t.Fatalf("End error: %v", err)
	}

	want := "<Results>" +
		"<Result><id>a&amp;b</id><score>85</score></Result>" +
		"<Result><id>c</id><score>91.5</score></Result>" +
		"</Results>"
	if buf.String() != want {
		t.Fatalf("unexpected document:\nwant %s\ngot  %s", want, buf.String())
	}
}

func TestXMLDocumentEncoder_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	enc := codec.NewXMLDocumentEncoder[sample](&buf, "Results", "Result", "")
	if err := enc.Begin(); err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if err := enc.End(); err != nil {
		t.Fatalf("End error: %v", err)
	}
	if buf.String() != "<Results></Results>" {
		t.Fatalf("unexpected empty document %q", buf.String())
	}
}

func TestXMLDocumentEncoder_RoundTripChild(t *testing.T) {
	var buf bytes.Buffer
	enc := codec.NewXMLDocumentEncoder[sample](&buf, "Results", "Result", "")
	if err := enc.Encode(sample{ID: "x", Score: 7}); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	got, err := codec.NewXMLDecoder[sample]().Decode(&buf)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != (sample{ID: "x", Score: 7}) {
		t.Fatalf("unexpected decoded value %+v", got)
	}
}

func TestCompressedWriter_RoundTrip(t *testing.T) {
	payload := strings.Repeat("<ExamResult><studentId>S001</studentId></ExamResult>", 50)

	for _, name := range []string{"", "none", "gzip", "zstd", "snappy", "brotli", "lz4"} {
		t.Run("compression="+name, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := codec.NewCompressedWriter(&buf, name)
			if err != nil {
				t.Fatalf("NewCompressedWriter error: %v", err)
			}
			if _, err := io.WriteString(w, payload[:100]); err != nil {
				t.Fatalf("write error: %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("flush error: %v", err)
			}
			if _, err := io.WriteString(w, payload[100:]); err != nil {
				t.Fatalf("write error: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("close error: %v", err)
			}

			r, err := codec.NewDecompressedReader(&buf, name)
			if err != nil {
				t.Fatalf("NewDecompressedReader error: %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read error: %v", err)
			}
			if string(got) != payload {
				t.Fatalf("round trip mismatch for %q", name)
			}
		})
	}
}

func TestCompressionHelpers(t *testing.T) {
	if _, err := codec.NewCompressedWriter(io.Discard, "rar"); err == nil {
		t.Fatalf("expected unsupported compression error")
	}
	if codec.ValidCompression("rar") {
		t.Fatalf("rar should not be valid")
	}
	if !codec.ValidCompression("ZSTD") {
		t.Fatalf("compression names should be case-insensitive")
	}
	if got := codec.CompressionExtension("gzip"); got != ".gz" {
		t.Fatalf("expected .gz, got %q", got)
	}
	if got := codec.CompressionExtension(""); got != "" {
		t.Fatalf("expected no extension for none, got %q", got)
	}
}
