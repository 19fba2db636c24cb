package codec

import (
	"bufio"
	"io"
	"strings"
)

// LineDecoder reads one line at a time from a stream, holding at most one line in memory
// beyond the bufio buffer. Line terminators ("\n" or "\r\n") are stripped.
type LineDecoder struct {
	r *bufio.Reader
}

// NewLineDecoder wraps r with a buffered line reader.
func NewLineDecoder(r io.Reader, bufSize int) *LineDecoder {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	return &LineDecoder{r: bufio.NewReaderSize(r, bufSize)}
}

// Decode returns the next line, or io.EOF when the stream is exhausted. A final line
// without a terminator is returned before io.EOF.
func (d *LineDecoder) Decode() (string, error) {
	line, err := d.r.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
		return strings.TrimSuffix(line, "\r"), nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
