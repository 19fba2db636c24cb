package linesource

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	EncodingUTF8        = "utf-8"
	EncodingISO88591    = "iso-8859-1"
	EncodingISO885915   = "iso-8859-15"
	EncodingWindows1252 = "windows-1252"
)

// ValidEncoding reports whether name is an accepted input charset.
func ValidEncoding(name string) bool {
	_, err := charmapFor(name)
	return err == nil
}

// decodingReader wraps r so that it yields UTF-8 for the given charset.
func decodingReader(r io.Reader, name string) (io.Reader, error) {
	cm, err := charmapFor(name)
	if err != nil {
		return nil, err
	}
	if cm == nil {
		return r, nil
	}
	return cm.NewDecoder().Reader(r), nil
}

func charmapFor(name string) (*charmap.Charmap, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return nil, nil
	case EncodingISO88591, "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	case EncodingISO885915, "latin9":
		return charmap.ISO8859_15, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
