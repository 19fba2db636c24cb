package types

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyOpen is returned when a source or sink is opened twice within one run.
	ErrAlreadyOpen = errors.New("resource already open")
	// ErrNotOpen is returned when a source or sink is used before Open or after Close.
	ErrNotOpen = errors.New("resource not open")
)

// IOError reports an input or output resource that could not be read or written.
type IOError struct {
	Op   string // "open", "read", "write", "flush", "close", "publish"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("io %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("io %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseFailure classifies why a line could not be mapped onto a record.
type ParseFailure int

const (
	FieldCountMismatch ParseFailure = iota + 1
	TypeCoercion
)

func (f ParseFailure) String() string {
	switch f {
	case FieldCountMismatch:
		return "field count mismatch"
	case TypeCoercion:
		return "type coercion failure"
	default:
		return "unknown parse failure"
	}
}

// ParseError reports a line that does not match the expected field layout.
type ParseError struct {
	Line     int
	Reason   ParseFailure
	Expected int    // expected field count, set for FieldCountMismatch
	Got      int    // actual field count, set for FieldCountMismatch
	Field    string // offending column, set for TypeCoercion
	Err      error
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case FieldCountMismatch:
		return fmt.Sprintf("parse line %d: %s: expected %d fields, got %d", e.Line, e.Reason, e.Expected, e.Got)
	case TypeCoercion:
		return fmt.Sprintf("parse line %d: %s in field %q: %v", e.Line, e.Reason, e.Field, e.Err)
	default:
		return fmt.Sprintf("parse line %d: %s", e.Line, e.Reason)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransformError reports a record that violates a business rule.
type TransformError struct {
	Line int
	Rule string
	Err  error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform line %d: rule %s: %v", e.Line, e.Rule, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }
