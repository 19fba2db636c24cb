// Package recordparser maps delimited text lines onto exam result records.
package recordparser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/joeydtaylor/exametl/pkg/internal/codec"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

// Known column names.
const (
	ColumnStudentID   = "studentId"
	ColumnCourseID    = "courseId"
	ColumnScore       = "score"
	ColumnStudentName = "studentName"
	ColumnExamDate    = "examDate"

	DateLayout = "2006-01-02"
)

var (
	DefaultColumns = []string{ColumnStudentID, ColumnCourseID, ColumnScore}

	requiredColumns = []string{ColumnStudentID, ColumnCourseID, ColumnScore}
	knownColumns    = []string{ColumnStudentID, ColumnCourseID, ColumnScore, ColumnStudentName, ColumnExamDate}

	errNonFinite = errors.New("score is not a finite number")
)

type columnKind int

const (
	kindAttribute columnKind = iota
	kindStudentID
	kindCourseID
	kindScore
	kindStudentName
	kindExamDate
)

type column struct {
	name string
	kind columnKind
}

// RecordParser is a stateless types.RecordParser for one fixed column layout.
type RecordParser struct {
	delimiter   rune
	quote       rune
	columnNames []string
	columns     []column
	tokenizer   *codec.DelimitedTokenizer
}

// NewRecordParser builds a parser. The layout must contain each required column exactly once.
func NewRecordParser(options ...types.Option[*RecordParser]) (*RecordParser, error) {
	p := &RecordParser{
		delimiter:   '|',
		quote:       '"',
		columnNames: DefaultColumns,
	}
	for _, opt := range options {
		opt(p)
	}
	if err := p.setColumns(p.columnNames); err != nil {
		return nil, err
	}
	if p.delimiter == 0 {
		return nil, errors.New("recordparser: delimiter must be set")
	}
	if p.delimiter == p.quote {
		return nil, fmt.Errorf("recordparser: delimiter and quote must differ (%q)", p.delimiter)
	}
	p.tokenizer = codec.NewDelimitedTokenizer(p.delimiter, p.quote)
	return p, nil
}

// Columns returns the configured column names in order.
func (p *RecordParser) Columns() []string {
	out := make([]string, len(p.columns))
	for i, c := range p.columns {
		out[i] = c.name
	}
	return out
}

// Parse maps one line onto an ExamResult.
func (p *RecordParser) Parse(line types.RawLine) (types.ExamResult, error) {
	fields := p.tokenizer.Tokenize(line.Text)
	if len(fields) != len(p.columns) {
		return types.ExamResult{}, &types.ParseError{
			Line:     line.Number,
			Reason:   types.FieldCountMismatch,
			Expected: len(p.columns),
			Got:      len(fields),
		}
	}

	rec := types.ExamResult{Line: line.Number}
	for i, col := range p.columns {
		value := fields[i]
		switch col.kind {
		case kindStudentID:
			rec.StudentID = value
		case kindCourseID:
			rec.CourseID = value
		case kindStudentName:
			rec.StudentName = value
		case kindScore:
			score, err := parseScore(value)
			if err != nil {
				return types.ExamResult{}, coercionError(line.Number, col.name, err)
			}
			rec.Score = score
		case kindExamDate:
			date, err := parseDate(value)
			if err != nil {
				return types.ExamResult{}, coercionError(line.Number, col.name, err)
			}
			rec.ExamDate = date
		default:
			rec.Attributes = append(rec.Attributes, types.Attribute{Name: col.name, Value: value})
		}
	}
	return rec, nil
}

func parseScore(v string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, errNonFinite
	}
	return score, nil
}

func parseDate(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

func coercionError(line int, field string, err error) *types.ParseError {
	return &types.ParseError{
		Line:   line,
		Reason: types.TypeCoercion,
		Field:  field,
		Err:    err,
	}
}

func (p *RecordParser) setColumns(names []string) error {
	cols := make([]column, 0, len(names))
	canon := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return errors.New("recordparser: empty column name")
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("recordparser: duplicate column %q", name)
		}
		seen[key] = true
		cols = append(cols, column{name: canonicalName(name), kind: kindOf(name)})
		canon = append(canon, canonicalName(name))
	}
	for _, req := range requiredColumns {
		if !utils.Contains(canon, req) {
			return fmt.Errorf("recordparser: missing required column %q", req)
		}
	}
	p.columns = cols
	return nil
}

func canonicalName(name string) string {
	for _, k := range knownColumns {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	return name
}

func kindOf(name string) columnKind {
	switch canonicalName(name) {
	case ColumnStudentID:
		return kindStudentID
	case ColumnCourseID:
		return kindCourseID
	case ColumnScore:
		return kindScore
	case ColumnStudentName:
		return kindStudentName
	case ColumnExamDate:
		return kindExamDate
	default:
		return kindAttribute
	}
}
