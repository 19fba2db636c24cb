package builder

import (
	"github.com/joeydtaylor/exametl/pkg/internal/recordparser"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// Canonical column names.
const (
	ColumnStudentID   = recordparser.ColumnStudentID
	ColumnCourseID    = recordparser.ColumnCourseID
	ColumnScore       = recordparser.ColumnScore
	ColumnStudentName = recordparser.ColumnStudentName
	ColumnExamDate    = recordparser.ColumnExamDate
)

// NewRecordParser creates a parser for the configured column layout.
func NewRecordParser(options ...types.Option[*recordparser.RecordParser]) (*recordparser.RecordParser, error) {
	return recordparser.NewRecordParser(options...)
}

// RecordParserWithDelimiter sets the field separator.
func RecordParserWithDelimiter(d rune) types.Option[*recordparser.RecordParser] {
	return recordparser.WithDelimiter(d)
}

// RecordParserWithQuote sets the quote rune. Zero disables quoting.
func RecordParserWithQuote(q rune) types.Option[*recordparser.RecordParser] {
	return recordparser.WithQuote(q)
}

// RecordParserWithColumns sets the column layout in file order.
func RecordParserWithColumns(names ...string) types.Option[*recordparser.RecordParser] {
	return recordparser.WithColumns(names...)
}
