package recordparser

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// WithDelimiter sets the field separator.
func WithDelimiter(d rune) types.Option[*RecordParser] {
	return func(p *RecordParser) {
		p.delimiter = d
	}
}

// WithQuote sets the quote rune. Zero disables quoting.
func WithQuote(q rune) types.Option[*RecordParser] {
	return func(p *RecordParser) {
		p.quote = q
	}
}

// WithColumns sets the column layout, in file order.
func WithColumns(names ...string) types.Option[*RecordParser] {
	return func(p *RecordParser) {
		p.columnNames = append([]string(nil), names...)
	}
}
