package codec

import "strings"

// DelimitedTokenizer splits a line into fields on a single delimiter rune.
//
// When Quote is non-zero a field that starts with the quote rune may contain the
// delimiter; a doubled quote inside a quoted field yields one literal quote. A quote
// that is never closed consumes the rest of the line.
type DelimitedTokenizer struct {
	Delimiter rune
	Quote     rune
}

// NewDelimitedTokenizer returns a tokenizer for the given delimiter and quote rune.
func NewDelimitedTokenizer(delimiter, quote rune) *DelimitedTokenizer {
	return &DelimitedTokenizer{Delimiter: delimiter, Quote: quote}
}

// Tokenize returns the fields of line. An empty line yields a single empty field.
func (t *DelimitedTokenizer) Tokenize(line string) []string {
	if t.Quote == 0 || !strings.ContainsRune(line, t.Quote) {
		return strings.Split(line, string(t.Delimiter))
	}

	var (
		fields  []string
		field   strings.Builder
		inQuote bool
		atStart = true
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote && r == t.Quote:
			if i+1 < len(runes) && runes[i+1] == t.Quote {
				field.WriteRune(r)
				i++
				continue
			}
			inQuote = false
		case inQuote:
			field.WriteRune(r)
		case r == t.Quote && atStart:
			inQuote = true
			atStart = false
		case r == t.Delimiter:
			fields = append(fields, field.String())
			field.Reset()
			atStart = true
		default:
			field.WriteRune(r)
			atStart = false
		}
	}
	return append(fields, field.String())
}
