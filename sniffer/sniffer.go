// Package sniffer infers the dialect of delimited text from a sample.
//
// Detection works on the sample alone and has no side effects. When no
// candidate delimiter is used consistently, Sniff fails with
// model.ErrDialectIndeterminate instead of guessing; callers are expected to
// fall back to a manually specified dialect.
package sniffer

import (
	"fmt"
	"strings"

	"github.com/nao1215/csvtable/domain/model"
)

// DefaultDelimiters is the candidate set used when none is given, in
// preference order.
var DefaultDelimiters = []rune{',', '\t', ';', '|', ':', ' '}

// Sniffer infers dialects. The zero value is not usable; create one with New.
type Sniffer struct {
	delimiters []rune
	headerRows int
	// complete is set when the sample holds the whole input, so its last
	// line is not truncated.
	complete bool
}

// Option configures a Sniffer.
type Option func(*Sniffer)

// WithDelimiters restricts inference to the given delimiters. Their order is
// the tie-break order. Duplicates and line breaks are ignored; an empty list
// keeps the default set. A list holding nothing usable leaves no candidate,
// and Sniff fails.
func WithDelimiters(delimiters ...rune) Option {
	return func(s *Sniffer) {
		if len(delimiters) == 0 {
			return
		}
		cleaned := []rune{}
		seen := make(map[rune]bool, len(delimiters))
		for _, d := range delimiters {
			if d == model.NoChar || d == '\r' || d == '\n' || seen[d] {
				continue
			}
			seen[d] = true
			cleaned = append(cleaned, d)
		}
		s.delimiters = cleaned
	}
}

// WithCompleteSample marks samples as holding the whole input. An
// unterminated last line then counts as a full line instead of being
// dropped as truncated.
func WithCompleteSample(complete bool) Option {
	return func(s *Sniffer) {
		s.complete = complete
	}
}

// WithHeaderRows sets how many rows after the first are compared against it
// when deciding whether the first row is a header. Values below 1 are ignored.
func WithHeaderRows(n int) Option {
	return func(s *Sniffer) {
		if n > 0 {
			s.headerRows = n
		}
	}
}

// New returns a Sniffer.
func New(opts ...Option) *Sniffer {
	s := &Sniffer{
		delimiters: DefaultDelimiters,
		headerRows: defaultHeaderRows,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delimiters returns the candidate delimiters in preference order.
func (s *Sniffer) Delimiters() []rune {
	return append([]rune(nil), s.delimiters...)
}

// Sniff infers delimiter, quoting and line terminator from sample.
func (s *Sniffer) Sniff(sample string) (model.Dialect, error) {
	if len(s.delimiters) == 0 {
		return model.Dialect{}, fmt.Errorf("%w: no usable candidate delimiter", model.ErrDialectIndeterminate)
	}
	text := []rune(strings.TrimPrefix(sample, "\ufeff"))
	if len(text) == 0 {
		return model.Dialect{}, fmt.Errorf("%w: empty sample", model.ErrDialectIndeterminate)
	}

	evidence := guessQuote(text, s.delimiters)
	quote := evidence.quote
	if quote == model.NoChar {
		quote = model.DefaultQuoteChar
	}
	escape := model.NoChar
	if evidence.escaped {
		escape = '\\'
	}

	delim, stats, ok := s.guessDelimiter(text, evidence.delimiter, quote, escape)
	if !ok {
		return model.Dialect{}, fmt.Errorf("%w: no delimiter among %q is used consistently",
			model.ErrDialectIndeterminate, string(s.delimiters))
	}
	if delim == quote {
		quote = otherQuote(quote)
	}

	d := model.NewDialect().
		WithDelimiter(delim).
		WithQuoteChar(quote).
		WithEscapeChar(escape).
		WithDoubleQuote(evidence.doubled || !evidence.escaped).
		WithSkipLeadingSpace(stats.allSpaced()).
		WithLineTerminator(lineTerminator(text))
	if err := d.Validate(); err != nil {
		return model.Dialect{}, fmt.Errorf("%w: %w", model.ErrDialectIndeterminate, err)
	}
	return d, nil
}

// Sniff infers the dialect of sample and whether its first row is a header.
// When delimiters are given, inference is restricted to them.
func Sniff(sample string, delimiters ...rune) (model.Dialect, bool, error) {
	s := New(WithDelimiters(delimiters...))
	d, err := s.Sniff(sample)
	if err != nil {
		return model.Dialect{}, false, err
	}
	return d, s.HasHeader(sample, d), nil
}

// lineTerminator returns the first line break of text, or "\r\n" when there
// is none.
func lineTerminator(text []rune) string {
	for i, c := range text {
		switch c {
		case '\n':
			return "\n"
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				return "\r\n"
			}
			return "\r"
		}
	}
	return model.DefaultLineTerminator
}

func otherQuote(q rune) rune {
	if q == '"' {
		return '\''
	}
	return '"'
}
