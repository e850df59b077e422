package model

import (
	"fmt"
	"strings"
)

// NoChar marks an absent quote or escape character.
const NoChar rune = 0

// Default dialect characters
const (
	// DefaultDelimiter is the field delimiter of the default dialect
	DefaultDelimiter = ','
	// DefaultQuoteChar is the quote character of the default dialect
	DefaultQuoteChar = '"'
	// DefaultLineTerminator is the record terminator of the default dialect
	DefaultLineTerminator = "\r\n"
)

// QuotingPolicy governs when field values are wrapped in quote characters.
type QuotingPolicy int

const (
	// QuoteMinimal quotes only fields containing special characters
	QuoteMinimal QuotingPolicy = iota
	// QuoteAll quotes every field
	QuoteAll
	// QuoteNonNumeric quotes every non-numeric field
	QuoteNonNumeric
	// QuoteNone never quotes; special characters are escaped instead
	QuoteNone
)

// String returns the policy name.
func (q QuotingPolicy) String() string {
	switch q {
	case QuoteMinimal:
		return "minimal"
	case QuoteAll:
		return "all"
	case QuoteNonNumeric:
		return "nonnumeric"
	case QuoteNone:
		return "none"
	default:
		return "minimal"
	}
}

// ParseQuotingPolicy is the inverse of QuotingPolicy.String.
func ParseQuotingPolicy(s string) (QuotingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimal", "":
		return QuoteMinimal, nil
	case "all":
		return QuoteAll, nil
	case "nonnumeric", "non_numeric":
		return QuoteNonNumeric, nil
	case "none":
		return QuoteNone, nil
	default:
		return QuoteMinimal, fmt.Errorf("%w: unknown quoting policy %q", ErrInvalidDialect, s)
	}
}

// Dialect describes how a delimited text file is tokenized.
//
// Dialect is an immutable value; the With methods return modified copies.
//
// Example:
//
//	d := NewDialect().
//		WithDelimiter(';').
//		WithSkipLeadingSpace(true)
//	if err := d.Validate(); err != nil {
//		return err
//	}
type Dialect struct {
	delimiter        rune
	quoteChar        rune
	escapeChar       rune
	lineTerminator   string
	quoting          QuotingPolicy
	doubleQuote      bool
	skipLeadingSpace bool
}

// NewDialect returns the default dialect: comma delimited, double-quote
// quoted with doubling, CRLF terminated, minimal quoting.
func NewDialect() Dialect {
	return Dialect{
		delimiter:      DefaultDelimiter,
		quoteChar:      DefaultQuoteChar,
		escapeChar:     NoChar,
		lineTerminator: DefaultLineTerminator,
		quoting:        QuoteMinimal,
		doubleQuote:    true,
	}
}

// Delimiter returns the field separator.
func (d Dialect) Delimiter() rune { return d.delimiter }

// QuoteChar returns the quote character, or NoChar.
func (d Dialect) QuoteChar() rune { return d.quoteChar }

// EscapeChar returns the escape character, or NoChar.
func (d Dialect) EscapeChar() rune { return d.escapeChar }

// LineTerminator returns the record terminator used when writing.
func (d Dialect) LineTerminator() string { return d.lineTerminator }

// Quoting returns the quoting policy.
func (d Dialect) Quoting() QuotingPolicy { return d.quoting }

// DoubleQuote reports whether a doubled quote char stands for one literal quote char.
func (d Dialect) DoubleQuote() bool { return d.doubleQuote }

// SkipLeadingSpace reports whether whitespace after a delimiter is discarded.
func (d Dialect) SkipLeadingSpace() bool { return d.skipLeadingSpace }

// WithDelimiter sets the field separator.
func (d Dialect) WithDelimiter(r rune) Dialect {
	d.delimiter = r
	return d
}

// WithQuoteChar sets the quote character. NoChar removes it.
func (d Dialect) WithQuoteChar(r rune) Dialect {
	d.quoteChar = r
	return d
}

// WithEscapeChar sets the escape character. NoChar removes it.
func (d Dialect) WithEscapeChar(r rune) Dialect {
	d.escapeChar = r
	return d
}

// WithLineTerminator sets the record terminator.
func (d Dialect) WithLineTerminator(s string) Dialect {
	d.lineTerminator = s
	return d
}

// WithQuoting sets the quoting policy.
func (d Dialect) WithQuoting(q QuotingPolicy) Dialect {
	d.quoting = q
	return d
}

// WithDoubleQuote sets double-quote behavior.
func (d Dialect) WithDoubleQuote(b bool) Dialect {
	d.doubleQuote = b
	return d
}

// WithSkipLeadingSpace sets leading-space skipping.
func (d Dialect) WithSkipLeadingSpace(b bool) Dialect {
	d.skipLeadingSpace = b
	return d
}

// QuotesEnabled reports whether the quote character has special meaning.
func (d Dialect) QuotesEnabled() bool {
	return d.quoting != QuoteNone && d.quoteChar != NoChar
}

// Validate checks the dialect invariants.
func (d Dialect) Validate() error {
	switch {
	case d.delimiter == NoChar:
		return fmt.Errorf("%w: delimiter is required", ErrInvalidDialect)
	case isLineBreak(d.delimiter):
		return fmt.Errorf("%w: delimiter cannot be a line break", ErrInvalidDialect)
	case d.quoteChar != NoChar && d.delimiter == d.quoteChar:
		return fmt.Errorf("%w: delimiter and quote char are both %q", ErrInvalidDialect, d.delimiter)
	case d.escapeChar != NoChar && d.delimiter == d.escapeChar:
		return fmt.Errorf("%w: delimiter and escape char are both %q", ErrInvalidDialect, d.delimiter)
	case d.escapeChar != NoChar && d.quoteChar == d.escapeChar:
		return fmt.Errorf("%w: quote char and escape char are both %q", ErrInvalidDialect, d.quoteChar)
	case isLineBreak(d.quoteChar) || isLineBreak(d.escapeChar):
		return fmt.Errorf("%w: quote and escape chars cannot be line breaks", ErrInvalidDialect)
	}

	switch d.lineTerminator {
	case "\r", "\n", "\r\n":
	default:
		return fmt.Errorf("%w: line terminator %q must be one of \\r, \\n, \\r\\n", ErrInvalidDialect, d.lineTerminator)
	}

	if d.quoting == QuoteNone && d.escapeChar == NoChar {
		return fmt.Errorf("%w: quoting none requires an escape char", ErrInvalidDialect)
	}
	if d.quoting != QuoteNone && d.quoteChar == NoChar {
		return fmt.Errorf("%w: quoting %s requires a quote char", ErrInvalidDialect, d.quoting)
	}
	return nil
}

// String renders the dialect for logs.
func (d Dialect) String() string {
	return fmt.Sprintf("delimiter=%q quotechar=%q escapechar=%q lineterminator=%q quoting=%s doublequote=%t skipinitialspace=%t",
		d.delimiter, d.quoteChar, d.escapeChar, d.lineTerminator, d.quoting, d.doubleQuote, d.skipLeadingSpace)
}

func isLineBreak(r rune) bool {
	return r == '\r' || r == '\n'
}
