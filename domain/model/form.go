package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldKind is the value kind of a configurable load parameter.
type FieldKind int

const (
	// KindString is a free text field
	KindString FieldKind = iota
	// KindBoolean is a true/false field
	KindBoolean
	// KindInteger is a whole number field
	KindInteger
	// KindEnum is a field restricted to Choices
	KindEnum
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindEnum:
		return "enum"
	default:
		return "string"
	}
}

// Form field names
const (
	FieldDelimiter        = "delimiter"
	FieldQuoteChar        = "quotechar"
	FieldEscapeChar       = "escapechar"
	FieldLineTerminator   = "lineterminator"
	FieldQuoting          = "quoting"
	FieldDoubleQuote      = "doublequote"
	FieldSkipLeadingSpace = "skipinitialspace"
	FieldHeader           = "header"
	FieldSkip             = "skip"
)

// FieldDescriptor describes one parameter of a manual load, independent of
// how a front end renders it.
type FieldDescriptor struct {
	Name    string
	Label   string
	Kind    FieldKind
	Default string
	// Choices lists the allowed values of a KindEnum field.
	Choices []string
	// MaxLen bounds the rune length of a KindString field; 0 means unbounded.
	MaxLen int
	// Min is the lower bound of a KindInteger field.
	Min int
}

// lineTerminatorChoices maps the enum labels to terminators.
var lineTerminatorChoices = map[string]string{
	"crlf": "\r\n",
	"lf":   "\n",
	"cr":   "\r",
}

// DialectFields returns the descriptors of every manual load parameter.
func DialectFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: FieldDelimiter, Label: "Delimiter", Kind: KindString, Default: string(DefaultDelimiter), MaxLen: 1},
		{Name: FieldQuoteChar, Label: "Quote", Kind: KindString, Default: string(DefaultQuoteChar), MaxLen: 1},
		{Name: FieldEscapeChar, Label: "Escape", Kind: KindString, Default: "", MaxLen: 1},
		{Name: FieldLineTerminator, Label: "Line terminator", Kind: KindEnum, Default: "crlf", Choices: []string{"crlf", "lf", "cr"}},
		{Name: FieldQuoting, Label: "Quoting", Kind: KindEnum, Default: QuoteMinimal.String(), Choices: []string{"minimal", "all", "nonnumeric", "none"}},
		{Name: FieldDoubleQuote, Label: "Double quote", Kind: KindBoolean, Default: "true"},
		{Name: FieldSkipLeadingSpace, Label: "Skip initial space", Kind: KindBoolean, Default: "false"},
		{Name: FieldHeader, Label: "First row is header", Kind: KindBoolean, Default: "false"},
		{Name: FieldSkip, Label: "Skip lines", Kind: KindInteger, Default: "0", Min: 0},
	}
}

// LoadParams holds the non-dialect parameters of a manual load.
type LoadParams struct {
	Header bool
	Skip   int
}

// ParseDialectForm builds a Dialect and LoadParams from raw form values keyed
// by descriptor name. Blank or missing values take the descriptor default, so
// a cleared delimiter or quote char falls back to "," and "\"".
func ParseDialectForm(values map[string]string) (Dialect, LoadParams, error) {
	resolved := make(map[string]string)
	for _, f := range DialectFields() {
		v := values[f.Name]
		if f.Kind != KindString {
			v = strings.TrimSpace(v)
		}
		if v == "" {
			v = f.Default
		}
		if err := f.check(v); err != nil {
			return Dialect{}, LoadParams{}, err
		}
		resolved[f.Name] = v
	}

	quoting, err := ParseQuotingPolicy(resolved[FieldQuoting])
	if err != nil {
		return Dialect{}, LoadParams{}, err
	}

	d := NewDialect().
		WithDelimiter(firstRune(resolved[FieldDelimiter])).
		WithQuoteChar(firstRune(resolved[FieldQuoteChar])).
		WithEscapeChar(firstRune(resolved[FieldEscapeChar])).
		WithLineTerminator(lineTerminatorChoices[resolved[FieldLineTerminator]]).
		WithQuoting(quoting).
		WithDoubleQuote(resolved[FieldDoubleQuote] == "true").
		WithSkipLeadingSpace(resolved[FieldSkipLeadingSpace] == "true")
	if err := d.Validate(); err != nil {
		return Dialect{}, LoadParams{}, err
	}

	skip, _ := strconv.Atoi(resolved[FieldSkip]) // checked above
	return d, LoadParams{
		Header: resolved[FieldHeader] == "true",
		Skip:   skip,
	}, nil
}

// check validates v against the descriptor and normalizes nothing.
func (f FieldDescriptor) check(v string) error {
	switch f.Kind {
	case KindString:
		if f.MaxLen > 0 && utf8.RuneCountInString(v) > f.MaxLen {
			return fmt.Errorf("%w: %s must be at most %d character(s), got %q", ErrInvalidDialect, f.Name, f.MaxLen, v)
		}
	case KindBoolean:
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: %s must be true or false, got %q", ErrInvalidDialect, f.Name, v)
		}
	case KindInteger:
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidDialect, f.Name, v)
		}
		if n < f.Min {
			return fmt.Errorf("%w: %s must be >= %d, got %d", ErrInvalidSkip, f.Name, f.Min, n)
		}
	case KindEnum:
		for _, c := range f.Choices {
			if v == c {
				return nil
			}
		}
		return fmt.Errorf("%w: %s must be one of %s, got %q", ErrInvalidDialect, f.Name, strings.Join(f.Choices, ", "), v)
	}
	return nil
}

func firstRune(s string) rune {
	if s == "" {
		return NoChar
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
