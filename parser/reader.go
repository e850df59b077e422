// Package parser tokenizes delimited text according to a model.Dialect.
//
// Reader yields raw rows of fields; RecordReader materializes them into
// model.Record values, either keyed by a header row or by synthesized
// "Column N" names.
package parser

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/nao1215/csvtable/domain/model"
)

const byteOrderMark = '\uFEFF'

// Errors carried by MalformedRowError
var (
	// ErrUnterminatedQuote is reported when the stream ends inside a quoted field
	ErrUnterminatedQuote = errors.New("unterminated quoted field at end of data")
	// ErrDanglingEscape is reported when the stream ends right after an escape char
	ErrDanglingEscape = errors.New("escape character at end of data")
)

type parserState int

const (
	stateStartRecord parserState = iota
	stateStartField
	stateEscapedChar
	stateInField
	stateInQuotedField
	stateEscapeInQuotedField
	stateQuoteInQuotedField
)

// Reader reads rows from delimited text.
//
// Any of "\r", "\n" or "\r\n" ends a record outside a quoted field; the
// dialect's line terminator only matters when writing. Lines without any
// characters produce no row.
type Reader struct {
	r       *bufio.Reader
	dialect model.Dialect

	// line counts the line breaks consumed so far.
	line    int
	started bool

	field  []byte
	fields []string
}

// NewReader returns a Reader over r. When r already is a *bufio.Reader it is
// used as is, so data peeked from it beforehand is still parsed.
func NewReader(r io.Reader, dialect model.Dialect) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{
		r:       br,
		dialect: dialect,
	}
}

// Dialect returns the dialect the reader tokenizes with.
func (r *Reader) Dialect() model.Dialect {
	return r.dialect
}

// Line returns the number of input lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next row. At the end of input it returns nil, io.EOF.
func (r *Reader) Read() ([]string, error) {
	for {
		row, err := r.readRecord()
		if err != nil {
			return nil, err
		}
		if row != nil {
			return row, nil
		}
	}
}

// ReadAll reads all remaining rows.
func (r *Reader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// readRecord parses one physical record. It returns nil, nil for a blank line.
func (r *Reader) readRecord() ([]string, error) {
	d := r.dialect
	quotes := d.QuotesEnabled()
	quote := d.QuoteChar()
	escape := d.EscapeChar()
	delim := d.Delimiter()

	startLine := r.line + 1
	r.field = r.field[:0]
	r.fields = nil
	state := stateStartRecord

	for {
		c, raw, err := r.next()
		if errors.Is(err, io.EOF) {
			switch state {
			case stateStartRecord:
				return nil, io.EOF
			case stateInQuotedField, stateEscapeInQuotedField:
				return nil, &model.MalformedRowError{Line: startLine, Err: ErrUnterminatedQuote}
			case stateEscapedChar:
				return nil, &model.MalformedRowError{Line: startLine, Err: ErrDanglingEscape}
			default:
				r.saveField()
				return r.fields, nil
			}
		}
		if err != nil {
			return nil, err
		}

		switch state {
		case stateStartRecord:
			if c == '\n' || c == '\r' {
				r.endLine(c)
				return nil, nil
			}
			state = stateStartField
			fallthrough

		case stateStartField:
			switch {
			case c == '\n' || c == '\r':
				r.saveField()
				r.endLine(c)
				return r.fields, nil
			case quotes && c == quote:
				state = stateInQuotedField
			case escape != model.NoChar && c == escape:
				state = stateEscapedChar
			case d.SkipLeadingSpace() && isLeadingSpace(c, delim):
				// discarded
			case c == delim:
				r.saveField()
			default:
				r.appendRune(c, raw)
				state = stateInField
			}

		case stateEscapedChar:
			if c == '\n' {
				r.line++
			}
			r.appendRune(c, raw)
			state = stateInField

		case stateInField:
			switch {
			case c == '\n' || c == '\r':
				r.saveField()
				r.endLine(c)
				return r.fields, nil
			case escape != model.NoChar && c == escape:
				state = stateEscapedChar
			case c == delim:
				r.saveField()
				state = stateStartField
			default:
				r.appendRune(c, raw)
			}

		case stateInQuotedField:
			switch {
			case escape != model.NoChar && c == escape:
				state = stateEscapeInQuotedField
			case c == quote:
				if d.DoubleQuote() {
					state = stateQuoteInQuotedField
				} else {
					state = stateInField
				}
			default:
				r.countQuotedLineBreak(c)
				r.appendRune(c, raw)
			}

		case stateEscapeInQuotedField:
			r.countQuotedLineBreak(c)
			r.appendRune(c, raw)
			state = stateInQuotedField

		case stateQuoteInQuotedField:
			switch {
			case c == quote:
				// doubled quote char stands for one literal quote char
				r.appendRune(c, raw)
				state = stateInQuotedField
			case c == delim:
				r.saveField()
				state = stateStartField
			case c == '\n' || c == '\r':
				r.saveField()
				r.endLine(c)
				return r.fields, nil
			default:
				r.appendRune(c, raw)
				state = stateInField
			}
		}
	}
}

// next returns the next rune. For a byte that is not valid UTF-8 it returns
// utf8.RuneError together with the raw byte so the text survives unchanged.
func (r *Reader) next() (rune, byte, error) {
	c, size, err := r.r.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	first := !r.started
	r.started = true
	if c == utf8.RuneError && size == 1 {
		if err := r.r.UnreadRune(); err != nil {
			return 0, 0, err
		}
		b, err := r.r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		return utf8.RuneError, b, nil
	}
	if first && c == byteOrderMark {
		return r.next()
	}
	return c, 0, nil
}

func (r *Reader) appendRune(c rune, raw byte) {
	if raw != 0 {
		r.field = append(r.field, raw)
		return
	}
	r.field = utf8.AppendRune(r.field, c)
}

func (r *Reader) saveField() {
	r.fields = append(r.fields, string(r.field))
	r.field = r.field[:0]
}

// endLine consumes the "\n" of a "\r\n" pair and counts the line.
func (r *Reader) endLine(c rune) {
	r.line++
	if c != '\r' {
		return
	}
	if b, err := r.r.Peek(1); err == nil && b[0] == '\n' {
		_, _ = r.r.ReadByte()
	}
}

// countQuotedLineBreak counts a line break embedded in a quoted field. The
// "\r" of a "\r\n" pair is not counted; the "\n" is.
func (r *Reader) countQuotedLineBreak(c rune) {
	switch c {
	case '\n':
		r.line++
	case '\r':
		if b, err := r.r.Peek(1); err != nil || b[0] != '\n' {
			r.line++
		}
	}
}

func isLeadingSpace(c, delim rune) bool {
	return (c == ' ' || c == '\t') && c != delim
}
