// Package model provides domain model for csvtable
package model

import (
	"fmt"
	"strconv"
)

// genericColumnPrefix prefixes synthesized column names ("Column 1", "Column 2", ...).
const genericColumnPrefix = "Column "

// Header is the ordered list of unique column names.
type Header []string

// GenericHeader creates a Header of width columns named "Column 1" to "Column N".
func GenericHeader(width int) Header {
	h := make(Header, width)
	for i := range width {
		h[i] = GenericColumnName(i)
	}
	return h
}

// GenericColumnName returns the synthesized name for the 0-based column index.
func GenericColumnName(index int) string {
	return genericColumnPrefix + strconv.Itoa(index+1)
}

// UniqueHeader builds a Header from raw names read from a file.
//
// Empty names become the generic name of their position. A name that was
// already used is suffixed with "_N", where N is the smallest integer >= 2
// producing a name not yet present. The rule is applied left to right, so
// the first occurrence always keeps its name.
func UniqueHeader(names []string) Header {
	h := make(Header, 0, len(names))
	used := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			name = GenericColumnName(i)
		}
		candidate := name
		for n := 2; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		used[candidate] = true
		h = append(h, candidate)
	}
	return h
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Index returns the position of name, or -1.
func (h Header) Index(name string) int {
	for i, v := range h {
		if v == name {
			return i
		}
	}
	return -1
}

// Value is a field value that is either text or absent.
type Value struct {
	text  string
	valid bool
}

// NewValue returns a present value holding s.
func NewValue(s string) Value {
	return Value{text: s, valid: true}
}

// Null returns the absent value.
func Null() Value {
	return Value{}
}

// NormalizeValue turns the empty string into the absent value.
func NormalizeValue(s string) Value {
	if s == "" {
		return Null()
	}
	return NewValue(s)
}

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool {
	return !v.valid
}

// String renders the value; absent renders as "".
func (v Value) String() string {
	return v.text
}

// Record is an ordered mapping from column name to Value.
//
// The key set is fixed by the header the record was built with. Fields a
// row carried beyond the header width are kept in Overflow and are not
// addressable by name.
type Record struct {
	header   Header
	values   map[string]Value
	overflow []string
}

// NewRecord maps fields onto header by position. Missing trailing fields
// are absent; excess fields go to the overflow list.
func NewRecord(header Header, fields []string) Record {
	values := make(map[string]Value, len(header))
	for i, name := range header {
		if i < len(fields) {
			values[name] = NewValue(fields[i])
			continue
		}
		values[name] = Null()
	}

	var overflow []string
	if len(fields) > len(header) {
		overflow = append(overflow, fields[len(header):]...)
	}

	return Record{
		header:   header,
		values:   values,
		overflow: overflow,
	}
}

// Get returns the value stored under name. The second result is false when
// name is not a column of this record.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set stores v under name. It reports false, and stores nothing, when name
// is not a column of this record.
func (r Record) Set(name string, v Value) bool {
	if _, ok := r.values[name]; !ok {
		return false
	}
	r.values[name] = v
	return true
}

// Keys returns the column names in header order.
func (r Record) Keys() []string {
	return append([]string(nil), r.header...)
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.header)
}

// Fields renders the record as strings in header order; absent renders as "".
func (r Record) Fields() []string {
	out := make([]string, len(r.header))
	for i, name := range r.header {
		out[i] = r.values[name].String()
	}
	return out
}

// Overflow returns the fields that did not fit the header.
func (r Record) Overflow() []string {
	return r.overflow
}

// Equal compare Record.
func (r Record) Equal(r2 Record) bool {
	if !r.header.Equal(r2.header) {
		return false
	}
	for _, name := range r.header {
		if r.values[name] != r2.values[name] {
			return false
		}
	}
	if len(r.overflow) != len(r2.overflow) {
		return false
	}
	for i, v := range r.overflow {
		if v != r2.overflow[i] {
			return false
		}
	}
	return true
}

// ColumnType represents the inferred type of a column
type ColumnType int

const (
	// ColumnTypeText represents TEXT column type
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
	// ColumnTypeReal represents REAL column type
	ColumnTypeReal
	// ColumnTypeDatetime represents datetime stored as TEXT in ISO8601 format
	ColumnTypeDatetime
)

const (
	sqlTypeText    = "TEXT"
	sqlTypeInteger = "INTEGER"
	sqlTypeReal    = "REAL"
)

// String returns the SQL column type string
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeText:
		return sqlTypeText
	case ColumnTypeInteger:
		return sqlTypeInteger
	case ColumnTypeReal:
		return sqlTypeReal
	case ColumnTypeDatetime:
		return sqlTypeText // SQLite stores datetime as TEXT in ISO8601 format
	default:
		return sqlTypeText
	}
}

// ColumnInfo represents column information with name and inferred type
type ColumnInfo struct {
	Name string
	Type ColumnType
}
