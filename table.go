package csvtable

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nao1215/csvtable/domain/model"
)

// LoadStats describes the document produced by the last successful load.
type LoadStats struct {
	Rows    int
	Columns int
	// ShortRows counts rows with fewer fields than the header.
	ShortRows int
	// LongRows counts rows with more fields than the header; their excess
	// fields are kept in model.Record.Overflow.
	LongRows int
}

// Table is an editable, index-addressed view of one loaded file.
//
// A Table starts empty. Every successful Load or LoadManual replaces the
// whole document and notifies observers once with ModelReset; a failed load
// leaves the previous document untouched. Cells are addressed by row and
// column index, and a column index resolves to its header name before the
// record is consulted.
//
// Table is not safe for concurrent use.
type Table struct {
	logger     *slog.Logger
	sampleSize int
	delimiters []rune
	factory    *CompressionFactory

	path      string
	dialect   model.Dialect
	hasHeader bool
	doc       *model.Table
	stats     LoadStats

	subscriptions []*subscription
}

// NewTable returns an empty Table.
func NewTable(opts ...Option) *Table {
	t := &Table{
		logger:     slog.Default(),
		sampleSize: DefaultSampleSize,
		delimiters: defaultDelimiters(),
		factory:    NewCompressionFactory(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Loaded reports whether a document has been loaded.
func (t *Table) Loaded() bool {
	return t.doc != nil
}

// RowCount returns the number of rows, or 0 when nothing is loaded.
func (t *Table) RowCount() int {
	if t.doc == nil {
		return 0
	}
	return len(t.doc.Records())
}

// ColumnCount returns the number of columns, or 0 when nothing is loaded.
func (t *Table) ColumnCount() int {
	if t.doc == nil {
		return 0
	}
	return len(t.doc.Header())
}

// Headers returns a copy of the column names.
func (t *Table) Headers() model.Header {
	if t.doc == nil {
		return nil
	}
	return append(model.Header(nil), t.doc.Header()...)
}

// ColumnName returns the name of column col. Out of range it returns the
// 1-based column number instead of failing.
func (t *Table) ColumnName(col int) string {
	if col >= 0 && col < t.ColumnCount() {
		return t.doc.Header()[col]
	}
	return strconv.Itoa(col + 1)
}

// Value returns the value at row, col.
func (t *Table) Value(row, col int) (model.Value, error) {
	rec, name, err := t.locate(row, col)
	if err != nil {
		return model.Null(), err
	}
	v, _ := rec.Get(name)
	return v, nil
}

// Cell returns the text at row, col; an absent value renders as "".
func (t *Table) Cell(row, col int) (string, error) {
	v, err := t.Value(row, col)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// SetCell stores value at row, col and notifies CellChanged. The empty
// string is stored as the absent value.
func (t *Table) SetCell(row, col int, value string) error {
	rec, name, err := t.locate(row, col)
	if err != nil {
		return err
	}
	rec.Set(name, model.NormalizeValue(value))
	t.notifyCellChanged(row, col)
	return nil
}

// Record returns the record of row. The record shares storage with the
// table; use SetCell to modify it.
func (t *Table) Record(row int) (model.Record, error) {
	if row < 0 || row >= t.RowCount() {
		return model.Record{}, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, row, t.RowCount())
	}
	return t.doc.Records()[row], nil
}

// Name returns the table name derived from the loaded path, or "" when
// nothing is loaded.
func (t *Table) Name() string {
	if t.doc == nil {
		return ""
	}
	return t.doc.Name()
}

// Path returns the path of the loaded file, or "".
func (t *Table) Path() string {
	return t.path
}

// Dialect returns the dialect of the loaded file.
func (t *Table) Dialect() model.Dialect {
	return t.dialect
}

// HasHeader reports whether the first row of the loaded file named the columns.
func (t *Table) HasHeader() bool {
	return t.hasHeader
}

// Stats returns the statistics of the last successful load.
func (t *Table) Stats() LoadStats {
	return t.stats
}

// ColumnInfo returns the inferred type of every column.
func (t *Table) ColumnInfo() []model.ColumnInfo {
	if t.doc == nil {
		return nil
	}
	return t.doc.ColumnInfo()
}

func (t *Table) locate(row, col int) (model.Record, string, error) {
	rows, cols := t.RowCount(), t.ColumnCount()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return model.Record{}, "", fmt.Errorf("%w: cell (%d, %d) of %dx%d table", ErrIndexOutOfRange, row, col, rows, cols)
	}
	return t.doc.Records()[row], t.doc.Header()[col], nil
}
