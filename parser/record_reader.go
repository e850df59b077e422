package parser

import (
	"errors"
	"io"

	"github.com/nao1215/csvtable/domain/model"
)

// RecordReader materializes rows into records.
//
// With a header, the first row names the columns (see model.UniqueHeader)
// and every later row becomes a record. Without one, columns are named
// "Column 1" to "Column N" after the width of the first row, and the first
// row is data too. Rows shorter than the header leave trailing columns
// absent; fields beyond the header width are kept as record overflow.
type RecordReader struct {
	reader    *Reader
	hasHeader bool

	initialized bool
	header      model.Header
	pending     []string

	shortRows int
	longRows  int
}

// NewRecordReader returns a RecordReader over r.
func NewRecordReader(r io.Reader, dialect model.Dialect, header bool) *RecordReader {
	return &RecordReader{
		reader:    NewReader(r, dialect),
		hasHeader: header,
	}
}

// Header returns the column names, reading the first row if needed. An
// empty input yields an empty header.
func (rr *RecordReader) Header() (model.Header, error) {
	if err := rr.init(); err != nil {
		return nil, err
	}
	return rr.header, nil
}

// Read returns the next record, or io.EOF.
func (rr *RecordReader) Read() (model.Record, error) {
	if err := rr.init(); err != nil {
		return model.Record{}, err
	}

	row := rr.pending
	rr.pending = nil
	if row == nil {
		var err error
		row, err = rr.reader.Read()
		if err != nil {
			return model.Record{}, err
		}
	}

	switch {
	case len(row) < len(rr.header):
		rr.shortRows++
	case len(row) > len(rr.header):
		rr.longRows++
	}
	return model.NewRecord(rr.header, row), nil
}

// ReadAll reads all remaining records.
func (rr *RecordReader) ReadAll() ([]model.Record, error) {
	var records []model.Record
	for {
		rec, err := rr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// ShortRows returns how many records had fewer fields than the header.
func (rr *RecordReader) ShortRows() int {
	return rr.shortRows
}

// LongRows returns how many records had more fields than the header.
func (rr *RecordReader) LongRows() int {
	return rr.longRows
}

// Line returns the number of input lines consumed so far.
func (rr *RecordReader) Line() int {
	return rr.reader.Line()
}

func (rr *RecordReader) init() error {
	if rr.initialized {
		return nil
	}

	first, err := rr.reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	rr.initialized = true

	if rr.hasHeader {
		rr.header = model.UniqueHeader(first)
		return nil
	}
	rr.header = model.GenericHeader(len(first))
	rr.pending = first
	return nil
}
