package csvtable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/nao1215/csvtable/domain/model"
	"github.com/nao1215/csvtable/internal/logging"
	"github.com/nao1215/csvtable/parser"
	"github.com/nao1215/csvtable/sniffer"
)

const minBufferSize = 4096

// Load reads path, infers its dialect and header from a sample, and
// replaces the document. When delimiters are given, inference is restricted
// to them; otherwise the table's configured candidates are used.
//
// On failure the previous document is left intact. Sniffing failures match
// ErrDialectIndeterminate, unreadable files ErrIO and unparseable content
// ErrMalformedRow.
func (t *Table) Load(path string, delimiters ...rune) error {
	ectx := NewErrorContext("load", path)
	if len(delimiters) == 0 {
		delimiters = t.delimiters
	}
	logger := logging.WithFields(t.logger, "path", path)
	logger.Debug("loading file", slog.String("delimiters", string(delimiters)))

	r, cleanup, err := t.open(path, logger)
	if err != nil {
		return ectx.Error(err)
	}
	defer func() { _ = cleanup() }()

	br := bufio.NewReaderSize(r, max(t.sampleSize+1, minBufferSize))
	sample, complete, err := peekSample(br, t.sampleSize)
	if err != nil {
		return ectx.Error(&model.IOError{Op: "read", Path: path, Err: err})
	}

	s := sniffer.New(sniffer.WithDelimiters(delimiters...), sniffer.WithCompleteSample(complete))
	d, err := s.Sniff(sample)
	if err != nil {
		return ectx.WithDetails("sniffing sample").Error(err)
	}
	header := s.HasHeader(sample, d)
	logger.Debug("dialect detected",
		slog.String("dialect", d.String()), slog.Bool("header", header), slog.Bool("complete_sample", complete))

	doc, stats, err := readDocument(path, br, d, header)
	if err != nil {
		return ectx.Error(err)
	}
	t.commit(logger, path, d, header, doc, stats)
	return nil
}

// LoadManual reads path with a caller-supplied dialect, discarding skip raw
// lines first, and replaces the document. A dialect without a quote char
// gets the default one unless quoting is disabled. The same all-or-nothing
// guarantee as Load applies.
func (t *Table) LoadManual(path string, d model.Dialect, header bool, skip int) error {
	ectx := NewErrorContext("load", path)
	if skip < 0 {
		return ectx.Error(fmt.Errorf("%w: %d", ErrInvalidSkip, skip))
	}
	if d.QuoteChar() == model.NoChar && d.Quoting() != model.QuoteNone {
		d = d.WithQuoteChar(model.DefaultQuoteChar)
	}
	if err := d.Validate(); err != nil {
		return ectx.Error(err)
	}
	logger := logging.WithFields(t.logger, "path", path)
	logger.Debug("loading file with manual dialect",
		slog.String("dialect", d.String()), slog.Bool("header", header), slog.Int("skip", skip))

	r, cleanup, err := t.open(path, logger)
	if err != nil {
		return ectx.Error(err)
	}
	defer func() { _ = cleanup() }()

	br := bufio.NewReaderSize(r, minBufferSize)
	skipped, err := parser.SkipLines(br, skip)
	if err != nil {
		return ectx.Error(&model.IOError{Op: "read", Path: path, Err: err})
	}
	if skipped < skip {
		logger.Warn("file has fewer lines than the skip count",
			slog.Int("skip", skip), slog.Int("lines", skipped))
	}

	doc, stats, err := readDocument(path, br, d, header)
	if err != nil {
		return ectx.Error(err)
	}
	t.commit(logger, path, d, header, doc, stats)
	return nil
}

// open checks path and returns a reader over its decompressed content.
func (t *Table) open(path string, logger *slog.Logger) (io.Reader, func() error, error) {
	if err := validatePath(path); err != nil {
		return nil, nil, err
	}
	if f := model.NewFile(path); f.IsCompressed() {
		logger.Debug("decompressing input", slog.String("compression", f.Compression().String()))
	}
	return t.factory.CreateReaderForFile(path)
}

// commit swaps in a fully built document and notifies observers.
func (t *Table) commit(logger *slog.Logger, path string, d model.Dialect, header bool, doc *model.Table, stats LoadStats) {
	t.path = path
	t.dialect = d
	t.hasHeader = header
	t.doc = doc
	t.stats = stats

	if stats.ShortRows > 0 || stats.LongRows > 0 {
		logger.Warn("rows do not match the header width",
			slog.Int("columns", stats.Columns),
			slog.Int("short_rows", stats.ShortRows), slog.Int("long_rows", stats.LongRows))
	}
	logger.Debug("file loaded", slog.Int("rows", stats.Rows), slog.Int("columns", stats.Columns))

	t.notifyReset()
}

// readDocument parses r into a new model.Table without touching any Table.
func readDocument(path string, r *bufio.Reader, d model.Dialect, header bool) (*model.Table, LoadStats, error) {
	rr := parser.NewRecordReader(r, d, header)
	h, err := rr.Header()
	if err != nil {
		return nil, LoadStats{}, readError(path, err)
	}
	records, err := rr.ReadAll()
	if err != nil {
		return nil, LoadStats{}, readError(path, err)
	}

	stats := LoadStats{
		Rows:      len(records),
		Columns:   len(h),
		ShortRows: rr.ShortRows(),
		LongRows:  rr.LongRows(),
	}
	return model.NewTable(model.NewFile(path).TableName(), h, records), stats, nil
}

// readError keeps parse errors and reports stream failures as *IOError.
func readError(path string, err error) error {
	if errors.Is(err, model.ErrMalformedRow) {
		return err
	}
	return &model.IOError{Op: "read", Path: path, Err: err}
}

// peekSample returns up to n bytes from the start of r without consuming
// them, and whether they are the whole input. A multi-byte character cut by
// the sample boundary is left out. The buffer of r must hold n+1 bytes.
func peekSample(r *bufio.Reader, n int) (string, bool, error) {
	b, err := r.Peek(n + 1)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", false, err
	}
	if len(b) <= n {
		return string(b), true, nil
	}
	b = b[:n]
	for i := 0; i < utf8.UTFMax-1 && len(b) > 0; i++ {
		if c, size := utf8.DecodeLastRune(b); c != utf8.RuneError || size != 1 {
			break
		}
		b = b[:len(b)-1]
	}
	return string(b), false, nil
}
