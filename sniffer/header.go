package sniffer

import (
	"strings"

	"github.com/nao1215/csvtable/domain/model"
	"github.com/nao1215/csvtable/parser"
)

// defaultHeaderRows is how many data rows are compared against the first row.
const defaultHeaderRows = 20

// columnProfile is what the data rows of one column agree on: a value type,
// or for text a common length.
type columnProfile struct {
	kind   model.ColumnType
	length int
}

// HasHeader guesses whether the first row of sample is a header.
//
// The sample is parsed with d and the first row is compared against up to
// the configured number of following rows of the same width. For each column
// whose data rows agree on a type (integer, real, datetime) or, for text, on
// a length, the first row's cell votes for a header when it does not fit and
// against one when it does. Columns whose data rows disagree do not vote. The
// first row is a header when the votes are positive.
func (s *Sniffer) HasHeader(sample string, d model.Dialect) bool {
	rows := sampleRows(sample, d, s.complete)
	if len(rows) < 2 {
		return false
	}

	header := rows[0]
	var data [][]string
	for _, row := range rows[1:] {
		if len(data) == s.headerRows {
			break
		}
		if len(row) == len(header) {
			data = append(data, row)
		}
	}
	if len(data) == 0 {
		return false
	}

	votes := 0
	for col, name := range header {
		profile, ok := profileColumn(data, col)
		if !ok {
			continue
		}
		if profile.fits(strings.TrimSpace(name)) {
			votes--
		} else {
			votes++
		}
	}
	return votes > 0
}

// sampleRows parses the lines of sample, leaving out an unterminated last
// line unless complete is set. Parsing stops quietly at the first malformed
// row.
func sampleRows(sample string, d model.Dialect, complete bool) [][]string {
	if i := strings.LastIndexAny(sample, "\r\n"); !complete && i >= 0 && i < len(sample)-1 {
		sample = sample[:i+1]
	}

	r := parser.NewReader(strings.NewReader(sample), d)
	var rows [][]string
	for {
		row, err := r.Read()
		if err != nil {
			// io.EOF, or a quoted field cut by the end of the sample
			return rows
		}
		rows = append(rows, row)
	}
}

func profileColumn(data [][]string, col int) (columnProfile, bool) {
	var (
		profile columnProfile
		seen    bool
	)
	for _, row := range data {
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		p := columnProfile{kind: model.ClassifyValue(v)}
		if p.kind == model.ColumnTypeText {
			p.length = len([]rune(v))
		}
		if !seen {
			profile, seen = p, true
			continue
		}
		merged, ok := profile.merge(p)
		if !ok {
			return columnProfile{}, false
		}
		profile = merged
	}
	return profile, seen
}

// merge combines two observations of a column. Integers and reals combine
// into real; anything else must match exactly.
func (p columnProfile) merge(o columnProfile) (columnProfile, bool) {
	if p == o {
		return p, true
	}
	if p.numeric() && o.numeric() {
		return columnProfile{kind: model.ColumnTypeReal}, true
	}
	return columnProfile{}, false
}

func (p columnProfile) numeric() bool {
	return p.kind == model.ColumnTypeInteger || p.kind == model.ColumnTypeReal
}

// fits reports whether v looks like the data rows of the column.
func (p columnProfile) fits(v string) bool {
	o := columnProfile{kind: model.ClassifyValue(v)}
	if o.kind == model.ColumnTypeText {
		o.length = len([]rune(v))
	}
	if p.kind == model.ColumnTypeReal && o.numeric() {
		return true
	}
	return p == o
}
