// Package csvtable loads delimited text files into an editable, index-addressed
// table.
//
// A Table is filled by one of two pipelines. Load peeks a sample of the file,
// infers the dialect and the presence of a header row with the sniffer
// package, and parses the whole file with the parser package. LoadManual skips
// the inference and uses a caller-supplied dialect, header flag and number of
// leading lines to discard. Either way the document is built aside and swapped
// in only when it is complete, so a failed load never leaves a half-loaded
// table behind.
//
// # Features
//
//   - Delimiter, quote, escape and line terminator detection from a sample
//   - Header detection by comparing the first row with the rows below it
//   - Manual dialects with validation, including escape-only quoting
//   - Short rows filled with absent values, long rows keep their extra fields
//   - Transparent decompression of gzip, bzip2, xz and zstandard files
//   - Change notification for cell edits and document resets
//
// # Basic Usage
//
//	t := csvtable.NewTable()
//	if err := t.Load("people.csv"); err != nil {
//	    if errors.Is(err, csvtable.ErrDialectIndeterminate) {
//	        // ask the user for a dialect and call LoadManual
//	    }
//	    log.Fatal(err)
//	}
//
//	name, _ := t.Cell(0, 0)
//	_ = t.SetCell(0, 1, "31")
//
// # Manual Dialects
//
//	d := model.NewDialect().
//	    WithDelimiter(';').
//	    WithSkipLeadingSpace(true)
//	if err := t.LoadManual("export.txt", d, true, 2); err != nil {
//	    log.Fatal(err)
//	}
//
// # Observers
//
//	unsubscribe := t.Subscribe(csvtable.ObserverFuncs{
//	    OnCellChanged: func(row, col int) { redraw(row, col) },
//	    OnModelReset:  func() { redrawAll() },
//	})
//	defer unsubscribe()
//
// Absent values render as the empty string. Writing the empty string through
// SetCell stores the absent value.
package csvtable
