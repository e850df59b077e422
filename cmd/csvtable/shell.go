package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/csvtable"
	"github.com/nao1215/csvtable/domain/model"
	"github.com/nao1215/csvtable/internal/config"
	"github.com/nao1215/csvtable/sqlview"
)

const prompt = "csvtable> "

const helpText = `Commands:
  open <path>               load a file, detecting its dialect
  manual <path>             load a file with a dialect entered field by field
  show [n]                  print the first n rows
  set <row> <col> [value]   change a cell; no value clears it
  info                      print the dialect and load statistics
  sql <query>               run SQL against a snapshot of the table
  help                      print this help
  quit                      leave the shell
`

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// cellEscaper keeps one table row on one output line.
var cellEscaper = strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`)

type shell struct {
	table *csvtable.Table
	cfg   *config.Config
	in    *bufio.Scanner
	out   io.Writer
}

func newShell(table *csvtable.Table, cfg *config.Config, in io.Reader, out io.Writer) *shell {
	sh := &shell{
		table: table,
		cfg:   cfg,
		in:    bufio.NewScanner(in),
		out:   out,
	}
	table.Subscribe(csvtable.ObserverFuncs{
		OnModelReset: func() {
			sh.printf("loaded %s: %d rows, %d columns\n", table.Path(), table.RowCount(), table.ColumnCount())
		},
		OnCellChanged: func(row, col int) {
			v, _ := table.Cell(row, col)
			sh.printf("%s[%d] = %q\n", table.ColumnName(col), row, v)
		},
	})
	return sh
}

// run reads commands until quit or the end of input.
func (s *shell) run(ctx context.Context) error {
	for {
		s.printf("%s", prompt)
		line, ok := s.readLine()
		if !ok {
			s.printf("\n")
			return s.in.Err()
		}
		if err := s.exec(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			s.printf("error: %v\n", err)
		}
	}
}

func (s *shell) exec(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "":
		return nil
	case "open":
		return s.open(rest)
	case "manual":
		return s.manual(rest)
	case "show":
		return s.show(rest)
	case "set":
		return s.set(rest)
	case "info":
		return s.info()
	case "sql":
		return s.sql(ctx, rest)
	case "help":
		s.printf("%s", helpText)
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (s *shell) open(path string) error {
	if path == "" {
		return errors.New("usage: open <path>")
	}
	err := s.table.Load(path)
	if errors.Is(err, csvtable.ErrDialectIndeterminate) {
		s.printf("could not detect the dialect of %s, please enter it\n", path)
		return s.manual(path)
	}
	return err
}

// manual prompts for every dialect field and loads path with the result.
func (s *shell) manual(path string) error {
	if path == "" {
		return errors.New("usage: manual <path>")
	}

	values := make(map[string]string)
	for _, f := range model.DialectFields() {
		s.printf("%s%s: ", f.Label, fieldHint(f))
		v, ok := s.readLine()
		if !ok {
			return errors.New("input ended during dialect entry")
		}
		if f.Kind == model.KindString {
			v = strings.ReplaceAll(v, `\t`, "\t")
		} else {
			v = strings.TrimSpace(v)
		}
		values[f.Name] = v
	}

	d, params, err := model.ParseDialectForm(values)
	if err != nil {
		return err
	}
	return s.table.LoadManual(path, d, params.Header, params.Skip)
}

func (s *shell) show(arg string) error {
	if !s.table.Loaded() {
		return errors.New("no file loaded")
	}
	n := s.cfg.Shell.ShowRows
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid row count %q", arg)
		}
		n = v
	}
	n = min(n, s.table.RowCount())

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	header := []string{"#"}
	for col := range s.table.ColumnCount() {
		header = append(header, cellEscaper.Replace(s.table.ColumnName(col)))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for row := range n {
		cells := []string{strconv.Itoa(row)}
		for col := range s.table.ColumnCount() {
			v, err := s.table.Cell(row, col)
			if err != nil {
				return err
			}
			cells = append(cells, cellEscaper.Replace(v))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if n < s.table.RowCount() {
		s.printf("... %d more rows\n", s.table.RowCount()-n)
	}
	return nil
}

func (s *shell) set(args string) error {
	fields := strings.SplitN(args, " ", 3)
	if len(fields) < 2 {
		return errors.New("usage: set <row> <col> [value]")
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("invalid row %q", fields[0])
	}
	col, err := s.column(fields[1])
	if err != nil {
		return err
	}
	value := ""
	if len(fields) == 3 {
		value = fields[2]
	}
	return s.table.SetCell(row, col, value)
}

// column resolves a column index or header name.
func (s *shell) column(arg string) (int, error) {
	if col, err := strconv.Atoi(arg); err == nil {
		return col, nil
	}
	if i := s.table.Headers().Index(arg); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("unknown column %q", arg)
}

func (s *shell) info() error {
	if !s.table.Loaded() {
		return errors.New("no file loaded")
	}
	stats := s.table.Stats()
	s.printf("file:    %s\n", s.table.Path())
	s.printf("dialect: %s\n", s.table.Dialect())
	s.printf("header:  %t\n", s.table.HasHeader())
	s.printf("rows:    %d (short %d, long %d)\n", stats.Rows, stats.ShortRows, stats.LongRows)
	for _, c := range s.table.ColumnInfo() {
		s.printf("column:  %s %s\n", c.Name, c.Type)
	}
	return nil
}

func (s *shell) sql(ctx context.Context, query string) error {
	if query == "" {
		return errors.New("usage: sql <query>")
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Shell.QueryTimeout)
	defer cancel()

	view, err := sqlview.Open(ctx, s.table)
	if err != nil {
		return err
	}
	defer view.Close()

	res, err := view.Query(ctx, query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(res.Columns, "\t"))
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v.IsNull() {
				cells[i] = "NULL"
				continue
			}
			cells[i] = cellEscaper.Replace(v.String())
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func (s *shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimRight(s.in.Text(), "\r"), true
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// fieldHint renders the default and choices of a descriptor for the prompt.
func fieldHint(f model.FieldDescriptor) string {
	var b strings.Builder
	if f.Default != "" {
		fmt.Fprintf(&b, " [%s]", cellEscaper.Replace(f.Default))
	}
	if len(f.Choices) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(f.Choices, "/"))
	}
	return b.String()
}
