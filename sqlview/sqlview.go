// Package sqlview snapshots a loaded table into an in-memory SQLite database
// so it can be queried with SQL.
//
// The snapshot is taken once by Open. Later edits to the source are not
// reflected; open a new View to see them. Absent values are stored as NULL,
// and column types follow the types inferred from the data.
package sqlview

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/csvtable/domain/model"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver used for snapshots.
const DriverName = "sqlite"

// ErrNoColumns is returned when the source has no columns to create a table from.
var ErrNoColumns = errors.New("sqlview: source has no columns")

// Source is a table that can be snapshotted.
type Source interface {
	Name() string
	Headers() model.Header
	RowCount() int
	Record(row int) (model.Record, error)
	ColumnInfo() []model.ColumnInfo
}

// View is an in-memory SQLite copy of a Source.
type View struct {
	db    *sql.DB
	table string
}

// Result holds the rows of a query. NULL is reported as the absent value.
type Result struct {
	Columns []string
	Rows    [][]model.Value
}

// Open creates an in-memory database holding one table with the content of src.
func Open(ctx context.Context, src Source) (*View, error) {
	header := src.Headers()
	if len(header) == 0 {
		return nil, ErrNoColumns
	}

	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	v := &View{
		db:    db,
		table: NewTableName(src.Name()).Sanitize().String(),
	}
	if err := v.load(ctx, src, header); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
		return nil, err
	}
	return v, nil
}

// DB returns the underlying database.
func (v *View) DB() *sql.DB {
	return v.db
}

// TableName returns the name of the table holding the snapshot.
func (v *View) TableName() string {
	return v.table
}

// Query runs query and collects all rows.
func (v *View) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	rows, err := v.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columns}
	for rows.Next() {
		dest := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make([]model.Value, len(columns))
		for i, d := range dest {
			if d.Valid {
				row[i] = model.NewValue(d.String)
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}

// Close closes the database.
func (v *View) Close() error {
	return v.db.Close()
}

// load creates the table and inserts every record in one transaction.
func (v *View) load(ctx context.Context, src Source, header model.Header) error {
	if _, err := v.db.ExecContext(ctx, buildCreateTableQuery(v.table, src.ColumnInfo())); err != nil {
		return fmt.Errorf("failed to create table %s: %w", v.table, err)
	}

	tx, err := v.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, buildInsertQuery(v.table, len(header)))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for row := range src.RowCount() {
		rec, err := src.Record(row)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, recordArgs(rec, header)...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", row, err)
		}
	}
	return tx.Commit()
}

// buildCreateTableQuery constructs a CREATE TABLE query for the given columns
func buildCreateTableQuery(table string, columns []model.ColumnInfo) string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	names = columnNames(names)

	defs := make([]string, 0, len(columns))
	for i, col := range columns {
		defs = append(defs, fmt.Sprintf("%s %s", quoteIdentifier(names[i]), col.Type))
	}
	return fmt.Sprintf(`CREATE TABLE %s (%s)`, quoteIdentifier(table), strings.Join(defs, ", "))
}

// buildInsertQuery constructs an INSERT query for count columns
func buildInsertQuery(table string, count int) string {
	return fmt.Sprintf(`INSERT INTO %s VALUES (%s)`,
		quoteIdentifier(table), strings.TrimSuffix(strings.Repeat("?, ", count), ", "))
}

// recordArgs converts a record to statement arguments; absent becomes NULL.
func recordArgs(rec model.Record, header model.Header) []any {
	args := make([]any, len(header))
	for i, name := range header {
		v, _ := rec.Get(name)
		if v.IsNull() {
			continue
		}
		args[i] = v.String()
	}
	return args
}

// columnNames makes names unique ignoring case, as SQLite compares column
// names case-insensitively. A later clash gets the smallest free "_N" suffix.
func columnNames(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]bool, len(names))
	for i, name := range names {
		candidate := name
		for n := 2; used[strings.ToLower(candidate)]; n++ {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		used[strings.ToLower(candidate)] = true
		out[i] = candidate
	}
	return out
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
