package csvtable

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTable returns a Table that logs nowhere.
func newTestTable(opts ...Option) *Table {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTable(append([]Option{WithLogger(logger)}, opts...)...)
}

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// loadedTable returns a table holding Name/Age rows for Ann and Bob.
func loadedTable(t *testing.T) *Table {
	t.Helper()

	path := writeFile(t, t.TempDir(), "people.csv", "Name,Age\nAnn,30\nBob,41\n")
	tbl := newTestTable()
	require.NoError(t, tbl.Load(path))
	return tbl
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()

	assert.False(t, tbl.Loaded())
	assert.Equal(t, 0, tbl.RowCount())
	assert.Equal(t, 0, tbl.ColumnCount())
	assert.Empty(t, tbl.Headers())
	assert.Empty(t, tbl.Path())
	assert.Empty(t, tbl.Name())
	assert.Nil(t, tbl.ColumnInfo())
	assert.Equal(t, "1", tbl.ColumnName(0))

	_, err := tbl.Cell(0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, tbl.SetCell(0, 0, "x"), ErrIndexOutOfRange)
	_, err = tbl.Record(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTable_CellAccess(t *testing.T) {
	t.Parallel()

	tbl := loadedTable(t)

	tests := []struct {
		name    string
		row     int
		col     int
		want    string
		wantErr bool
	}{
		{name: "First cell", row: 0, col: 0, want: "Ann"},
		{name: "Last cell", row: 1, col: 1, want: "41"},
		{name: "Row past end", row: 2, col: 0, wantErr: true},
		{name: "Column past end", row: 0, col: 2, wantErr: true},
		{name: "Negative row", row: -1, col: 0, wantErr: true},
		{name: "Negative column", row: 0, col: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tbl.Cell(tt.row, tt.col)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIndexOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_ColumnName(t *testing.T) {
	t.Parallel()

	tbl := loadedTable(t)

	assert.Equal(t, "Name", tbl.ColumnName(0))
	assert.Equal(t, "Age", tbl.ColumnName(1))
	assert.Equal(t, "3", tbl.ColumnName(2))
	assert.Equal(t, "10", tbl.ColumnName(9))
}

func TestTable_HeadersAreCopied(t *testing.T) {
	t.Parallel()

	tbl := loadedTable(t)

	h := tbl.Headers()
	h[0] = "changed"
	assert.Equal(t, "Name", tbl.ColumnName(0))
}

func TestTable_SetCell(t *testing.T) {
	t.Parallel()

	t.Run("Stores value and notifies after commit", func(t *testing.T) {
		t.Parallel()

		tbl := loadedTable(t)
		var changed [][2]int
		var seen string
		tbl.Subscribe(ObserverFuncs{
			OnCellChanged: func(row, col int) {
				changed = append(changed, [2]int{row, col})
				seen, _ = tbl.Cell(row, col)
			},
		})

		require.NoError(t, tbl.SetCell(1, 1, "42"))
		assert.Equal(t, [][2]int{{1, 1}}, changed)
		assert.Equal(t, "42", seen)

		got, err := tbl.Cell(1, 1)
		require.NoError(t, err)
		assert.Equal(t, "42", got)
	})

	t.Run("Empty string becomes absent", func(t *testing.T) {
		t.Parallel()

		tbl := loadedTable(t)
		require.NoError(t, tbl.SetCell(0, 0, ""))

		v, err := tbl.Value(0, 0)
		require.NoError(t, err)
		assert.True(t, v.IsNull())

		got, err := tbl.Cell(0, 0)
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("Whitespace is kept", func(t *testing.T) {
		t.Parallel()

		tbl := loadedTable(t)
		require.NoError(t, tbl.SetCell(0, 0, " "))

		v, err := tbl.Value(0, 0)
		require.NoError(t, err)
		assert.False(t, v.IsNull())
		assert.Equal(t, " ", v.String())
	})

	t.Run("Out of range does not notify", func(t *testing.T) {
		t.Parallel()

		tbl := loadedTable(t)
		calls := 0
		tbl.Subscribe(ObserverFuncs{OnCellChanged: func(int, int) { calls++ }})

		assert.ErrorIs(t, tbl.SetCell(5, 0, "x"), ErrIndexOutOfRange)
		assert.Equal(t, 0, calls)
	})

	t.Run("Edit is visible through the record", func(t *testing.T) {
		t.Parallel()

		tbl := loadedTable(t)
		require.NoError(t, tbl.SetCell(0, 1, "31"))

		rec, err := tbl.Record(0)
		require.NoError(t, err)
		v, ok := rec.Get("Age")
		require.True(t, ok)
		assert.Equal(t, "31", v.String())
	})
}

func TestTable_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("Unsubscribe stops notifications", func(t *testing.T) {
		t.Parallel()

		tbl := loadedTable(t)
		first, second := 0, 0
		unsubscribe := tbl.Subscribe(ObserverFuncs{OnCellChanged: func(int, int) { first++ }})
		tbl.Subscribe(ObserverFuncs{OnCellChanged: func(int, int) { second++ }})

		require.NoError(t, tbl.SetCell(0, 0, "a"))
		unsubscribe()
		unsubscribe()
		require.NoError(t, tbl.SetCell(0, 0, "b"))

		assert.Equal(t, 1, first)
		assert.Equal(t, 2, second)
	})

	t.Run("Observer may unsubscribe itself", func(t *testing.T) {
		t.Parallel()

		tbl := loadedTable(t)
		calls, other := 0, 0
		var unsubscribe func()
		unsubscribe = tbl.Subscribe(ObserverFuncs{OnCellChanged: func(int, int) {
			calls++
			unsubscribe()
		}})
		tbl.Subscribe(ObserverFuncs{OnCellChanged: func(int, int) { other++ }})

		require.NoError(t, tbl.SetCell(0, 0, "a"))
		require.NoError(t, tbl.SetCell(0, 0, "b"))

		assert.Equal(t, 1, calls)
		assert.Equal(t, 2, other)
	})
}

func TestObserverFuncs_NilFields(t *testing.T) {
	t.Parallel()

	var o Observer = ObserverFuncs{}
	assert.NotPanics(t, func() {
		o.CellChanged(0, 0)
		o.ModelReset()
	})
}
