package csvtable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(file, []byte("a,b\n"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "Regular file", path: file},
		{name: "Blank path", path: "  ", wantErr: errEmptyPath},
		{name: "Directory", path: dir, wantErr: errIsDirectory},
		{name: "Missing file", path: filepath.Join(dir, "missing.csv"), wantErr: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validatePath(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrIO)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
