package csvtable

import (
	"errors"
	"os"
	"strings"

	"github.com/nao1215/csvtable/domain/model"
)

var (
	// errEmptyPath is reported for a blank path
	errEmptyPath = errors.New("path cannot be empty")
	// errIsDirectory is reported when the path names a directory
	errIsDirectory = errors.New("path is a directory")
)

// validatePath checks that path names an existing regular file before any
// load work starts. Failures are reported as *IOError.
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &model.IOError{Op: "open", Path: path, Err: errEmptyPath}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &model.IOError{Op: "open", Path: path, Err: err}
	}
	if info.IsDir() {
		return &model.IOError{Op: "open", Path: path, Err: errIsDirectory}
	}
	return nil
}
