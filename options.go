package csvtable

import (
	"log/slog"

	"github.com/nao1215/csvtable/sniffer"
)

// DefaultSampleSize is how many bytes of a file are handed to the sniffer.
const DefaultSampleSize = 1024

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithSampleSize sets the sniffing sample size in bytes. Values below 1 are ignored.
func WithSampleSize(n int) Option {
	return func(t *Table) {
		if n > 0 {
			t.sampleSize = n
		}
	}
}

// WithDelimiters sets the candidate delimiters Load uses when it is called
// without any.
func WithDelimiters(delimiters ...rune) Option {
	return func(t *Table) {
		if len(delimiters) > 0 {
			t.delimiters = append([]rune(nil), delimiters...)
		}
	}
}

func defaultDelimiters() []rune {
	return append([]rune(nil), sniffer.DefaultDelimiters...)
}
