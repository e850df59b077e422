package parser

import (
	"bufio"
	"errors"
	"io"
)

// SkipLines discards n raw lines from r without interpreting their content.
// A line ends at "\n", "\r\n" or a lone "\r"; an unterminated last line
// counts as a line. It returns the number of lines actually skipped, which
// is less than n only when the input ends first.
func SkipLines(r *bufio.Reader, n int) (int, error) {
	skipped := 0
	inLine := false
	for skipped < n {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			if inLine {
				skipped++
			}
			return skipped, nil
		}
		if err != nil {
			return skipped, err
		}

		switch b {
		case '\n':
			skipped++
			inLine = false
		case '\r':
			skipped++
			inLine = false
			if next, err := r.Peek(1); err == nil && next[0] == '\n' {
				_, _ = r.ReadByte()
			}
		default:
			inLine = true
		}
	}
	return skipped, nil
}
