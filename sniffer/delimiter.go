package sniffer

import "github.com/nao1215/csvtable/domain/model"

// Consistency thresholds, in percent of counted lines.
const (
	thresholdStart = 100
	thresholdFloor = 90
)

// delimiterStats holds per-line occurrence counts of one delimiter outside
// quoted fields.
type delimiterStats struct {
	counts []int
	// total and spaced count all occurrences and those followed by a space.
	total  int
	spaced int
}

// allSpaced reports whether every occurrence is followed by a space.
func (s delimiterStats) allSpaced() bool {
	return s.total > 0 && s.spaced == s.total
}

// consistent reports whether the most frequent non-zero count holds on at
// least pct percent of the lines.
func (s delimiterStats) consistent(pct int) bool {
	if len(s.counts) == 0 {
		return false
	}
	freq := map[int]int{}
	for _, c := range s.counts {
		if c > 0 {
			freq[c]++
		}
	}
	mode, best := 0, 0
	for count, n := range freq {
		if n > best || (n == best && count > mode) {
			mode, best = count, n
		}
	}
	if mode == 0 {
		return false
	}
	return best*100 >= pct*len(s.counts)
}

// guessDelimiter picks the delimiter whose per-line frequency is the most
// consistent. A delimiter suggested by quoted regions wins whenever it passes
// the lowest threshold; otherwise the threshold is lowered one percent at a
// time and the first candidate in preference order that passes wins.
func (s *Sniffer) guessDelimiter(text []rune, hint, quote, escape rune) (rune, delimiterStats, bool) {
	stats := make(map[rune]delimiterStats, len(s.delimiters))
	for _, d := range s.delimiters {
		stats[d] = countDelimiter(text, d, quote, escape, s.complete)
	}

	if st, ok := stats[hint]; ok && hint != model.NoChar && st.consistent(thresholdFloor) {
		return hint, st, true
	}
	for pct := thresholdStart; pct >= thresholdFloor; pct-- {
		for _, d := range s.delimiters {
			if stats[d].consistent(pct) {
				return d, stats[d], true
			}
		}
	}
	return model.NoChar, delimiterStats{}, false
}

// countDelimiter counts delim per logical line of text. A quote char opens a
// quoted field only at the start of a field; line breaks inside it do not end
// the line. Lines without characters are not counted. Unless complete is set,
// an unterminated last line of a text holding more than one line is treated
// as truncated and dropped.
func countDelimiter(text []rune, delim, quote, escape rune, complete bool) delimiterStats {
	var (
		st         delimiterStats
		count      int
		content    bool
		inQuote    bool
		fieldStart = true
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuote {
			switch {
			case escape != model.NoChar && c == escape:
				i++
			case c == quote && i+1 < len(text) && text[i+1] == quote:
				i++
			case c == quote:
				inQuote = false
			}
			continue
		}

		switch {
		case c == '\r' || c == '\n':
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			if content {
				st.counts = append(st.counts, count)
			}
			count, content, fieldStart = 0, false, true
		case c == delim:
			count++
			st.total++
			if i+1 < len(text) && text[i+1] == ' ' && delim != ' ' {
				st.spaced++
			}
			content, fieldStart = true, true
		case c == quote && fieldStart:
			inQuote, content, fieldStart = true, true, false
		case c == ' ' && fieldStart:
			content = true
		default:
			content, fieldStart = true, false
		}
	}

	if content && (complete || len(st.counts) == 0) {
		st.counts = append(st.counts, count)
	}
	return st
}
