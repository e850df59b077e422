package sniffer

import (
	"unicode"

	"github.com/nao1215/csvtable/domain/model"
)

// quoteEvidence is what quoted regions of a sample tell about the dialect.
type quoteEvidence struct {
	// quote is the most frequent quote char, or model.NoChar.
	quote rune
	// delimiter is the most frequent character flanking quoted regions, or
	// model.NoChar when no region was flanked by a candidate.
	delimiter rune
	// doubled is set when a region of the winning quote char contains a
	// doubled quote.
	doubled bool
	// escaped is set when a region of the winning quote char contains a
	// backslash-escaped quote.
	escaped bool
}

type quoteTally struct {
	regions int
	doubled bool
	escaped bool
	delims  map[rune]int
}

// guessQuote scans text for regions opened and closed by '"' or '\''. A
// region counts when each side is either a line boundary or a delimiter-like
// character, and both sides agree when both are characters. A single space
// between the left delimiter and the quote is allowed.
func guessQuote(text []rune, candidates []rune) quoteEvidence {
	allowed := make(map[rune]bool, len(candidates))
	for _, c := range candidates {
		allowed[c] = true
	}

	tallies := map[rune]*quoteTally{}
	for i := 0; i < len(text); i++ {
		q := text[i]
		if q != '"' && q != '\'' {
			continue
		}

		left, ok := leftFlank(text, i)
		if !ok {
			continue
		}
		end, doubled, escaped, ok := closingQuote(text, i)
		if !ok {
			continue
		}
		right, ok := rightFlank(text, end)
		if !ok {
			continue
		}

		delim := left
		switch {
		case left == model.NoChar:
			delim = right
		case right != model.NoChar && right != left:
			continue
		}
		if delim != model.NoChar && !allowed[delim] {
			continue
		}

		t := tallies[q]
		if t == nil {
			t = &quoteTally{delims: map[rune]int{}}
			tallies[q] = t
		}
		t.regions++
		t.doubled = t.doubled || doubled
		t.escaped = t.escaped || escaped
		if delim != model.NoChar {
			t.delims[delim]++
		}
		i = end
	}

	var ev quoteEvidence
	best := 0
	for _, q := range []rune{'"', '\''} {
		if t := tallies[q]; t != nil && t.regions > best {
			best = t.regions
			ev.quote = q
		}
	}
	if ev.quote == model.NoChar {
		return ev
	}

	t := tallies[ev.quote]
	ev.doubled = t.doubled
	ev.escaped = t.escaped
	best = 0
	for _, c := range candidates {
		if n := t.delims[c]; n > best {
			best = n
			ev.delimiter = c
		}
	}
	return ev
}

// leftFlank returns what precedes the quote at i: model.NoChar for a line
// boundary, or the delimiter-like character.
func leftFlank(text []rune, i int) (rune, bool) {
	if i == 0 || isLineBreak(text[i-1]) {
		return model.NoChar, true
	}
	p := text[i-1]
	if p == ' ' && i >= 2 && text[i-2] != ' ' && isDelimiterLike(text[i-2]) {
		return text[i-2], true
	}
	if isDelimiterLike(p) {
		return p, true
	}
	return model.NoChar, false
}

// rightFlank returns what follows the closing quote at end.
func rightFlank(text []rune, end int) (rune, bool) {
	if end+1 == len(text) || isLineBreak(text[end+1]) {
		return model.NoChar, true
	}
	if n := text[end+1]; isDelimiterLike(n) {
		return n, true
	}
	return model.NoChar, false
}

// closingQuote finds the quote closing the region opened at start. Doubled
// quotes and backslash-escaped quotes stay inside the region.
func closingQuote(text []rune, start int) (end int, doubled, escaped, ok bool) {
	q := text[start]
	for k := start + 1; k < len(text); k++ {
		switch {
		case text[k] == '\\' && k+1 < len(text) && text[k+1] == q:
			escaped = true
			k++
		case text[k] == q && k+1 < len(text) && text[k+1] == q:
			doubled = true
			k++
		case text[k] == q:
			return k, doubled, escaped, true
		}
	}
	return 0, false, false, false
}

func isDelimiterLike(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' &&
		!isLineBreak(r) && r != '"' && r != '\''
}

func isLineBreak(r rune) bool {
	return r == '\r' || r == '\n'
}
