// Package natsort implements natural string ordering for tag names and
// report listings: runs of digits compare numerically, everything else
// compares lexicographically, so "TAG2" sorts before "TAG10".
package natsort

import (
	"cmp"
	"slices"
	"strconv"
	"unicode"
)

// segment is a maximal run of digits or of non-digits within a string.
type segment struct {
	isNumber bool
	number   uint64 // valid only if isNumber
	text     string
}

// split cuts s into alternating digit and non-digit segments.
func split(s string) []segment {
	var segs []segment
	start := 0
	runes := []rune(s)
	for start < len(runes) {
		end := start
		digits := unicode.IsDigit(runes[start])
		for end < len(runes) && unicode.IsDigit(runes[end]) == digits {
			end++
		}
		text := string(runes[start:end])
		seg := segment{text: text}
		if digits {
			// Digit runs longer than a uint64 fall back to text compare.
			if n, err := strconv.ParseUint(text, 10, 64); err == nil {
				seg.isNumber = true
				seg.number = n
			}
		}
		segs = append(segs, seg)
		start = end
	}
	return segs
}

// compareSegments orders two segments. Numeric segments sort before
// textual ones; numeric pairs compare by value, textual pairs by bytes.
func compareSegments(a, b segment) int {
	if a.isNumber != b.isNumber {
		if a.isNumber {
			return -1
		}
		return 1
	}
	if a.isNumber {
		return cmp.Compare(a.number, b.number)
	}
	return cmp.Compare(a.text, b.text)
}

// Compare returns -1, 0, or 1 ordering a against b naturally.
func Compare(a, b string) int {
	sa, sb := split(a), split(b)
	for i := 0; i < min(len(sa), len(sb)); i++ {
		if c := compareSegments(sa[i], sb[i]); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(len(sa), len(sb)); c != 0 {
		return c
	}
	// Equal segment-wise; fall back to bytes so "01" and "1" stay distinct.
	return cmp.Compare(a, b)
}

// Less reports whether a orders before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort orders strings in ascending natural order.
func Sort(strs []string) {
	slices.SortFunc(strs, Compare)
}

// Sorted returns a sorted copy, leaving the input untouched.
func Sorted(strs []string) []string {
	out := slices.Clone(strs)
	Sort(out)
	return out
}
