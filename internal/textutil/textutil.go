// Package textutil provides small text helpers shared by the parser,
// loader, and reporting code.
package textutil

import "strings"

// SplitLines splits text into physical lines. Both "\n" and "\r\n"
// terminators are accepted; terminators are not part of the result.
// An empty input yields a single empty line, matching the behavior of
// splitting on "\n".
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// JoinWords joins already-tokenized words with single spaces.
func JoinWords(words []string) string {
	return strings.Join(words, " ")
}

// Ellipsis shortens s to at most max runes for log output, appending
// "..." when truncation happened. max values below 4 are treated as 4.
func Ellipsis(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
