package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// operatorChars are the characters that mark a line as arithmetic,
// compared against the lowercased line.
const operatorChars = "+-*/^()x×÷"

// ExtractCandidate returns the shortest line (after bullet stripping) that
// contains both a digit and an operator character. Ties go to the earliest
// line. When no line qualifies the first line is returned verbatim.
func ExtractCandidate(text string) string {
	lines := strings.Split(text, "\n")

	best := ""
	bestLen := -1
	for _, raw := range lines {
		line := StripBullets(strings.TrimSpace(raw))
		if !containsDigit(line) || !strings.ContainsAny(strings.ToLower(line), operatorChars) {
			continue
		}
		if n := utf8.RuneCountInString(line); bestLen < 0 || n < bestLen {
			best, bestLen = line, n
		}
	}
	if bestLen >= 0 {
		return best
	}
	return strings.TrimSuffix(lines[0], "\r")
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
