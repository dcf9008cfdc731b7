// Package normalize rewrites raw problem text into the solver's grammar.
//
// Normalize folds unicode, symbol words and list markers into a string made
// of digits, + - * / ^ ( ) . and whitespace whenever the input allows it.
// ExtractCandidate picks the most expression-like line of multi-line text.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxPasses bounds the fixpoint loop in Normalize. Every rewrite only
// removes or canonicalizes text, so two passes are enough in practice.
const maxPasses = 8

var (
	bulletPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*[•·▪◦\-–—]\s+`),
		regexp.MustCompile(`^\s*\(?\d+[).]\s+`),
		regexp.MustCompile(`^\s*\(?[A-Za-z][).]\s+`),
		regexp.MustCompile(`^\s*[.:]+\s+`),
	}

	wordPatterns = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`(?i)\bover\b`), "/"},
		{regexp.MustCompile(`(?i)\bplus\b`), "+"},
		{regexp.MustCompile(`(?i)\bminus\b`), "-"},
		{regexp.MustCompile(`(?i)\btimes\b|\bmultiplied\s+by\b`), "*"},
		{regexp.MustCompile(`(?i)\bdivided\s+by\b`), "/"},
	}

	trailingEquals = regexp.MustCompile(`\s*=\s*\?*\s*$`)
	mixedNumber    = regexp.MustCompile(`(^|[^\d.])(\d+)\s+(\d+)\s*/\s*(\d+)\b`)
	operatorSpace  = regexp.MustCompile(`\s*([-+*/^()=])\s*`)
	spaceRun       = regexp.MustCompile(`\s+`)
)

// unicodeFolds run before NFKC: NFKC would turn ½ into "1⁄2" and ² into
// "2", both of which change the arithmetic.
var unicodeFolds = strings.NewReplacer(
	"½", " 1/2", "⅓", " 1/3", "⅔", " 2/3", "¼", " 1/4", "¾", " 3/4",
	"⅕", " 1/5", "⅛", " 1/8", "⅜", " 3/8", "⅝", " 5/8", "⅞", " 7/8",
	"⁰", "^0", "¹", "^1", "²", "^2", "³", "^3", "⁴", "^4",
	"⁵", "^5", "⁶", "^6", "⁷", "^7", "⁸", "^8", "⁹", "^9",
	"⁄", "/",
)

// symbols maps bracket, operator and dash variants onto the grammar.
// The variable-preserving form leaves lowercase x alone.
var (
	symbols = strings.NewReplacer(
		"\r", "", "\u00a0", " ",
		"[", "(", "{", "(", "]", ")", "}", ")",
		"×", "*", "✕", "*", "⋅", "*", "x", "*", "X", "*",
		"÷", "/",
		"–", "-", "—", "-", "−", "-",
	)
	equationSymbols = strings.NewReplacer(
		"\r", "", "\u00a0", " ",
		"[", "(", "{", "(", "]", ")", "}", ")",
		"×", "*", "✕", "*", "⋅", "*", "X", "*",
		"÷", "/",
		"–", "-", "—", "-", "−", "-",
	)
)

// Normalize returns the canonical arithmetic form of text. It is
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	return fixpoint(text, symbols)
}

// NormalizeEquation is Normalize without the x -> * rewrite, so a
// lowercase x survives as the equation variable.
func NormalizeEquation(text string) string {
	return fixpoint(text, equationSymbols)
}

func fixpoint(text string, sym *strings.Replacer) string {
	cur := text
	for range maxPasses {
		next := normalizeOnce(cur, sym)
		if next == cur {
			break
		}
		cur = next
	}
	return cur
}

func normalizeOnce(s string, sym *strings.Replacer) string {
	s = StripBullets(s)
	s = norm.NFKC.String(unicodeFolds.Replace(s))
	s = sym.Replace(s)
	for _, w := range wordPatterns {
		s = w.re.ReplaceAllString(s, w.repl)
	}
	s = trailingEquals.ReplaceAllString(s, "")
	s = removeThousandsCommas(s)
	s = mixedNumber.ReplaceAllString(s, "${1}(${2}+(${3}/${4}))")
	s = operatorSpace.ReplaceAllString(s, "${1}")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripBullets removes leading list markers: bullets, "1." / "(2)" / "a)"
// enumerations and stray leading dots or colons. Stacked markers are all
// removed.
func StripBullets(s string) string {
	for {
		prev := s
		for _, re := range bulletPatterns {
			s = re.ReplaceAllString(s, "")
		}
		if s == prev {
			return s
		}
	}
}

// removeThousandsCommas drops a comma only between a digit and exactly
// three digits that are followed by a non-digit or the end, so "1,234,567"
// loses both commas while "3,14159" is left alone.
func removeThousandsCommas(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && i > 0 && isASCIIDigit(s[i-1]) && groupOfThree(s, i+1) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func groupOfThree(s string, at int) bool {
	if at+3 > len(s) {
		return false
	}
	for i := at; i < at+3; i++ {
		if !isASCIIDigit(s[i]) {
			return false
		}
	}
	return at+3 == len(s) || !isASCIIDigit(s[at+3])
}

// IsClean reports whether s is non-empty and uses only the arithmetic
// alphabet.
func IsClean(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isASCIIDigit(c) || strings.IndexByte("+-*/^(). \t\n\r\f\v", c) >= 0 {
			continue
		}
		return false
	}
	return true
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
