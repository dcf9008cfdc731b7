package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "2 + 3 * 4", "2+3*4"},
		{"mixed number", "1 2/3 + 1", "(1+(2/3))+1"},
		{"multiplication glyphs", "3 × 4 ✕ 5 ⋅ 6", "3*4*5*6"},
		{"letter x", "7 x 8", "7*8"},
		{"upper X", "7X8", "7*8"},
		{"division glyph", "12 ÷ 4", "12/4"},
		{"dashes", "9 – 3 — 1 − 2", "9-3-1-2"},
		{"brackets", "[2 + {3}] * 4", "(2+(3))*4"},
		{"words", "6 Times 7 plus 1 minus 2", "6*7+1-2"},
		{"multiplied by", "6 multiplied  by 7", "6*7"},
		{"divided by", "20 divided by 5 over 2", "20/5/2"},
		{"trailing equals", "3 + 4 =", "3+4"},
		{"trailing equals question", "3 + 4 = ?", "3+4"},
		{"trailing equals no space", "3+4=", "3+4"},
		{"inner equals kept", "3+4=7", "3+4=7"},
		{"thousands commas", "1,234,567 + 1", "1234567+1"},
		{"decimal-like comma kept", "3,14159", "3,14159"},
		{"four digit group kept", "1,2345", "1,2345"},
		{"bullet", "• 5 + 5", "5+5"},
		{"dash bullet", "- 5 + 3", "5+3"},
		{"leading sign kept", "-5 + 3", "-5+3"},
		{"numbered", "1) 8 / 2", "8/2"},
		{"parenthesized number", "(2) 8 / 2", "8/2"},
		{"lettered", "b. 2 ^ 3", "2^3"},
		{"stacked markers", "a) 1. 4 - 1", "4-1"},
		{"nbsp", "2\u00a0+\u00a02", "2+2"},
		{"carriage return", "2 + 2\r", "2+2"},
		{"fullwidth digits", "３ + ４", "3+4"},
		{"vulgar fraction", "1½ + 1", "(1+(1/2))+1"},
		{"superscript", "5² - 1", "5^2-1"},
		{"keeps unknown text", "what is love", "what is love"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"1 2/3 + 1",
		"3 + 4 ==",
		"1,000. 5",
		"a. b. 3 + 4",
		"minus 5",
		"12 3/4 x 2",
		"1.5 2/3",
		"½",
		"Please solve: 6 times 7 = ?",
		"(1] 5",
		"  - 7 + 2  ",
		"2x + 3 = 11",
		"1,234,5678",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := Normalize(in)
			assert.Equal(t, once, Normalize(once))

			eq := NormalizeEquation(in)
			assert.Equal(t, eq, NormalizeEquation(eq))
		})
	}
}

func TestNormalizeEquationKeepsVariable(t *testing.T) {
	assert.Equal(t, "2x+3=11", NormalizeEquation("2x + 3 = 11"))
	assert.Equal(t, "-x-4=10", NormalizeEquation("−x – 4 = 10"))
	assert.Equal(t, "2*+3=11", NormalizeEquation("2X + 3 = 11"))
	assert.Equal(t, "2*+3=11", Normalize("2x + 3 = 11"))
}

func TestIsClean(t *testing.T) {
	assert.True(t, IsClean("(1+(2/3))+1"))
	assert.True(t, IsClean("3 4"))
	assert.True(t, IsClean("()"))
	assert.False(t, IsClean(""))
	assert.False(t, IsClean("3+4=7"))
	assert.False(t, IsClean("what is 2+2"))
}

func TestExtractCandidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "picks the arithmetic line",
			input: "Please solve this problem.\n3+4=\nGood luck!",
			want:  "3+4=",
		},
		{
			name:  "shortest wins",
			input: "What is 12 + 30 - 4 in total (show work)?\n12+30-4",
			want:  "12+30-4",
		},
		{
			name:  "tie goes to first",
			input: "1+2\n3+4",
			want:  "1+2",
		},
		{
			name:  "bullets stripped",
			input: "Homework\n• 6 x 7\n- 100 ÷ 5 + 20",
			want:  "6 x 7",
		},
		{
			name:  "upper X counts as operator",
			input: "Total\n4 X 5",
			want:  "4 X 5",
		},
		{
			name:  "no qualifying line falls back to first",
			input: "Convert 5 km to m\nthanks",
			want:  "Convert 5 km to m",
		},
		{
			name:  "crlf",
			input: "intro\r\n8 / 2\r\n",
			want:  "8 / 2",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCandidate(tt.input))
		})
	}
}
