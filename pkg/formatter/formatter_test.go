package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		in  int
		out string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
		{-12, "-12"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.out, FormatNumber(testCase.in))
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `hello\_world\! \(1\.5\)`, EscapeMarkdownV2("hello_world! (1.5)"))
	assert.Equal(t, `a\\b`, EscapeMarkdownV2(`a\b`))
	assert.Equal(t, "plain text", EscapeMarkdownV2("plain text"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "héll…", Truncate("héllo wörld", 5))
	assert.Equal(t, "", Truncate("anything", 0))
}
