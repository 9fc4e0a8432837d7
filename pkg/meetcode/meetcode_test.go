package meetcode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[a-z]{4}-[a-z]{4}-[a-z]{4}$`)

func TestGenerate(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()
		require.Regexp(t, codePattern, code)
	}
}

func TestFallback(t *testing.T) {
	pattern := regexp.MustCompile(`^\d+-[0-9a-f]{8}$`)
	first := Fallback()
	second := Fallback()
	require.Regexp(t, pattern, first)
	require.Regexp(t, pattern, second)
	require.NotEqual(t, first, second)
}

func TestGenerateConsecutiveCallsMatchPattern(t *testing.T) {
	first := Generate()
	second := Generate()
	require.Regexp(t, codePattern, first)
	require.Regexp(t, codePattern, second)
}
