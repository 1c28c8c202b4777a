package shortener

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesFreshCodes(t *testing.T) {
	seen := map[string]bool{}
	exists := func(code string) (bool, error) { return seen[code], nil }

	for i := 0; i < 200; i++ {
		code, err := Generate(8, 32, exists)
		require.NoError(t, err)
		assert.Len(t, code, 8)
		assert.False(t, seen[code], "code %q repeated", code)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r))
		}
		seen[code] = true
	}
}

func TestGenerateExhaustsAfterCap(t *testing.T) {
	calls := 0
	exists := func(string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := Generate(8, 5, exists)
	assert.ErrorIs(t, err, ErrGenerationExhausted)
	assert.Equal(t, 5, calls)
}

func TestNormalizeAlias(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" my link ", "my-link"},
		{"my/link", "my-link"},
		{`my\link`, "my-link"},
		{"plain", "plain"},
		{"  spaced  out  ", "spaced--out"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAlias(tt.in), "input %q", tt.in)
	}
	assert.NotContains(t, NormalizeAlias(" a b/c "), " ")
	assert.False(t, strings.ContainsAny(NormalizeAlias("x/y z"), " /\\"))
}
