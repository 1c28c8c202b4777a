package shortener

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Base-36 alphabet, matching the shape of codes users already have bookmarked.
const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var alphabetLen = big.NewInt(int64(len(codeAlphabet)))

// randomCode returns a random base-36 string of the given length.
func randomCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[idx.Int64()])
	}
	return b.String(), nil
}

// Generate samples random codes until exists reports one as free. The retry
// count is capped so a saturated code space surfaces ErrGenerationExhausted
// instead of spinning forever.
func Generate(length, maxAttempts int, exists func(code string) (bool, error)) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code, err := randomCode(length)
		if err != nil {
			return "", err
		}
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrGenerationExhausted
}

var aliasReplacer = strings.NewReplacer(" ", "-", "/", "-", "\\", "-")

// NormalizeAlias trims surrounding whitespace and replaces spaces and path
// separators with dashes, so the alias is safe to use as a path segment.
func NormalizeAlias(alias string) string {
	return aliasReplacer.Replace(strings.TrimSpace(alias))
}
