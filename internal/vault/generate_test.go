package vault

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword_LengthAndClasses(t *testing.T) {
	opts := DefaultGenerateOptions()
	opts.Length = 20

	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword(opts)
		require.NoError(t, err)
		assert.Len(t, pw, 20)
		assert.True(t, strings.ContainsAny(pw, lowerChars), "missing lowercase: %q", pw)
		assert.True(t, strings.ContainsAny(pw, upperChars), "missing uppercase: %q", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit: %q", pw)
		assert.True(t, strings.ContainsAny(pw, symbolChars), "missing symbol: %q", pw)
	}
}

func TestGeneratePassword_SingleClass(t *testing.T) {
	pw, err := GeneratePassword(GenerateOptions{Length: 4, Digits: true})

	require.NoError(t, err)
	assert.Len(t, pw, 4)
	for _, r := range pw {
		assert.Contains(t, digitChars, string(r))
	}
}

func TestGeneratePassword_Rejections(t *testing.T) {
	_, err := GeneratePassword(GenerateOptions{Length: 3, Lower: true})
	assert.ErrorIs(t, err, ErrLengthTooShort)

	_, err = GeneratePassword(GenerateOptions{Length: 12})
	assert.ErrorIs(t, err, ErrNoClasses)
}
