package vault

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?"
)

var (
	ErrLengthTooShort = errors.New("vault: password length must be at least 4")
	ErrNoClasses      = errors.New("vault: at least one character class is required")
)

// GenerateOptions selects the character classes; every enabled class is
// guaranteed present in the output.
type GenerateOptions struct {
	Length  int
	Lower   bool
	Upper   bool
	Digits  bool
	Symbols bool
}

func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Length: 16, Lower: true, Upper: true, Digits: true, Symbols: true}
}

// GeneratePassword draws from crypto/rand over the enabled classes, places
// one character of each class first and shuffles the result.
func GeneratePassword(opts GenerateOptions) (string, error) {
	if opts.Length < 4 {
		return "", ErrLengthTooShort
	}

	var classes []string
	if opts.Lower {
		classes = append(classes, lowerChars)
	}
	if opts.Upper {
		classes = append(classes, upperChars)
	}
	if opts.Digits {
		classes = append(classes, digitChars)
	}
	if opts.Symbols {
		classes = append(classes, symbolChars)
	}
	if len(classes) == 0 {
		return "", ErrNoClasses
	}
	if opts.Length < len(classes) {
		return "", ErrLengthTooShort
	}

	pool := ""
	out := make([]byte, 0, opts.Length)
	for _, class := range classes {
		pool += class
		c, err := randByte(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < opts.Length {
		c, err := randByte(pool)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates so the required characters don't cluster at the front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func randByte(set string) (byte, error) {
	i, err := randInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
