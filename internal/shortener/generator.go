package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the character set short codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultCodeLength is the code length used when none is configured.
const DefaultCodeLength = 6

// GenerateFunc produces a random candidate short code.
type GenerateFunc func() string

// NewGenerator returns a generator producing codes of exactly length
// characters, each drawn uniformly from Alphabet. The underlying source is
// not seedable, so codes are not predictable across runs.
func NewGenerator(length int) (GenerateFunc, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("code generator: %w", err)
	}

	return gen, nil
}
