package shortener

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no mapping exists for a code or URL.
var ErrNotFound = errors.New("url not found")

// ErrInvalidURL is returned when the input is empty or not an absolute URL.
var ErrInvalidURL = errors.New("invalid url")

// ErrCodeTaken is returned by Insert when the generated code lost the race
// against a concurrent insert. The store's unique constraint is the
// authority on code uniqueness; callers should regenerate and retry.
var ErrCodeTaken = errors.New("short code already taken")

// ErrDuplicateURL is returned by Insert when the original URL was shortened
// concurrently. Callers should re-read and return the existing mapping.
var ErrDuplicateURL = errors.New("original url already shortened")

// ErrCodeSpaceExhausted is returned when no unused code could be found
// within the configured number of attempts.
var ErrCodeSpaceExhausted = errors.New("could not find an unused short code")

// Repository defines the persistence contract for short URL mappings.
type Repository interface {
	// Insert persists a new mapping. It returns ErrCodeTaken or
	// ErrDuplicateURL when the corresponding unique constraint is violated.
	Insert(ctx context.Context, shortURL *ShortURL) error

	// GetByCode returns the mapping for a code, or ErrNotFound.
	GetByCode(ctx context.Context, code Code) (*ShortURL, error)

	// GetByOriginalURL returns the mapping for an exact original URL
	// match, or ErrNotFound.
	GetByOriginalURL(ctx context.Context, originalURL string) (*ShortURL, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
