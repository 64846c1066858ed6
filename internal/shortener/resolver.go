package shortener

import (
	"context"
	"errors"
	"fmt"
)

// DefaultMaxAttempts bounds the collision retry loop. Low enough to fail
// fast against a pathological store, high enough to absorb transient
// collisions under normal load.
const DefaultMaxAttempts = 5

// Resolver produces short codes that are unused at the time of checking.
//
// The existence check is an optimization to reduce insert retries, not a
// reservation: two concurrent requests can still race on the same code
// between the check and the insert. The store's unique constraint remains
// the authoritative guard.
type Resolver struct {
	repo        Repository
	generate    GenerateFunc
	maxAttempts int
}

// NewResolver creates a resolver. maxAttempts values below 1 fall back to
// DefaultMaxAttempts.
func NewResolver(repo Repository, generate GenerateFunc, maxAttempts int) *Resolver {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Resolver{
		repo:        repo,
		generate:    generate,
		maxAttempts: maxAttempts,
	}
}

// Resolve returns a candidate code with no existing mapping, or
// ErrCodeSpaceExhausted after maxAttempts collisions.
func (r *Resolver) Resolve(ctx context.Context) (Code, error) {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		candidate := Code(r.generate())

		_, err := r.repo.GetByCode(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			return candidate, nil
		}

		if err != nil {
			return "", fmt.Errorf("check candidate code: %w", err)
		}
	}

	return "", ErrCodeSpaceExhausted
}
