package shortener_test

import (
	"context"
	"errors"
	"testing"

	"github.com/serroba/urlshort/internal/shortener"
	"github.com/serroba/urlshort/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collidingRepo reports every code as taken and counts lookups.
type collidingRepo struct {
	shortener.Repository
	lookups int
	err     error
}

func (r *collidingRepo) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	r.lookups++

	if r.err != nil {
		return nil, r.err
	}

	return &shortener.ShortURL{Code: code, OriginalURL: "https://example.com"}, nil
}

func staticGenerate(code string) shortener.GenerateFunc {
	return func() string { return code }
}

func TestResolver(t *testing.T) {
	t.Run("returns first unused candidate", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		resolver := shortener.NewResolver(memStore, staticGenerate("aZ3kX9"), 5)

		code, err := resolver.Resolve(context.Background())

		require.NoError(t, err)
		assert.Equal(t, shortener.Code("aZ3kX9"), code)
	})

	t.Run("fails after max attempts when every candidate collides", func(t *testing.T) {
		repo := &collidingRepo{}
		resolver := shortener.NewResolver(repo, staticGenerate("aZ3kX9"), 5)

		_, err := resolver.Resolve(context.Background())

		require.ErrorIs(t, err, shortener.ErrCodeSpaceExhausted)
		assert.Equal(t, 5, repo.lookups, "must not loop beyond max attempts")
	})

	t.Run("propagates store errors", func(t *testing.T) {
		repo := &collidingRepo{err: errors.New("store down")}
		resolver := shortener.NewResolver(repo, staticGenerate("aZ3kX9"), 5)

		_, err := resolver.Resolve(context.Background())

		require.Error(t, err)
		assert.NotErrorIs(t, err, shortener.ErrCodeSpaceExhausted)
		assert.Equal(t, 1, repo.lookups)
	})

	t.Run("falls back to default max attempts", func(t *testing.T) {
		repo := &collidingRepo{}
		resolver := shortener.NewResolver(repo, staticGenerate("aZ3kX9"), 0)

		_, err := resolver.Resolve(context.Background())

		require.ErrorIs(t, err, shortener.ErrCodeSpaceExhausted)
		assert.Equal(t, shortener.DefaultMaxAttempts, repo.lookups)
	})
}
