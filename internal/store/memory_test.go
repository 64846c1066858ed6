package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/urlshort/internal/shortener"
	"github.com/serroba/urlshort/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMapping(code, url string) *shortener.ShortURL {
	return &shortener.ShortURL{
		Code:        shortener.Code(code),
		OriginalURL: url,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("insert and get by code", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		err := memStore.Insert(ctx, newMapping("abc123", "https://example.com"))
		require.NoError(t, err)

		got, err := memStore.GetByCode(ctx, "abc123")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got.OriginalURL)
	})

	t.Run("get by original url", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		err := memStore.Insert(ctx, newMapping("abc123", "https://example.com"))
		require.NoError(t, err)

		got, err := memStore.GetByOriginalURL(ctx, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, shortener.Code("abc123"), got.Code)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		_, err := memStore.GetByCode(ctx, "missing")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("unknown url is not found", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		_, err := memStore.GetByOriginalURL(ctx, "https://missing.example.com")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("duplicate code is rejected", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		require.NoError(t, memStore.Insert(ctx, newMapping("abc123", "https://one.example.com")))

		err := memStore.Insert(ctx, newMapping("abc123", "https://two.example.com"))

		assert.ErrorIs(t, err, shortener.ErrCodeTaken)
		assert.Equal(t, 1, memStore.Len())
	})

	t.Run("duplicate url is rejected", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		require.NoError(t, memStore.Insert(ctx, newMapping("abc123", "https://example.com")))

		err := memStore.Insert(ctx, newMapping("xyz789", "https://example.com"))

		assert.ErrorIs(t, err, shortener.ErrDuplicateURL)
		assert.Equal(t, 1, memStore.Len())
	})

	t.Run("returned mapping is a copy", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		require.NoError(t, memStore.Insert(ctx, newMapping("abc123", "https://example.com")))

		got, err := memStore.GetByCode(ctx, "abc123")
		require.NoError(t, err)

		got.OriginalURL = "https://mutated.example.com"

		again, err := memStore.GetByCode(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", again.OriginalURL)
	})
}
