package shortener_test

import (
	"context"
	"errors"
	"testing"

	"github.com/serroba/urlshort/internal/shortener"
	"github.com/serroba/urlshort/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testURL = "https://example.com/a"

var errStore = errors.New("store error")

// racingRepo scripts Insert outcomes to simulate check-then-insert races.
// missURLLookups makes the first N dedup lookups miss, as if a concurrent
// request inserted the same URL between the lookup and the insert.
type racingRepo struct {
	*store.MemoryStore
	insertErrs     []error
	inserts        int
	missURLLookups int
}

func (r *racingRepo) GetByOriginalURL(ctx context.Context, originalURL string) (*shortener.ShortURL, error) {
	if r.missURLLookups > 0 {
		r.missURLLookups--

		return nil, shortener.ErrNotFound
	}

	return r.MemoryStore.GetByOriginalURL(ctx, originalURL)
}

func (r *racingRepo) Insert(ctx context.Context, shortURL *shortener.ShortURL) error {
	r.inserts++

	if len(r.insertErrs) > 0 {
		err := r.insertErrs[0]
		r.insertErrs = r.insertErrs[1:]

		if err != nil {
			return err
		}
	}

	return r.MemoryStore.Insert(ctx, shortURL)
}

func newTestService(t *testing.T, repo shortener.Repository) *shortener.Service {
	t.Helper()

	generate, err := shortener.NewGenerator(6)
	require.NoError(t, err)

	resolver := shortener.NewResolver(repo, generate, 5)

	return shortener.NewService(repo, resolver, zap.NewNop())
}

func TestServiceShorten(t *testing.T) {
	t.Run("creates a new mapping", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		service := newTestService(t, memStore)

		shortURL, created, err := service.Shorten(context.Background(), testURL)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Len(t, string(shortURL.Code), 6)
		assert.Equal(t, testURL, shortURL.OriginalURL)
		assert.False(t, shortURL.CreatedAt.IsZero())
	})

	t.Run("repeated shorten returns the existing mapping", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		service := newTestService(t, memStore)

		first, created, err := service.Shorten(context.Background(), testURL)
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := service.Shorten(context.Background(), testURL)

		require.NoError(t, err)
		assert.False(t, created, "second shorten must report found, not created")
		assert.Equal(t, first.Code, second.Code)
		assert.Equal(t, 1, memStore.Len())
	})

	t.Run("rejects invalid input without creating a record", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		service := newTestService(t, memStore)

		for _, input := range []string{"", "not-a-url", "/relative/path", "://missing-scheme"} {
			_, _, err := service.Shorten(context.Background(), input)

			assert.ErrorIs(t, err, shortener.ErrInvalidURL, "input %q", input)
		}

		assert.Equal(t, 0, memStore.Len())
	})

	t.Run("retries generation when the insert loses the code race", func(t *testing.T) {
		repo := &racingRepo{
			MemoryStore: store.NewMemoryStore(),
			insertErrs:  []error{shortener.ErrCodeTaken, nil},
		}
		service := newTestService(t, repo)

		shortURL, created, err := service.Shorten(context.Background(), testURL)

		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, shortURL.Code)
		assert.Equal(t, 2, repo.inserts)
	})

	t.Run("returns existing mapping when the url race is lost", func(t *testing.T) {
		repo := &racingRepo{
			MemoryStore:    store.NewMemoryStore(),
			insertErrs:     []error{shortener.ErrDuplicateURL},
			missURLLookups: 1,
		}

		// The concurrent winner's mapping, invisible to the first lookup.
		winner := &shortener.ShortURL{Code: "winner", OriginalURL: testURL}
		require.NoError(t, repo.MemoryStore.Insert(context.Background(), winner))

		service := newTestService(t, repo)

		shortURL, created, err := service.Shorten(context.Background(), testURL)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, shortener.Code("winner"), shortURL.Code)
	})

	t.Run("gives up after repeated code conflicts", func(t *testing.T) {
		repo := &racingRepo{
			MemoryStore: store.NewMemoryStore(),
			insertErrs:  []error{shortener.ErrCodeTaken, shortener.ErrCodeTaken, shortener.ErrCodeTaken},
		}
		service := newTestService(t, repo)

		_, _, err := service.Shorten(context.Background(), testURL)

		require.ErrorIs(t, err, shortener.ErrCodeSpaceExhausted)
		assert.Equal(t, 3, repo.inserts)
	})

	t.Run("propagates other store errors", func(t *testing.T) {
		repo := &racingRepo{
			MemoryStore: store.NewMemoryStore(),
			insertErrs:  []error{errStore},
		}
		service := newTestService(t, repo)

		_, _, err := service.Shorten(context.Background(), testURL)

		require.ErrorIs(t, err, errStore)
	})
}

func TestServiceResolve(t *testing.T) {
	t.Run("round trip returns the original url", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		service := newTestService(t, memStore)

		shortURL, _, err := service.Shorten(context.Background(), testURL)
		require.NoError(t, err)

		resolved, err := service.Resolve(context.Background(), shortURL.Code)

		require.NoError(t, err)
		assert.Equal(t, testURL, resolved.OriginalURL)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		service := newTestService(t, memStore)

		_, err := service.Resolve(context.Background(), "doesnotexist")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestParseURL(t *testing.T) {
	t.Run("accepts absolute urls", func(t *testing.T) {
		u, err := shortener.ParseURL("https://example.com/path?q=1")

		require.NoError(t, err)
		assert.Equal(t, "example.com", u.Host)
	})

	t.Run("rejects non-absolute urls", func(t *testing.T) {
		for _, input := range []string{"", "example.com/path", "mailto:"} {
			_, err := shortener.ParseURL(input)

			assert.ErrorIs(t, err, shortener.ErrInvalidURL, "input %q", input)
		}
	})
}
