package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/urlshort/internal/shortener"
)

// RedisCacheRepository wraps a Repository with Redis caching for reads.
// Writes go through to the underlying store first; the cache is only
// populated after the store accepted the insert, so uniqueness checks are
// never answered from the cache alone.
type RedisCacheRepository struct {
	store   shortener.Repository
	client  *redis.Client
	prefix  string // "url:" + code -> mapping hash
	urlsKey string // original url -> code index
	ttl     time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:   store,
		client:  client,
		prefix:  "url:",
		urlsKey: "url_codes",
		ttl:     ttl,
	}
}

// Insert stores a mapping in the underlying store and updates the cache.
func (r *RedisCacheRepository) Insert(ctx context.Context, shortURL *shortener.ShortURL) error {
	if err := r.store.Insert(ctx, shortURL); err != nil {
		return err
	}

	r.cacheURL(ctx, shortURL)

	return nil
}

// GetByCode retrieves a mapping by its code, checking the cache first.
func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	if url, err := r.getFromCache(ctx, code); err == nil {
		return url, nil
	}

	url, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheURL(ctx, url)

	return url, nil
}

// GetByOriginalURL retrieves a mapping by original URL, checking the cached
// index first.
func (r *RedisCacheRepository) GetByOriginalURL(ctx context.Context, originalURL string) (*shortener.ShortURL, error) {
	code, err := r.client.HGet(ctx, r.urlsKey, originalURL).Result()
	if err == nil {
		if url, err := r.getFromCache(ctx, shortener.Code(code)); err == nil {
			return url, nil
		}
	}

	url, err := r.store.GetByOriginalURL(ctx, originalURL)
	if err != nil {
		return nil, err
	}

	r.cacheURL(ctx, url)

	return url, nil
}

// Ping reports the health of the underlying store, which is the authority
// for persisted state.
func (r *RedisCacheRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	var createdAt time.Time

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos).UTC()
		}
	}

	return &shortener.ShortURL{
		Code:        shortener.Code(result["code"]),
		OriginalURL: result["original_url"],
		CreatedAt:   createdAt,
	}, nil
}

func (r *RedisCacheRepository) cacheURL(ctx context.Context, url *shortener.ShortURL) {
	pipe := r.client.Pipeline()
	key := r.prefix + string(url.Code)

	pipe.HSet(ctx, key, map[string]interface{}{
		"code":         string(url.Code),
		"original_url": url.OriginalURL,
		"created_at":   url.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	pipe.HSet(ctx, r.urlsKey, url.OriginalURL, string(url.Code))

	// Cache population is best-effort.
	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
