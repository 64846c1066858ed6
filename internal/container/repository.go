package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/urlshort/internal/shortener"
	"github.com/serroba/urlshort/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the URL repository (postgres wrapped in a redis
// read cache) and the shortener service built on top of it.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		options, err := do.Invoke[*Options](i)
		if err != nil {
			return nil, err
		}

		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}

		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}

		pg := store.NewPostgresStore(pool)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(options.ConnectTimeout)*time.Second)
		defer cancel()

		if err := pg.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate short_urls: %w", err)
		}

		ttl := time.Duration(options.CacheTTL) * time.Second

		return store.NewRedisCacheRepository(pg, client, ttl), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		options, err := do.Invoke[*Options](i)
		if err != nil {
			return nil, err
		}

		repo, err := do.Invoke[shortener.Repository](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[*zap.Logger](i)
		if err != nil {
			return nil, err
		}

		generate, err := shortener.NewGenerator(options.CodeLength)
		if err != nil {
			return nil, err
		}

		resolver := shortener.NewResolver(repo, generate, options.MaxAttempts)

		return shortener.NewService(repo, resolver, logger), nil
	})
}
