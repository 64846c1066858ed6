package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/urlshort/internal/ratelimit"
	"github.com/serroba/urlshort/internal/store"
)

// RateLimitPackage provides the rate limit store. Redis-backed so stateless
// replicas behind a load balancer share counters.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}

		return store.NewRateLimitRedisStore(client), nil
	})
}
