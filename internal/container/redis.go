package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

// Redis owns the redis client lifecycle.
type Redis struct {
	Client *redis.Client
}

// Shutdown closes the redis client.
func (r *Redis) Shutdown() error {
	return r.Client.Close()
}

// RedisPackage provides the shared redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Redis, error) {
		options, err := do.Invoke[*Options](i)
		if err != nil {
			return nil, err
		}

		client := redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		})

		return &Redis{Client: client}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		r, err := do.Invoke[*Redis](i)
		if err != nil {
			return nil, err
		}

		return r.Client, nil
	})
}
