package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do"
)

// Postgres owns the connection pool lifecycle.
type Postgres struct {
	Pool *pgxpool.Pool
}

// Shutdown closes the connection pool.
func (p *Postgres) Shutdown() error {
	p.Pool.Close()

	return nil
}

// PostgresPackage provides the shared connection pool. The pool is created
// and pinged with a bounded timeout; a store that cannot be reached at
// startup fails the process rather than serving traffic without it.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Postgres, error) {
		options, err := do.Invoke[*Options](i)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(options.ConnectTimeout)*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, options.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()

			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		return &Postgres{Pool: pool}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		p, err := do.Invoke[*Postgres](i)
		if err != nil {
			return nil, err
		}

		return p.Pool, nil
	})
}
