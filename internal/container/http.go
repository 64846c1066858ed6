package container

import (
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/urlshort/internal/analytics"
	"github.com/serroba/urlshort/internal/handlers"
	"github.com/serroba/urlshort/internal/health"
	"github.com/serroba/urlshort/internal/messaging"
	"github.com/serroba/urlshort/internal/middleware"
	"github.com/serroba/urlshort/internal/ratelimit"
	"github.com/serroba/urlshort/internal/shortener"
	"go.uber.org/zap"
)

// defaultLimits applies to operations that declare no rate limit metadata.
var defaultLimits = []ratelimit.LimitConfig{
	{Window: time.Minute, Max: 300},
}

// HTTPPackage provides the router and the API with all routes and
// middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		options, err := do.Invoke[*Options](i)
		if err != nil {
			return nil, err
		}

		router := chi.NewMux()
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{options.AllowedOrigin},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options, err := do.Invoke[*Options](i)
		if err != nil {
			return nil, err
		}

		router, err := do.Invoke[*chi.Mux](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[*zap.Logger](i)
		if err != nil {
			return nil, err
		}

		service, err := do.Invoke[*shortener.Service](i)
		if err != nil {
			return nil, err
		}

		limitStore, err := do.Invoke[ratelimit.Store](i)
		if err != nil {
			return nil, err
		}

		publishCreated, err := do.Invoke[messaging.Publish[analytics.URLCreatedEvent]](i)
		if err != nil {
			return nil, err
		}

		publishAccessed, err := do.Invoke[messaging.Publish[analytics.URLAccessedEvent]](i)
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

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.EndpointRateLimiter(api, limitStore, defaultLimits, logger),
		)

		baseURL := options.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d", options.Port)
		}

		urlHandler := handlers.NewURLHandler(service, baseURL, publishCreated, publishAccessed, logger)

		shortenLimits := ratelimit.EndpointConfig{
			Limits: []ratelimit.LimitConfig{
				{
					Window: time.Duration(options.RateLimitWindow) * time.Second,
					Max:    int64(options.RateLimitMax),
				},
			},
		}

		handlers.RegisterRoutes(api, urlHandler, shortenLimits)
		health.RegisterRoutes(api, health.NewHandler(pool, health.NewRedisChecker(client)))

		return api, nil
	})
}
