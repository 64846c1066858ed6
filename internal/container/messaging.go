package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/urlshort/internal/analytics"
	"github.com/serroba/urlshort/internal/messaging"
	"go.uber.org/zap"
)

// PublisherGroupPackage provides the analytics event publisher and the typed
// publish functions the handlers depend on.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.URLCreatedEvent], error) {
		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublishFunc[analytics.URLCreatedEvent](group.Publisher(), analytics.TopicURLCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.URLAccessedEvent], error) {
		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublishFunc[analytics.URLAccessedEvent](group.Publisher(), analytics.TopicURLAccessed), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group used by the
// consumer binary. Events are persisted to postgres when a database is
// configured, otherwise logged.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		options, err := do.Invoke[*Options](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[*zap.Logger](i)
		if err != nil {
			return nil, err
		}

		if options.DatabaseURL == "" {
			return analytics.NewLogStore(logger), nil
		}

		pg, err := do.Invoke[*Postgres](i)
		if err != nil {
			return nil, err
		}

		eventStore := analytics.NewPostgresStore(pg.Pool)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(options.ConnectTimeout)*time.Second)
		defer cancel()

		if err := eventStore.Migrate(ctx); err != nil {
			return nil, err
		}

		return eventStore, nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		options, err := do.Invoke[*Options](i)
		if err != nil {
			return nil, err
		}

		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[*zap.Logger](i)
		if err != nil {
			return nil, err
		}

		eventStore, err := do.Invoke[analytics.Store](i)
		if err != nil {
			return nil, err
		}

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client,
				ConsumerGroup: options.ConsumerGroup,
			},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicURLCreated, analytics.NewURLCreatedHandler(eventStore), logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicURLAccessed, analytics.NewURLAccessedHandler(eventStore), logger))

		return group, nil
	})
}
