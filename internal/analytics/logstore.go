package analytics

import (
	"context"

	"go.uber.org/zap"
)

// LogStore is an analytics.Store that only logs events. Used when no
// database is configured for the consumer.
type LogStore struct {
	logger *zap.Logger
}

// NewLogStore creates a new log-backed analytics store.
func NewLogStore(logger *zap.Logger) *LogStore {
	return &LogStore{logger: logger}
}

func (s *LogStore) SaveURLCreated(_ context.Context, event *URLCreatedEvent) error {
	s.logger.Info("url created",
		zap.String("code", event.Code),
		zap.String("originalUrl", event.OriginalURL),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (s *LogStore) SaveURLAccessed(_ context.Context, event *URLAccessedEvent) error {
	s.logger.Info("url accessed",
		zap.String("code", event.Code),
		zap.Time("accessedAt", event.AccessedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

// Compile-time check.
var _ Store = (*LogStore)(nil)
