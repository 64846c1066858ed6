package analytics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const eventSchema = `
	CREATE TABLE IF NOT EXISTS url_created_events (
		event_id     TEXT        PRIMARY KEY,
		code         TEXT        NOT NULL,
		original_url TEXT        NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		client_ip    TEXT        NOT NULL DEFAULT '',
		user_agent   TEXT        NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS url_access_events (
		event_id    TEXT        PRIMARY KEY,
		code        TEXT        NOT NULL,
		accessed_at TIMESTAMPTZ NOT NULL,
		client_ip   TEXT        NOT NULL DEFAULT '',
		user_agent  TEXT        NOT NULL DEFAULT '',
		referrer    TEXT        NOT NULL DEFAULT ''
	)
`

// PostgresStore persists analytics events to PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed analytics store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the event tables.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, eventSchema); err != nil {
		return fmt.Errorf("create analytics tables: %w", err)
	}

	return nil
}

func (p *PostgresStore) SaveURLCreated(ctx context.Context, event *URLCreatedEvent) error {
	query := `
		INSERT INTO url_created_events (event_id, code, original_url, created_at, client_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Code,
		event.OriginalURL,
		event.CreatedAt,
		event.ClientIP,
		event.UserAgent,
	)

	return err
}

func (p *PostgresStore) SaveURLAccessed(ctx context.Context, event *URLAccessedEvent) error {
	query := `
		INSERT INTO url_access_events (event_id, code, accessed_at, client_ip, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Code,
		event.AccessedAt,
		event.ClientIP,
		event.UserAgent,
		event.Referrer,
	)

	return err
}

// Compile-time check.
var _ Store = (*PostgresStore)(nil)
