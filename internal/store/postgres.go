package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/urlshort/internal/shortener"
)

const (
	codeConstraint        = "short_urls_pkey"
	originalURLConstraint = "short_urls_original_url_key"
)

const schema = `
	CREATE TABLE IF NOT EXISTS short_urls (
		code         TEXT        NOT NULL,
		original_url TEXT        NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		CONSTRAINT short_urls_pkey PRIMARY KEY (code),
		CONSTRAINT short_urls_original_url_key UNIQUE (original_url)
	)
`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the short_urls table and its unique constraints.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create short_urls table: %w", err)
	}

	return nil
}

func (p *PostgresStore) Insert(ctx context.Context, shortURL *shortener.ShortURL) error {
	query := `
		INSERT INTO short_urls (code, original_url, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := p.pool.Exec(ctx, query,
		string(shortURL.Code),
		shortURL.OriginalURL,
		shortURL.CreatedAt,
	)
	if err != nil {
		return translateUniqueViolation(err)
	}

	return nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	query := `
		SELECT code, original_url, created_at
		FROM short_urls
		WHERE code = $1
	`

	return p.queryOne(ctx, query, string(code))
}

func (p *PostgresStore) GetByOriginalURL(ctx context.Context, originalURL string) (*shortener.ShortURL, error) {
	query := `
		SELECT code, original_url, created_at
		FROM short_urls
		WHERE original_url = $1
	`

	return p.queryOne(ctx, query, originalURL)
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresStore) queryOne(ctx context.Context, query string, arg any) (*shortener.ShortURL, error) {
	var url shortener.ShortURL

	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&url.Code,
		&url.OriginalURL,
		&url.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &url, nil
}

// translateUniqueViolation maps a unique constraint violation to the domain
// sentinel for the constraint that was hit.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case codeConstraint:
		return shortener.ErrCodeTaken
	case originalURLConstraint:
		return shortener.ErrDuplicateURL
	default:
		return err
	}
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
