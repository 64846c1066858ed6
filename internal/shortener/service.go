package shortener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// insertRetries is how many times Shorten regenerates after losing a
// check-then-insert race on the code unique constraint.
const insertRetries = 2

// Service orchestrates shortening and resolution of URLs.
type Service struct {
	repo     Repository
	resolver *Resolver
	logger   *zap.Logger
}

// NewService creates a new shortener service.
func NewService(repo Repository, resolver *Resolver, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// ParseURL validates that rawURL is a well-formed absolute URL. Any failure
// is reported uniformly as ErrInvalidURL.
func ParseURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty url", ErrInvalidURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, err)
	}

	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: not an absolute url", ErrInvalidURL)
	}

	return u, nil
}

// Shorten returns the mapping for rawURL, creating one if none exists.
// The second return value reports whether a new mapping was created, so
// callers can distinguish "created" from "found existing".
func (s *Service) Shorten(ctx context.Context, rawURL string) (*ShortURL, bool, error) {
	if _, err := ParseURL(rawURL); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByOriginalURL(ctx, rawURL)
	if err == nil {
		return existing, false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, false, fmt.Errorf("look up original url: %w", err)
	}

	for attempt := 0; attempt <= insertRetries; attempt++ {
		code, err := s.resolver.Resolve(ctx)
		if err != nil {
			return nil, false, err
		}

		shortURL := &ShortURL{
			Code:        code,
			OriginalURL: rawURL,
			CreatedAt:   time.Now().UTC(),
		}

		err = s.repo.Insert(ctx, shortURL)
		if err == nil {
			return shortURL, true, nil
		}

		if errors.Is(err, ErrCodeTaken) {
			s.logger.Warn("short code collided on insert, regenerating",
				zap.String("code", string(code)),
				zap.Int("attempt", attempt+1),
			)

			continue
		}

		if errors.Is(err, ErrDuplicateURL) {
			// Lost the race to another request shortening the same URL.
			existing, err = s.repo.GetByOriginalURL(ctx, rawURL)
			if err != nil {
				return nil, false, fmt.Errorf("read concurrently created mapping: %w", err)
			}

			return existing, false, nil
		}

		return nil, false, fmt.Errorf("insert mapping: %w", err)
	}

	return nil, false, ErrCodeSpaceExhausted
}

// Resolve returns the original URL mapping for a code, or ErrNotFound.
func (s *Service) Resolve(ctx context.Context, code Code) (*ShortURL, error) {
	shortURL, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("look up code: %w", err)
	}

	return shortURL, nil
}
