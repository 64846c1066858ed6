package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/urlshort/internal/analytics"
	"github.com/serroba/urlshort/internal/messaging"
	"github.com/serroba/urlshort/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service            *shortener.Service
	baseURL            string
	publishURLCreated  messaging.Publish[analytics.URLCreatedEvent]
	publishURLAccessed messaging.Publish[analytics.URLAccessedEvent]
	logger             *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service *shortener.Service,
	baseURL string,
	publishURLCreated messaging.Publish[analytics.URLCreatedEvent],
	publishURLAccessed messaging.Publish[analytics.URLAccessedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:            service,
		baseURL:            baseURL,
		publishURLCreated:  publishURLCreated,
		publishURLAccessed: publishURLAccessed,
		logger:             logger,
	}
}

// Shorten creates a short URL, or returns the existing mapping when the URL
// was shortened before. The status code distinguishes the two: 201 for a new
// mapping, 200 for an existing one.
func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	shortURL, created, err := h.service.Shorten(ctx, req.Body.OriginalURL)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrInvalidURL):
			return nil, huma.Error400BadRequest("originalUrl must be a valid absolute URL")
		case errors.Is(err, shortener.ErrCodeSpaceExhausted):
			// Capacity signal: the code space is too contended at the
			// configured length.
			h.logger.Error("short code generation exhausted", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to save URL")
		default:
			h.logger.Error("failed to shorten url", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to save URL")
		}
	}

	if created {
		meta := RequestMetaFromContext(ctx)
		event := &analytics.URLCreatedEvent{
			EventID:     uuid.NewString(),
			Code:        string(shortURL.Code),
			OriginalURL: shortURL.OriginalURL,
			CreatedAt:   shortURL.CreatedAt,
			ClientIP:    meta.ClientIP,
			UserAgent:   meta.UserAgent,
		}

		if err := h.publishURLCreated(event); err != nil {
			h.logger.Error("failed to publish created event",
				zap.String("code", event.Code),
				zap.Error(err),
			)
		}
	}

	resp := &ShortenResponse{Status: http.StatusOK}
	if created {
		resp.Status = http.StatusCreated
	}

	fullShortURL := fmt.Sprintf("%s/%s", h.baseURL, shortURL.Code)
	resp.Headers.Location = fullShortURL
	resp.Body.ShortURL = fullShortURL
	resp.Body.OriginalURL = shortURL.OriginalURL
	resp.Body.CreatedAt = shortURL.CreatedAt

	return resp, nil
}

// Redirect resolves a short code and redirects to the original URL.
func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	shortURL, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("URL not found")
		}

		h.logger.Error("failed to resolve code",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to resolve URL")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLAccessedEvent{
		EventID:    uuid.NewString(),
		Code:       req.Code,
		AccessedAt: time.Now().UTC(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err = h.publishURLAccessed(event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	// 302, not 301: codes are not contractually permanent.
	resp := &RedirectResponse{Status: http.StatusFound}
	resp.Headers.Location = shortURL.OriginalURL

	return resp, nil
}

// Status returns the service banner.
func (h *URLHandler) Status(_ context.Context, _ *struct{}) (*StatusResponse, error) {
	resp := &StatusResponse{}
	resp.Body.Status = "ok"
	resp.Body.Service = "url shortener"

	return resp, nil
}
