package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/urlshort/internal/ratelimit"
)

// RegisterRoutes registers the URL shortener routes. shortenLimits carries
// the configured rate limits for the shorten endpoint; redirects get a
// relaxed fixed limit for high-traffic reads.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, shortenLimits ratelimit.EndpointConfig) {
	huma.Register(api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Service status",
		Tags:        []string{"Status"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, urlHandler.Status)

	huma.Register(api, huma.Operation{
		OperationID: "shorten-url",
		Method:      http.MethodPost,
		Path:        "/shorten",
		Summary:     "Create short URL",
		Description: "Creates a short code for the URL, or returns the existing mapping with status 200.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: shortenLimits,
		},
	}, urlHandler.Shorten)

	huma.Register(api, huma.Operation{
		OperationID: "redirect-url",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short code.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, urlHandler.Redirect)
}
