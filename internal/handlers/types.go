package handlers

import "time"

// ShortenRequest is the request for creating a short URL. The field is
// optional and nullable at the schema level so missing or null input reaches
// URL validation and gets a 400 instead of a schema 422.
type ShortenRequest struct {
	Body struct {
		OriginalURL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"originalUrl,omitempty" nullable:"true"`
	}
}

// ShortenResponse is the response for a shorten request. Status is 201 when
// a new mapping was created and 200 when the URL was already shortened.
type ShortenResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		ShortURL    string    `doc:"The full short URL"           example:"http://localhost:4000/aZ3kX9" json:"shortUrl"`
		OriginalURL string    `doc:"The original URL"             example:"https://example.com/very/long/path" json:"originalUrl"`
		CreatedAt   time.Time `doc:"When the mapping was created" json:"createdAt"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aZ3kX9" path:"code"`
}

// RedirectResponse is a 302 redirect to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// StatusResponse is the service banner returned from the root path.
type StatusResponse struct {
	Body struct {
		Status  string `doc:"Service status" json:"status"`
		Service string `doc:"Service name"   json:"service"`
	}
}
