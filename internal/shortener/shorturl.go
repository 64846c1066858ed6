package shortener

import "time"

// Code represents a short URL code.
type Code string

// ShortURL represents a shortened URL mapping.
// OriginalURL and CreatedAt are immutable once the mapping is persisted.
type ShortURL struct {
	Code        Code
	OriginalURL string
	CreatedAt   time.Time
}
