package analytics

import "time"

// Topics for analytics events.
const (
	TopicURLCreated  = "url.created"
	TopicURLAccessed = "url.accessed"
)

// URLCreatedEvent is emitted when a new short URL mapping is created.
type URLCreatedEvent struct {
	EventID     string    `json:"eventId"`
	Code        string    `json:"code"`
	OriginalURL string    `json:"originalUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}

// URLAccessedEvent is emitted when a short URL is resolved for redirect.
type URLAccessedEvent struct {
	EventID    string    `json:"eventId"`
	Code       string    `json:"code"`
	AccessedAt time.Time `json:"accessedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer"`
}
