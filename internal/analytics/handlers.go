package analytics

import "github.com/serroba/urlshort/internal/messaging"

// NewURLCreatedHandler returns a handler persisting created events to the store.
func NewURLCreatedHandler(store Store) messaging.Handler[URLCreatedEvent] {
	return store.SaveURLCreated
}

// NewURLAccessedHandler returns a handler persisting access events to the store.
func NewURLAccessedHandler(store Store) messaging.Handler[URLAccessedEvent] {
	return store.SaveURLAccessed
}
