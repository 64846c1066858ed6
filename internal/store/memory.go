package store

import (
	"context"
	"sync"

	"github.com/serroba/urlshort/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository. It
// enforces the same uniqueness semantics as the postgres store.
type MemoryStore struct {
	mu     sync.RWMutex
	byCode map[shortener.Code]shortener.ShortURL
	byURL  map[string]shortener.Code
}

// NewMemoryStore creates a new in-memory URL store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode: make(map[shortener.Code]shortener.ShortURL),
		byURL:  make(map[string]shortener.Code),
	}
}

func (m *MemoryStore) Insert(_ context.Context, shortURL *shortener.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byCode[shortURL.Code]; ok {
		return shortener.ErrCodeTaken
	}

	if _, ok := m.byURL[shortURL.OriginalURL]; ok {
		return shortener.ErrDuplicateURL
	}

	m.byCode[shortURL.Code] = *shortURL
	m.byURL[shortURL.OriginalURL] = shortURL.Code

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	url, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &url, nil
}

func (m *MemoryStore) GetByOriginalURL(_ context.Context, originalURL string) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code, ok := m.byURL[originalURL]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	url := m.byCode[code]

	return &url, nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Len reports the number of stored mappings.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byCode)
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
