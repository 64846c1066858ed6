package handlers_test

import (
	"context"
	"errors"

	"github.com/serroba/urlshort/internal/shortener"
)

var errMock = errors.New("mock store error")

// mockStore is a scriptable shortener.Repository for error paths.
type mockStore struct {
	insertErr  error
	getCodeErr error
	getURLErr  error
}

func (m *mockStore) Insert(_ context.Context, _ *shortener.ShortURL) error {
	return m.insertErr
}

func (m *mockStore) GetByCode(_ context.Context, _ shortener.Code) (*shortener.ShortURL, error) {
	if m.getCodeErr != nil {
		return nil, m.getCodeErr
	}

	return nil, shortener.ErrNotFound
}

func (m *mockStore) GetByOriginalURL(_ context.Context, _ string) (*shortener.ShortURL, error) {
	if m.getURLErr != nil {
		return nil, m.getURLErr
	}

	return nil, shortener.ErrNotFound
}

func (m *mockStore) Ping(_ context.Context) error {
	return nil
}
