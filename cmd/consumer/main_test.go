package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	t.Run("reads an integer from the environment", func(t *testing.T) {
		t.Setenv("CONNECT_TIMEOUT", "10")

		assert.Equal(t, 10, getEnvInt("CONNECT_TIMEOUT", 5))
	})

	t.Run("falls back when unset", func(t *testing.T) {
		t.Setenv("CONNECT_TIMEOUT", "")

		assert.Equal(t, 5, getEnvInt("CONNECT_TIMEOUT", 5))
	})

	t.Run("falls back when not an integer", func(t *testing.T) {
		t.Setenv("CONNECT_TIMEOUT", "soon")

		assert.Equal(t, 5, getEnvInt("CONNECT_TIMEOUT", 5))
	})
}
