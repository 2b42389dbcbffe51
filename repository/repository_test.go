package repository

import (
	"context"
	"testing"

	"goshorturl/config"

	"github.com/stretchr/testify/assert"
)

func TestOpen(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		repo, err := Open(context.Background(), BackendMemory, config.Credentials{}, "db", "urls")
		assert.NoError(t, err)
		_, ok := repo.(ClickIncrementer)
		assert.True(t, ok)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open(context.Background(), "sqlite", config.Credentials{}, "db", "urls")
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}
