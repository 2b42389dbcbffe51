package repository

import (
	"testing"
	"time"

	"goshorturl/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRecord_keeps_link_intact(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 678000000, time.UTC)
	link := &models.ShortLink{
		ID:          "aB3xY9",
		OriginalURL: "https://example.com/page",
		CreatedAt:   now,
		ExpiresAt:   now.Add(30 * 24 * time.Hour),
		Clicks:      7,
	}

	got, err := toHashRecord(link).toShortLink()
	require.NoError(t, err)
	assert.True(t, link.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, link.ExpiresAt.Equal(got.ExpiresAt))
	assert.Equal(t, link.Clicks, got.Clicks)
	assert.Equal(t, link.OriginalURL, got.OriginalURL)
}

func TestHashRecord_rejects_bad_timestamps(t *testing.T) {
	_, err := hashRecord{ID: "aB3xY9", CreatedAt: "yesterday"}.toShortLink()
	assert.Error(t, err)
}

func TestRedisRepository_key(t *testing.T) {
	r := newRedisRepoWithPool(nil, "urlshortenerdb", "urls")
	assert.Equal(t, "urlshortenerdb:urls:aB3xY9", r.key("aB3xY9"))
}
