package shortener

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	seen := make(map[byte]bool)
	for i := 0; i < 10000; i++ {
		id := Generate()
		assert.Len(t, id, totalLetters)
		assert.NoError(t, Validate(id))
		for j := 0; j < len(id); j++ {
			seen[id[j]] = true
		}
	}
	// 60000 draws from 62 symbols leave none unseen in practice
	assert.Len(t, seen, len(encodedChars))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{
			"Valid id",
			"aaaaaa",
			false,
		},
		{
			"Valid id from generator",
			Generate(),
			false,
		},
		{
			"empty id",
			"",
			true,
		},
		{
			"id too short",
			strings.Repeat("a", totalLetters-1),
			true,
		},
		{
			"id too long",
			strings.Repeat("a", totalLetters+1),
			true,
		},
		{
			"id contains invalid chars (!)",
			"!" + strings.Repeat("a", totalLetters-1),
			true,
		},
		{
			"id contains invalid chars (%)",
			"%" + strings.Repeat("a", totalLetters-1),
			true,
		},
		{
			"id contains multi-byte chars",
			"é" + strings.Repeat("a", totalLetters-2),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.id); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
