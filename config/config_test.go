package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		envs     map[string]string
		expected Credentials
		wantErr  bool
	}{
		{
			"plain file",
			"COSMOS_ENDPOINT=https://acct.documents.azure.com:443/\nCOSMOS_KEY=abc==\n",
			nil,
			Credentials{Endpoint: "https://acct.documents.azure.com:443/", Key: "abc=="},
			false,
		},
		{
			"plain file wins over environment",
			"COSMOS_ENDPOINT=from-file\nCOSMOS_KEY=file-key\n",
			map[string]string{EndpointKey: "from-env", SecretKey: "env-key"},
			Credentials{Endpoint: "from-file", Key: "file-key"},
			false,
		},
		{
			"incomplete file falls back to environment",
			"COSMOS_ENDPOINT=from-file\n",
			map[string]string{EndpointKey: "from-env", SecretKey: "env-key"},
			Credentials{Endpoint: "from-env", Key: "env-key"},
			false,
		},
		{
			"quoted values fall through to dotenv",
			"COSMOS_ENDPOINT=\"https://acct.example\"\nexport COSMOS_KEY='secret' # comment\n",
			nil,
			Credentials{Endpoint: "https://acct.example", Key: "secret"},
			false,
		},
		{
			"nothing available",
			"OTHER=1\n",
			nil,
			Credentials{},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EndpointKey, "")
			t.Setenv(SecretKey, "")
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			path := writeEnvFile(t, tt.file)

			got, err := LoadCredentials(path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfig)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoadCredentials_missing_file_uses_environment(t *testing.T) {
	t.Setenv(EndpointKey, "https://acct.example")
	t.Setenv(SecretKey, "key")

	got, err := LoadCredentials(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
	assert.Equal(t, Credentials{Endpoint: "https://acct.example", Key: "key"}, got)
}

func TestProcess_defaults(t *testing.T) {
	env, err := Process()
	require.NoError(t, err)

	assert.Equal(t, 8000, env.AppPort)
	assert.Equal(t, "cosmos", env.StoreBackend)
	assert.Equal(t, "urlshortenerdb", env.DBName)
	assert.Equal(t, "urls", env.DBContainer)
	assert.Equal(t, 30*time.Second, env.RequestTimeout)
	assert.False(t, env.AtomicClicks)
	assert.False(t, env.Production())
}
