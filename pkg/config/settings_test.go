package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "kindred", cfg.Namespace)
	assert.Equal(t, MediumFile, cfg.Medium)
	assert.Equal(t, PersistImmediate, cfg.Persistence)
	assert.Equal(t, 500*time.Millisecond, cfg.FlushInterval)
	assert.Equal(t, "normal", cfg.Verbosity)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NoError(t, cfg.Validate())
}

func TestKey(t *testing.T) {
	cfg := Default()
	cfg.Namespace = "52pct"

	assert.Equal(t, "52pct-db-v1", cfg.Key("db-v1"))
	assert.Equal(t, "52pct-active", cfg.Key("active"))
	assert.Equal(t, "52pct-sparkles", cfg.Key("sparkles"))
}

func TestLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default().Namespace, cfg.Namespace)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, MediumFile, cfg.Medium)
	})

	t.Run("partial file keeps defaults for unset fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kindred.yaml")
		content := "namespace: journal\nmedium: sqlite\nflush_interval: 2s\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "journal", cfg.Namespace)
		assert.Equal(t, MediumSQLite, cfg.Medium)
		assert.Equal(t, 2*time.Second, cfg.FlushInterval)
		assert.Equal(t, PersistImmediate, cfg.Persistence)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("namespace: [unterminated"), 0600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kindred.yaml")
	cfg := Default()
	cfg.Namespace = "roundtrip"
	cfg.Persistence = PersistDeferred
	cfg.DataDir = "/tmp/kindred-data"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown medium",
			mutate:  func(c *Config) { c.Medium = "redis" },
			wantErr: "medium must be one of: file sqlite memory",
		},
		{
			name:    "unknown persistence",
			mutate:  func(c *Config) { c.Persistence = "eventually" },
			wantErr: "persistence must be one of",
		},
		{
			name:    "empty namespace",
			mutate:  func(c *Config) { c.Namespace = "" },
			wantErr: "namespace is required",
		},
		{
			name:    "namespace with separator",
			mutate:  func(c *Config) { c.Namespace = "a/b" },
			wantErr: "namespace must not contain path separators",
		},
		{
			name:    "negative flush interval",
			mutate:  func(c *Config) { c.FlushInterval = -time.Second },
			wantErr: "flushinterval must not be negative",
		},
		{
			name:    "unknown verbosity",
			mutate:  func(c *Config) { c.Verbosity = "loud" },
			wantErr: "verbosity must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
