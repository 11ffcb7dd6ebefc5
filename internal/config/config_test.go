package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"port": 9090,
		"database_url": "postgres://localhost:5432/onboard",
		"snapshot_dir": "/var/lib/onboard/snapshots",
		"gemini_api_key": "gm-key"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/onboard", cfg.DatabaseURL)
	assert.Equal(t, "/var/lib/onboard/snapshots", cfg.SnapshotDir)
	assert.Equal(t, "gm-key", cfg.GeminiAPIKey)
	assert.Empty(t, cfg.SearchAPIKey)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFromEnvFillsEmptyFields(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-host:5432/onboard")
	t.Setenv("SNAPSHOT_DIR", "/tmp/snapshots")
	t.Setenv("SEARCH_API_KEY", "env-search-key")
	t.Setenv("SEARCH_CX", "env-cx")

	cfg := &Config{DatabaseURL: "postgres://file-host:5432/onboard"}
	cfg.FromEnv()

	// File values win over environment values.
	assert.Equal(t, "postgres://file-host:5432/onboard", cfg.DatabaseURL)
	assert.Equal(t, "/tmp/snapshots", cfg.SnapshotDir)
	assert.Equal(t, "env-search-key", cfg.SearchAPIKey)
	assert.Equal(t, "env-cx", cfg.SearchCX)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "Valid minimal",
			cfg:  Config{Port: 8080, DatabaseURL: "postgres://localhost/onboard"},
		},
		{
			name: "Valid with search pair",
			cfg: Config{
				Port:         8080,
				DatabaseURL:  "postgres://localhost/onboard",
				SearchAPIKey: "key",
				SearchCX:     "cx",
			},
		},
		{
			name:    "Port out of range",
			cfg:     Config{Port: 70000, DatabaseURL: "postgres://localhost/onboard"},
			wantErr: "'port' out of range",
		},
		{
			name:    "Missing database URL",
			cfg:     Config{Port: 8080},
			wantErr: "'database_url' is required",
		},
		{
			name:    "Search key without engine ID",
			cfg:     Config{Port: 8080, DatabaseURL: "postgres://localhost/onboard", SearchAPIKey: "key"},
			wantErr: "must be set together",
		},
		{
			name:    "Engine ID without search key",
			cfg:     Config{Port: 8080, DatabaseURL: "postgres://localhost/onboard", SearchCX: "cx"},
			wantErr: "must be set together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
