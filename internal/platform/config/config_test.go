package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "STORE_BACKEND", "DATABASE_URL",
		"DB_MAX_OPEN_CONNS", "FIREBASE_PROJECT_ID", "FIREBASE_CREDS_BASE64", "FIREBASE_CREDS_FILE",
		"SEED_FILE", "ALLOWED_ORIGINS", "REQUEST_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/rentals?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"postgres without url", map[string]string{}, "DATABASE_URL is required"},
		{"unknown backend", map[string]string{"STORE_BACKEND": "mongo"}, "STORE_BACKEND must be one of"},
		{"firestore without project", map[string]string{"STORE_BACKEND": "firestore"}, "FIREBASE_PROJECT_ID is required"},
		{"firestore without creds", map[string]string{"STORE_BACKEND": "firestore", "FIREBASE_PROJECT_ID": "rentals"}, "FIREBASE_CREDS_BASE64 or FIREBASE_CREDS_FILE"},
		{"memory without seed", map[string]string{"STORE_BACKEND": "memory"}, "SEED_FILE is required"},
		{"bad port", map[string]string{"STORE_BACKEND": "memory", "SEED_FILE": "seed.json", "PORT": "http"}, "PORT failed numeric"},
		{"bad timeout", map[string]string{"REQUEST_TIMEOUT": "soon"}, "parse REQUEST_TIMEOUT"},
		{"bad conns", map[string]string{"DB_MAX_OPEN_CONNS": "lots"}, "parse DB_MAX_OPEN_CONNS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFirebaseCredentialsJSON(t *testing.T) {
	payload := []byte(`{"type":"service_account"}`)

	cfg := Config{FirebaseCredsBase64: base64.StdEncoding.EncodeToString(payload)}
	got, source, err := cfg.FirebaseCredentialsJSON()
	require.NoError(t, err)
	assert.Equal(t, "base64", source)
	assert.Equal(t, payload, got)

	path := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(path, payload, 0o600))
	got, source, err = Config{FirebaseCredsFile: path}.FirebaseCredentialsJSON()
	require.NoError(t, err)
	assert.Equal(t, "file", source)
	assert.Equal(t, payload, got)

	_, _, err = Config{}.FirebaseCredentialsJSON()
	assert.Error(t, err)
}
