package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func testViper(values map[string]any) *viper.Viper {
	v := newViper()
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(newViper())
	if cfg.Addr != ":8080" || cfg.StorageDriver != DriverFile || cfg.StorageKey != "salary-storage" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate, got %v", err)
	}
}

func TestFromViperParsesLists(t *testing.T) {
	cfg := FromViper(testViper(map[string]any{
		"CORS_ALLOWED_ORIGINS": " https://a.example.com, ,https://b.example.com ",
		"STORAGE_DRIVER":       " SQLite ",
	}))
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.StorageDriver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.StorageDriver)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr string
	}{
		{name: "unknown driver", values: map[string]any{"STORAGE_DRIVER": "mongo"}, wantErr: "unknown STORAGE_DRIVER"},
		{name: "postgres without url", values: map[string]any{"STORAGE_DRIVER": "postgres"}, wantErr: "DATABASE_URL"},
		{name: "gcs without bucket", values: map[string]any{"STORAGE_DRIVER": "gcs"}, wantErr: "GCS_BUCKET"},
		{name: "auth without secret", values: map[string]any{"AUTH_REQUIRED": true}, wantErr: "JWT_SECRET"},
		{name: "production memory", values: map[string]any{"APP_ENV": "production", "STORAGE_DRIVER": "memory"}, wantErr: "not durable"},
		{
			name:    "production without encryption",
			values:  map[string]any{"APP_ENV": "production", "AUTH_REQUIRED": true, "JWT_SECRET": "s"},
			wantErr: "DATA_ENCRYPTION_KEY",
		},
		{name: "tiny body limit", values: map[string]any{"MAX_BODY_BYTES": 10}, wantErr: "MAX_BODY_BYTES"},
		{name: "negative rate limit", values: map[string]any{"RATE_LIMIT_PER_MINUTE": -1}, wantErr: "RATE_LIMIT_PER_MINUTE"},
		{name: "redis ok", values: map[string]any{"STORAGE_DRIVER": "redis"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := FromViper(testViper(tc.values)).Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
