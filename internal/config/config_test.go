package config

import (
	"os"
	"path/filepath"
	"testing"

	"shareit/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("SHAREIT_DB_PATH", "data/shareit.db")

	yamlContent := `
app:
  name: "shareit-test"
database:
  path: "${SHAREIT_DB_PATH}"
api:
  http:
    port: 9000
  auth:
    enabled: true
    api_keys:
      - key: "k1"
        name: "gateway"
        permissions: ["bookings:write"]
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "data/shareit.db" {
		t.Errorf("expected expanded database path, got %s", cfg.Database.Path)
	}
	if cfg.API.HTTP.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.API.HTTP.Port)
	}
	if len(cfg.API.Auth.APIKeys) != 1 || cfg.API.Auth.APIKeys[0].Name != "gateway" {
		t.Errorf("expected 1 api key for gateway")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Database: DatabaseConfig{Path: "path"}},
			wantErr: false,
		},
		{
			name:    "missing database path",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "backup without storage",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Backup:   BackupConfig{Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "auth without keys",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				API:      APIConfig{Auth: APIAuthConfig{Enabled: true}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.API.HTTP.Port != 8080 {
		t.Errorf("expected default http port 8080, got %d", cfg.API.HTTP.Port)
	}
	if cfg.API.Auth.HeaderAPIKey != "x-api-key" {
		t.Errorf("expected default api key header, got %s", cfg.API.Auth.HeaderAPIKey)
	}
	if cfg.API.UserRateLimit.Requests != models.DefaultUserRateLimit {
		t.Errorf("expected default user rate limit %d, got %d", models.DefaultUserRateLimit, cfg.API.UserRateLimit.Requests)
	}
	if cfg.Monitoring.PrometheusPort != 0 {
		t.Errorf("prometheus port should stay unset while prometheus is disabled")
	}
}

func TestValidateAPIKeys(t *testing.T) {
	tests := []struct {
		name    string
		keys    []APIClientKey
		wantErr bool
	}{
		{
			name:    "Valid keys",
			keys:    []APIClientKey{{Key: "a", Name: "one"}, {Key: "b", Name: "two"}},
			wantErr: false,
		},
		{
			name:    "Duplicate key",
			keys:    []APIClientKey{{Key: "a", Name: "one"}, {Key: "a", Name: "two"}},
			wantErr: true,
		},
		{
			name:    "Empty key",
			keys:    []APIClientKey{{Key: "  ", Name: "blank"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKeys(tt.keys)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPIKeys() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
