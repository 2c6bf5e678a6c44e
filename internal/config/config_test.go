package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "a-test-secret-that-is-long-enough"

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %s, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.ClockSkew != 5*time.Minute {
		t.Errorf("ClockSkew = %s, want 5m", cfg.Auth.ClockSkew)
	}
	if cfg.Auth.Role != "Administrator" {
		t.Errorf("Role = %q, want Administrator", cfg.Auth.Role)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:8080" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Seed.Enabled {
		t.Error("Seed.Enabled should default to true")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
server:
  port: 8081
database:
  driver: postgres
  dsn: "host=localhost dbname=loot"
auth:
  jwt_secret: "file-secret-0123456789"
  token_ttl: 2h
  clock_skew: 30s
  role: ""
cors:
  allowed_origins:
    - https://santa.example
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8081 {
		t.Errorf("Port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %s, want 2h", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.ClockSkew != 30*time.Second {
		t.Errorf("ClockSkew = %s, want 30s", cfg.Auth.ClockSkew)
	}
	if cfg.Auth.Role != "" {
		t.Errorf("Role = %q, want empty", cfg.Auth.Role)
	}
	if cfg.CORS.AllowedOrigins[0] != "https://santa.example" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, `
server:
  port: 8081
auth:
  jwt_secret: "file-secret-0123456789"
`)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("VERIFY_PASSWORDS", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("SEED_DATABASE", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != testSecret {
		t.Errorf("JWTSecret = %q, want env value", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %s, want 1h", cfg.Auth.TokenTTL)
	}
	if !cfg.Auth.VerifyPasswords {
		t.Error("VerifyPasswords should be true")
	}
	if got := strings.Join(cfg.CORS.AllowedOrigins, "|"); got != "http://a.example|http://b.example" {
		t.Errorf("AllowedOrigins = %q", got)
	}
	if cfg.Seed.Enabled {
		t.Error("Seed.Enabled should be false")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET is not set"},
		{"short secret", map[string]string{"JWT_SECRET": "short"}, "at least 16 bytes"},
		{"bad driver", map[string]string{"JWT_SECRET": testSecret, "DB_DRIVER": "oracle"}, "unsupported database driver"},
		{"bad port", map[string]string{"JWT_SECRET": testSecret, "PORT": "abc"}, "invalid PORT"},
		{"bad ttl", map[string]string{"JWT_SECRET": testSecret, "TOKEN_TTL": "forever"}, "invalid TOKEN_TTL"},
		{"bad bool", map[string]string{"JWT_SECRET": testSecret, "VERIFY_PASSWORDS": "maybe"}, "invalid VERIFY_PASSWORDS"},
		{"bad origin", map[string]string{"JWT_SECRET": testSecret, "ALLOWED_ORIGINS": "localhost:8080"}, "must start with http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 3000}
	if got := s.Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q", got)
	}
}
