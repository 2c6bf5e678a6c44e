package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Minimum HMAC-SHA256 key length accepted for signing tokens.
const minSecretLength = 16

// Config is the root configuration. Values come from an optional YAML file
// and can be overridden by environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	Logging  LoggingConfig  `yaml:"logging"`
	Seed     SeedConfig     `yaml:"seed"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

// DatabaseConfig selects the gorm dialector. Driver is one of sqlite,
// postgres or mysql.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// AuthConfig controls token issuance and validation.
type AuthConfig struct {
	JWTSecret            string        `yaml:"jwt_secret"`
	TokenTTL             time.Duration `yaml:"token_ttl"`
	ClockSkew            time.Duration `yaml:"clock_skew"`
	Role                 string        `yaml:"role"`
	VerifyPasswords      bool          `yaml:"verify_passwords"`
	RequireAuthForWrites bool          `yaml:"require_auth_for_writes"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SeedConfig controls the demo data initializer. No user row is seeded
// unless AdminPassword is set.
type SeedConfig struct {
	Enabled       bool   `yaml:"enabled"`
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the configuration used when neither file nor environment
// provides a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3000,
			Mode: "release",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "bagoloot.db",
		},
		Auth: AuthConfig{
			TokenTTL:  24 * time.Hour,
			ClockSkew: 5 * time.Minute,
			Role:      "Administrator",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Seed: SeedConfig{
			Enabled:       true,
			AdminUsername: "admin",
		},
	}
}

// Load reads the YAML file at path (a missing file is not an error), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.Mode = v
	}

	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		c.Auth.TokenTTL = d
	}
	if v := os.Getenv("CLOCK_SKEW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CLOCK_SKEW %q: %w", v, err)
		}
		c.Auth.ClockSkew = d
	}
	if v, ok := os.LookupEnv("JWT_ROLE"); ok {
		c.Auth.Role = v
	}
	if err := envBool("VERIFY_PASSWORDS", &c.Auth.VerifyPasswords); err != nil {
		return err
	}
	if err := envBool("REQUIRE_AUTH_FOR_WRITES", &c.Auth.RequireAuthForWrites); err != nil {
		return err
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, origin := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		c.CORS.AllowedOrigins = origins
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}

	if err := envBool("SEED_DATABASE", &c.Seed.Enabled); err != nil {
		return err
	}
	if v := os.Getenv("SEED_ADMIN_USERNAME"); v != "" {
		c.Seed.AdminUsername = v
	}
	if v := os.Getenv("SEED_ADMIN_PASSWORD"); v != "" {
		c.Seed.AdminPassword = v
	}

	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if len(c.Auth.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.ClockSkew < 0 {
		return fmt.Errorf("clock_skew must not be negative, got %s", c.Auth.ClockSkew)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is empty")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("at least one allowed origin is required")
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("allowed origin %q must start with http:// or https://", origin)
		}
	}

	return nil
}
