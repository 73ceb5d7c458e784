// Package config loads the portal configuration from a YAML file with
// GESTOR_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Database selects and configures the persistence backend.
type Database struct {
	// Driver is one of sqlite, postgres, memory. Defaults to sqlite.
	Driver string `yaml:"driver"`
	// DSN is the postgres connection string or the sqlite file path.
	DSN string `yaml:"dsn"`
}

// Duration parses yaml duration strings like "24h".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts to time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Auth configures token issuance.
type Auth struct {
	Secret     string   `yaml:"secret"`
	TokenTTL   Duration `yaml:"token_ttl"`
	BcryptCost int      `yaml:"bcrypt_cost"`
}

// Blob configures the export artifact store.
type Blob struct {
	// Driver is one of fs, s3, memory. Defaults to fs.
	Driver string `yaml:"driver"`
	// Root is the filesystem directory for the fs driver.
	Root string `yaml:"root"`
	// Bucket, Region and Endpoint configure the s3 driver. Endpoint is
	// optional and used for MinIO-style deployments.
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// Config is the full portal configuration.
type Config struct {
	Listen      string   `yaml:"listen"`
	Database    Database `yaml:"database"`
	Auth        Auth     `yaml:"auth"`
	Blob        Blob     `yaml:"blob"`
	TeamMembers []string `yaml:"team_members"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen: ":8000",
		Database: Database{
			Driver: "sqlite",
			DSN:    "gestor.db",
		},
		Auth: Auth{
			TokenTTL: Duration(24 * time.Hour),
		},
		Blob: Blob{
			Driver: "fs",
			Root:   "exports",
		},
	}
}

// Load reads path (when non-empty), applies environment overrides, and
// validates the result. A missing file falls back to defaults; a malformed
// one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to env overrides
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("GESTOR_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("GESTOR_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("GESTOR_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("GESTOR_AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("GESTOR_AUTH_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GESTOR_AUTH_TOKEN_TTL %q: %w", v, err)
		}
		cfg.Auth.TokenTTL = Duration(ttl)
	}
	if v := os.Getenv("GESTOR_BLOB_DRIVER"); v != "" {
		cfg.Blob.Driver = v
	}
	if v := os.Getenv("GESTOR_BLOB_ROOT"); v != "" {
		cfg.Blob.Root = v
	}
	if v := os.Getenv("GESTOR_BLOB_BUCKET"); v != "" {
		cfg.Blob.Bucket = v
	}
	if v := os.Getenv("GESTOR_BLOB_REGION"); v != "" {
		cfg.Blob.Region = v
	}
	if v := os.Getenv("GESTOR_BLOB_ENDPOINT"); v != "" {
		cfg.Blob.Endpoint = v
	}
	return nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	switch c.Blob.Driver {
	case "fs", "s3", "memory":
	default:
		return fmt.Errorf("unknown blob driver %q", c.Blob.Driver)
	}
	if c.Blob.Driver == "s3" && c.Blob.Bucket == "" {
		return errors.New("blob driver s3 requires a bucket")
	}
	return nil
}
