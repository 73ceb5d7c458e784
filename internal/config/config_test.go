package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":8000" || cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "gestor.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Blob.Driver != "fs" || cfg.Blob.Root != "exports" {
		t.Fatalf("unexpected blob defaults: %+v", cfg.Blob)
	}
	if cfg.Auth.TokenTTL.Std() != 24*time.Hour {
		t.Fatalf("unexpected ttl: %v", cfg.Auth.TokenTTL.Std())
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestor.yaml")
	content := `
listen: ":9000"
database:
  driver: postgres
  dsn: postgres://localhost/gestor
auth:
  secret: file-secret
  token_ttl: 2h
  bcrypt_cost: 12
blob:
  driver: s3
  bucket: exports-bucket
  region: sa-east-1
team_members:
  - Lucas
  - Dani
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":9000" || cfg.Database.Driver != "postgres" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Auth.Secret != "file-secret" || cfg.Auth.TokenTTL.Std() != 2*time.Hour || cfg.Auth.BcryptCost != 12 {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Blob.Bucket != "exports-bucket" || cfg.Blob.Region != "sa-east-1" {
		t.Fatalf("unexpected blob config: %+v", cfg.Blob)
	}
	if len(cfg.TeamMembers) != 2 || cfg.TeamMembers[0] != "Lucas" {
		t.Fatalf("unexpected team: %v", cfg.TeamMembers)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("listen: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GESTOR_LISTEN", ":7000")
	t.Setenv("GESTOR_DB_DRIVER", "memory")
	t.Setenv("GESTOR_AUTH_SECRET", "env-secret")
	t.Setenv("GESTOR_AUTH_TOKEN_TTL", "30m")
	t.Setenv("GESTOR_BLOB_DRIVER", "memory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":7000" || cfg.Database.Driver != "memory" || cfg.Auth.Secret != "env-secret" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Auth.TokenTTL.Std() != 30*time.Minute || cfg.Blob.Driver != "memory" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestEnvMalformedTokenTTLFails(t *testing.T) {
	t.Setenv("GESTOR_AUTH_TOKEN_TTL", "twelve hours")
	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for malformed token ttl")
	}
	if !strings.Contains(err.Error(), "GESTOR_AUTH_TOKEN_TTL") {
		t.Fatalf("error does not name the variable: %v", err)
	}
}

func TestValidateRejectsUnknownDrivers(t *testing.T) {
	t.Setenv("GESTOR_DB_DRIVER", "oracle")
	if _, err := Load(""); err == nil {
		t.Fatal("expected unknown database driver error")
	}
}

func TestValidateS3RequiresBucket(t *testing.T) {
	t.Setenv("GESTOR_BLOB_DRIVER", "s3")
	if _, err := Load(""); err == nil {
		t.Fatal("expected missing bucket error")
	}
}
