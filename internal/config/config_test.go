package config

import (
	"strings"
	"testing"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dermai")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("expected default port 5000, got %s", cfg.Port)
	}
	if cfg.BlobBackend != "disk" {
		t.Errorf("expected default blob backend disk, got %s", cfg.BlobBackend)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected two default CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestValidate_RequiresAuthSecret(t *testing.T) {
	cfg := &Config{Env: "development", BlobBackend: "disk"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when AUTH_SECRET is missing")
	}
}

func TestValidate_ProductionSecretLength(t *testing.T) {
	cfg := &Config{Env: "production", AuthSecret: "short", BlobBackend: "disk", ModelURL: "http://model"}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "AUTH_SECRET") {
		t.Fatalf("expected short-secret error, got %v", err)
	}
}

func TestValidate_S3BackendNeedsBucket(t *testing.T) {
	cfg := &Config{Env: "development", AuthSecret: "secret", BlobBackend: "s3"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when S3 bucket is missing")
	}
	cfg.S3Bucket = "dermai-docs"
	cfg.S3Region = "us-east-1"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsUnknownBackend(t *testing.T) {
	cfg := &Config{Env: "development", AuthSecret: "secret", BlobBackend: "ftp"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown blob backend")
	}
}
