package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Database.Driver != "mongo" {
		t.Errorf("Database.Driver = %q, want mongo", cfg.Database.Driver)
	}
	if cfg.JWT.Expiration != time.Hour {
		t.Errorf("JWT.Expiration = %v, want 1h", cfg.JWT.Expiration)
	}
	if cfg.Client.Timeout != 10*time.Second {
		t.Errorf("Client.Timeout = %v, want 10s", cfg.Client.Timeout)
	}
	if cfg.S3.Enabled() {
		t.Error("S3 should be disabled without a bucket")
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  address: \":9090\"\ndatabase:\n  driver: memory\njwt:\n  secret: from-file\n  expiration: 30m\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("CLIENT_BASE_URL", "http://catalog.test")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("Database.Driver = %q, want memory", cfg.Database.Driver)
	}
	if cfg.JWT.Secret != "from-env" {
		t.Errorf("JWT.Secret = %q, env should win over file", cfg.JWT.Secret)
	}
	if cfg.JWT.Expiration != 30*time.Minute {
		t.Errorf("JWT.Expiration = %v, want 30m", cfg.JWT.Expiration)
	}
	if cfg.Client.BaseURL != "http://catalog.test" {
		t.Errorf("Client.BaseURL = %q", cfg.Client.BaseURL)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("S3_BUCKET_NAME=exports\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("S3_BUCKET_NAME") })

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.S3.BucketName != "exports" || !cfg.S3.Enabled() {
		t.Errorf("S3.BucketName = %q, want exports from .env", cfg.S3.BucketName)
	}
}
