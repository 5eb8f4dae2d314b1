package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "AWS_REGION", "REDIS_ADDR", "S3_BUCKET_NAME", "JWT_SECRET", "RATE_RPS", "RATE_BURST"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	if _, err := Load(""); err == nil {
		t.Fatal("Load must fail without a JWT secret")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RateRPS != 20 || cfg.RateBurst != 40 {
		t.Fatalf("rate defaults = %v/%d", cfg.RateRPS, cfg.RateBurst)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: \"9000\"\nredisAddr: \"file-redis:6379\"\njwtSecret: \"file-secret\"\nrateRPS: 5\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "7777")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "7777" {
		t.Fatalf("env PORT override lost, Port = %q", cfg.Port)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Fatalf("env JWT_SECRET override lost")
	}
	if cfg.RedisAddr != "file-redis:6379" {
		t.Fatalf("file value lost, RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.RateRPS != 5 {
		t.Fatalf("file rateRPS lost, got %v", cfg.RateRPS)
	}
	if cfg.AWSRegion != "eu-west-1" {
		t.Fatalf("env AWS_REGION lost, got %q", cfg.AWSRegion)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("missing config file must fall through to env/defaults: %v", err)
	}
}
