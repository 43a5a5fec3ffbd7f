package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GRAPHQL_ENDPOINT", "http://localhost:8080/v1/graphql")
	t.Setenv("GRAPHQL_ADMIN_SECRET", "admin-secret")
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("API_SECRET", "api-secret")
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr default: %q", cfg.Server.Addr)
	}
	if cfg.Session.CookieName != "itemboard_session" {
		t.Fatalf("cookie name default: %q", cfg.Session.CookieName)
	}
	if got := cfg.SessionTTL(); got != 720*time.Hour {
		t.Fatalf("session ttl default: %v", got)
	}
	if cfg.Cache.Kind != "memory" {
		t.Fatalf("cache kind default: %q", cfg.Cache.Kind)
	}
	if string(cfg.SessionSecret) != "session-secret" {
		t.Fatalf("session secret: %q", cfg.SessionSecret)
	}
}

func TestLoad_MissingSecretsListsAllNames(t *testing.T) {
	for _, v := range []string{"GRAPHQL_ENDPOINT", "GRAPHQL_ADMIN_SECRET", "SESSION_SECRET", "API_SECRET"} {
		t.Setenv(v, "")
	}

	_, err := Load("")
	if err == nil {
		t.Fatal("want error when secrets missing")
	}
	for _, v := range []string{"GRAPHQL_ENDPOINT", "GRAPHQL_ADMIN_SECRET", "SESSION_SECRET", "API_SECRET"} {
		if !strings.Contains(err.Error(), v) {
			t.Fatalf("error must name %s, got: %v", v, err)
		}
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_ADDR", ":9999")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  addr: ":8081"
session:
  ttl: "24h"
rate:
  enabled: true
  login:
    limit: 5
    window: "30s"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	// El entorno pisa al YAML.
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("addr: %q", cfg.Server.Addr)
	}
	if got := cfg.SessionTTL(); got != 24*time.Hour {
		t.Fatalf("ttl: %v", got)
	}
	if !cfg.Rate.Enabled || cfg.Rate.Login.Limit != 5 || cfg.LoginRateWindow() != 30*time.Second {
		t.Fatalf("rate block: %+v", cfg.Rate)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL", "30 days")

	if _, err := Load(""); err == nil {
		t.Fatal("want error for invalid duration")
	}
}

func TestLoad_SessionEncKey(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("SESSION_ENC_KEY", "not base64!!")
	if _, err := Load(""); err == nil {
		t.Fatal("want error for invalid base64")
	}

	t.Setenv("SESSION_ENC_KEY", base64.StdEncoding.EncodeToString([]byte("short")))
	if _, err := Load(""); err == nil {
		t.Fatal("want error for wrong key size")
	}

	key := make([]byte, 32)
	t.Setenv("SESSION_ENC_KEY", base64.StdEncoding.EncodeToString(key))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(cfg.SessionEncKey) != 32 {
		t.Fatalf("enc key length: %d", len(cfg.SessionEncKey))
	}
}

func TestLoad_ProdForcesSecureCookie(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Session.Secure {
		t.Fatal("prod must force Secure cookies")
	}
}
