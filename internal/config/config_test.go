package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.TalentAPI.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected base url %q", cfg.TalentAPI.BaseURL)
	}
	if cfg.TalentAPI.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.TalentAPI.Timeout)
	}
	if cfg.BillingPlan != "free" {
		t.Fatalf("unexpected plan %q", cfg.BillingPlan)
	}
	if cfg.SessionTTL != 30*time.Minute || cfg.MaxSessions != 10000 {
		t.Fatalf("unexpected session bounds %s/%d", cfg.SessionTTL, cfg.MaxSessions)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talent.yaml")
	body := "PORT: \"9000\"\nLOG_LEVEL: debug\nTALENT_API_TIMEOUT: 3s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Fatalf("expected env port, got %q", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected file log level, got %q", cfg.LogLevel)
	}
	if cfg.TalentAPI.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.TalentAPI.Timeout)
	}
}

func TestValidateReportsAllMissing(t *testing.T) {
	var cfg Config
	cfg.TalentAPI.BaseURL = DefaultBaseURL
	cfg.TalentAPI.Timeout = time.Second
	cfg.Neo4j.URI = "neo4j://localhost:7687"
	cfg.Gmail.CredentialsPath = "credentials.json"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"NEO4J_USERNAME", "NEO4J_PASSWORD", "GMAIL_TOKEN_PATH", "GMAIL_SENDER"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %q", want, err.Error())
		}
	}
}

func TestValidateRejectsUnboundedSessions(t *testing.T) {
	var cfg Config
	cfg.TalentAPI.BaseURL = DefaultBaseURL
	cfg.TalentAPI.Timeout = time.Second
	cfg.SessionTTL = 0
	cfg.MaxSessions = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"SESSION_TTL", "MAX_SESSIONS"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %q", want, err.Error())
		}
	}

	cfg.SessionTTL = time.Minute
	cfg.MaxSessions = 10
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
