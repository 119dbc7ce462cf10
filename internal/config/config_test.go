package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("CLIENT_ID", "test-client-id")
	t.Setenv("CLIENT_SECRET", "test-client-secret")
	t.Setenv("REDDIT_PASSWORD", "hunter2")
}

func TestLoad_AllRequiredVarsSet(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ClientID != "test-client-id" {
		t.Errorf("ClientID = %q", cfg.ClientID)
	}
	if cfg.ClientSecret != "test-client-secret" {
		t.Errorf("ClientSecret = %q", cfg.ClientSecret)
	}
	if cfg.Password != "hunter2" {
		t.Errorf("Password = %q", cfg.Password)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Username != "approach_control" {
		t.Errorf("Username = %q, want approach_control", cfg.Username)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
	if cfg.FetchLimit != 10 {
		t.Errorf("FetchLimit = %d, want 10", cfg.FetchLimit)
	}
	if !strings.HasPrefix(cfg.UserAgent, "ApproachControl/") {
		t.Errorf("UserAgent = %q, want ApproachControl/<version>", cfg.UserAgent)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("REDDIT_USERNAME", "test_bot")
	t.Setenv("PORT", "9090")
	t.Setenv("POLL_INTERVAL", "5s")
	t.Setenv("FETCH_LIMIT", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Username != "test_bot" {
		t.Errorf("Username = %q", cfg.Username)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.FetchLimit != 25 {
		t.Errorf("FetchLimit = %d", cfg.FetchLimit)
	}
}

func TestLoad_MissingCredentialsListsAllNames(t *testing.T) {
	t.Setenv("CLIENT_ID", "")
	t.Setenv("CLIENT_SECRET", "")
	t.Setenv("REDDIT_PASSWORD", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	for _, name := range []string{"CLIENT_ID", "CLIENT_SECRET", "REDDIT_PASSWORD"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
}

func TestLoad_InvalidPollInterval(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("POLL_INTERVAL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid POLL_INTERVAL")
	}
}
