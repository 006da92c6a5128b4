package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxPDFSize != 10<<20 {
		t.Errorf("MaxPDFSize = %d, want %d", cfg.MaxPDFSize, 10<<20)
	}
	if cfg.MinTextLength != 100 {
		t.Errorf("MinTextLength = %d, want 100", cfg.MinTextLength)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if len(cfg.UserAgents) == 0 {
		t.Error("UserAgents is empty")
	}
	if cfg.ContentSelectors["main"] != 10 {
		t.Errorf("ContentSelectors[main] = %d, want 10", cfg.ContentSelectors["main"])
	}
	if cfg.Heuristics.SemanticTagBoost != 1.5 {
		t.Errorf("SemanticTagBoost = %f, want 1.5", cfg.Heuristics.SemanticTagBoost)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "min_text_length: 250\nmax_retries: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.MinTextLength != 250 {
		t.Errorf("MinTextLength = %d, want 250 from file", cfg.MinTextLength)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5 from file", cfg.MaxRetries)
	}
	// Unset fields fall back to defaults.
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want default 2s", cfg.RetryDelay)
	}
	if len(cfg.ContentSelectors) == 0 {
		t.Error("ContentSelectors empty, want defaults")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadConfig() error = nil, want read failure")
	}
}

func TestUserAgentFor_Rotation(t *testing.T) {
	cfg := DefaultConfig()
	n := len(cfg.UserAgents)

	if got := cfg.UserAgentFor(0); got != cfg.UserAgents[0] {
		t.Errorf("UserAgentFor(0) = %q, want first agent", got)
	}
	if got := cfg.UserAgentFor(1); got != cfg.UserAgents[1%n] {
		t.Errorf("UserAgentFor(1) = %q, want second agent", got)
	}
	if got := cfg.UserAgentFor(n); got != cfg.UserAgents[0] {
		t.Errorf("UserAgentFor(%d) = %q, want wrap to first agent", n, got)
	}
}
