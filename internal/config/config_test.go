package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.AdvisorTimeoutSec != 30 {
		t.Fatalf("advisor timeout = %d", cfg.AdvisorTimeoutSec)
	}
	if cfg.Rules.Participants != 12 || cfg.Rules.Rounds != 5 {
		t.Fatalf("rules defaults = %+v", cfg.Rules)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("ADVISOR_TIMEOUT_SEC", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.AdvisorTimeoutSec != 5 {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("participants: 8\nrounds: 4\npick_timer_sec: 45\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("RULES_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rules.Participants != 8 || cfg.Rules.Rounds != 4 || cfg.Rules.PickTimerSec != 45 {
		t.Fatalf("rules = %+v", cfg.Rules)
	}
}

func TestLoadBadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("participants: [not a number"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("RULES_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
