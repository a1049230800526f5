package env

import (
	"fortune_wheel/internal/wheel"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWheelConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := NewWheelConfigFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FullTurns() != wheel.DefaultFullTurns {
		t.Errorf("full turns %d", cfg.FullTurns())
	}
	if cfg.SpinDuration() != wheel.DefaultSpinDuration {
		t.Errorf("spin duration %s", cfg.SpinDuration())
	}
	if !cfg.CooldownGate() {
		t.Error("cooldown gate should be on by default")
	}
	if len(cfg.Sectors()) != 7 {
		t.Errorf("got %d sectors, want 7", len(cfg.Sectors()))
	}
}

func TestWheelConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
wheel:
  full_turns: 3
  spin_duration: 2500ms
  cooldown_gate: false
  dispatch_pool_size: 8
  sectors:
    - center: 0
      range: [-90, 90]
      prize: 2
    - center: 180
      range: [90, 270]
      prize: 0
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewWheelConfigFromYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FullTurns() != 3 || cfg.SpinDuration() != 2500*time.Millisecond {
		t.Errorf("turns %d duration %s", cfg.FullTurns(), cfg.SpinDuration())
	}
	if cfg.CooldownGate() || cfg.DispatchPoolSize() != 8 {
		t.Errorf("gate %v pool %d", cfg.CooldownGate(), cfg.DispatchPoolSize())
	}

	table, err := wheel.NewTable(cfg.Sectors())
	if err != nil {
		t.Fatalf("sectors rejected: %v", err)
	}
	if got := table.Resolve(300); got != wheel.TwoStars {
		t.Errorf("Resolve(300) = %s, want 2⭐", got)
	}
}

func TestWheelConfigRejectsBadSectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
wheel:
  sectors:
    - range: [0, 100]
      prize: 1
    - range: [120, 360]
      prize: 0
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewWheelConfigFromYAML(path); err == nil {
		t.Fatal("expected error for sectors with a gap")
	}
}

func TestBackendConfig(t *testing.T) {
	t.Setenv(starsBaseURLEnvName, "http://stars.local/")
	t.Setenv(starsTimeoutEnvName, "3s")

	cfg, err := NewBackendConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL() != "http://stars.local" {
		t.Errorf("base url %q", cfg.BaseURL())
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("timeout %s", cfg.Timeout())
	}

	t.Setenv(starsTimeoutEnvName, "soon")
	if _, err := NewBackendConfig(); err == nil {
		t.Error("expected error for bad timeout")
	}
}
