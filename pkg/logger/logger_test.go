package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWritesFiles(t *testing.T) {
	dir := t.TempDir()
	l := New(&Config{Level: "info", App: "wheel", Dir: dir, File: true})
	l.Info("spin started")
	l.Error("submit failed")
	_ = l.Sync()

	for _, name := range []string{"wheel.log", "wheel_error.log"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestNewBadLevel(t *testing.T) {
	l := New(&Config{Level: "loud"})
	if !l.Core().Enabled(-1) {
		t.Error("invalid level should fall back to debug")
	}
}
