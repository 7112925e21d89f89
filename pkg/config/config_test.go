package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file should not fail, got: %v", err)
	}

	if cfg.EntriesDir == "" {
		t.Errorf("Expected a default entries dir")
	}
	if cfg.StalenessWindow() != 5*time.Minute {
		t.Errorf("Expected default staleness window of 5m, got %s", cfg.StalenessWindow())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "entries_dir: " + filepath.Join(dir, "my-entries") + "\nstaleness_minutes: 2\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.EntriesDir != filepath.Join(dir, "my-entries") {
		t.Errorf("Expected configured entries dir, got %q", cfg.EntriesDir)
	}
	if cfg.StalenessWindow() != 2*time.Minute {
		t.Errorf("Expected 2m staleness window, got %s", cfg.StalenessWindow())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestResolvePathExpandsHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("No home directory available: %v", err)
	}

	resolved, err := ResolvePath("~/diary")
	if err != nil {
		t.Fatalf("ResolvePath failed: %v", err)
	}
	if resolved != filepath.Join(homeDir, "diary") {
		t.Errorf("Expected home-expanded path, got %q", resolved)
	}
}
