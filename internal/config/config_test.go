package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 0 || cfg.LogLevel != "warn" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.BlameDepth != 50 || cfg.HistoryDepth != 100 {
		t.Errorf("unexpected depth defaults: %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".sem"), 0755); err != nil {
		t.Fatal(err)
	}
	content := "workers: 4\nlog_level: debug\nignore:\n  - vendor/\n  - dist/\n"
	if err := os.WriteFile(filepath.Join(root, ".sem", "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 4 || cfg.LogLevel != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "vendor/" {
		t.Errorf("ignore list not applied: %+v", cfg.Ignore)
	}
	// Unset keys keep their defaults.
	if cfg.BlameDepth != 50 {
		t.Errorf("default lost for unset key: %+v", cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".sem"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".sem", "config.yaml"), []byte("{{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(root); err == nil {
		t.Error("malformed config must error")
	}
}
