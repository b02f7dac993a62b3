package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Load() with explicit missing path: error = nil, want read error")
	}
	_ = cfg
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logsieve.yaml")
	content := []byte("engine:\n  mode: sequential\n  workers: 3\nchurn:\n  ephemeral_threshold: 0.6\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.Mode != "sequential" || cfg.Engine.Workers != 3 {
		t.Errorf("Engine = %+v, want mode=sequential workers=3", cfg.Engine)
	}
	if cfg.Churn.EphemeralThreshold != 0.6 {
		t.Errorf("EphemeralThreshold = %v, want 0.6", cfg.Churn.EphemeralThreshold)
	}
	// Untouched keys keep their defaults.
	if cfg.Churn.SingleFileWeight != 0.5 {
		t.Errorf("SingleFileWeight = %v, want default 0.5", cfg.Churn.SingleFileWeight)
	}
}
