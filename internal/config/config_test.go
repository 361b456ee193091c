package config

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("version: got %d, want 1", cfg.Version)
	}
	if cfg.Source.Mode != "auto" {
		t.Errorf("source mode: got %s, want auto", cfg.Source.Mode)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should default to enabled")
	}
}

func TestConfigSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Analysis.DefaultDepth = 5
	cfg.Source.Mode = "treesitter"
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Analysis.DefaultDepth != 5 {
		t.Errorf("defaultDepth: got %d, want 5", loaded.Analysis.DefaultDepth)
	}
	if loaded.Source.Mode != "treesitter" {
		t.Errorf("source mode: got %s, want treesitter", loaded.Source.Mode)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Source.Mode = "psychic"
	if err := cfg.Validate(); err == nil {
		t.Error("invalid source mode should fail validation")
	}

	cfg = DefaultConfig()
	cfg.Analysis.DefaultDepth = 11
	if err := cfg.Validate(); err == nil {
		t.Error("depth over 10 should fail validation")
	}
}

func TestLoadDenyListWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "denylist.toml")

	if err := WriteStarterDenyList(path); err != nil {
		t.Fatalf("WriteStarterDenyList failed: %v", err)
	}
	// Writing over an existing file must fail.
	if err := WriteStarterDenyList(path); err == nil {
		t.Error("expected error writing over an existing deny list")
	}

	deny, err := LoadDenyList(path)
	if err != nil {
		t.Fatalf("LoadDenyList failed: %v", err)
	}
	if !deny.IsNonTrackable("require", "require") {
		t.Error("defaults should survive loading an empty extension file")
	}
}

func TestLoadDenyListEmptyPath(t *testing.T) {
	deny, err := LoadDenyList("")
	if err != nil {
		t.Fatalf("LoadDenyList failed: %v", err)
	}
	if !deny.IsNonTrackable("print", "print") {
		t.Error("empty path should yield the default deny list")
	}
}
