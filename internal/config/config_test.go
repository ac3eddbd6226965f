package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskpad/internal/config"
)

func TestNew_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "base_url: https://tasks.example.com\ntoken: sekrit\ntimeout_seconds: 9\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.BaseURL != "https://tasks.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Token != "sekrit" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.Timeout() != 9*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
}

func TestNew_MissingFileIsFine(t *testing.T) {
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.HasBaseURL() || cfg.HasToken() {
		t.Errorf("expected empty config, got %+v", cfg)
	}
	if cfg.Timeout() != config.DefaultTimeoutSeconds*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.Timeout())
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "base_url: https://file.example.com\ntoken: from-file\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TASKPAD_BASE_URL", "https://env.example.com")
	t.Setenv("TASKPAD_TOKEN", "from-env")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Token != "from-env" {
		t.Errorf("Token = %q", cfg.Token)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg.BaseURL = "https://tasks.example.com"
	cfg.Token = "sekrit"
	cfg.Quiet = true // not serialized

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	back, err := config.New(dir)
	if err != nil {
		t.Fatalf("New after save: %v", err)
	}
	if back.BaseURL != cfg.BaseURL || back.Token != cfg.Token {
		t.Errorf("round trip lost settings: %+v", back)
	}
	if back.Quiet {
		t.Error("Quiet must not be serialized")
	}
}

func TestSave_FileMode(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg.Token = "sekrit"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(cfg.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
}
