package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.SelectLimit != 200 || cfg.FetchLimit != 60 {
		t.Errorf("limits = %d/%d", cfg.SelectLimit, cfg.FetchLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".repograph.yml")
	content := "port: 9000\nfetch_limit: 10\nselect_limit: 50\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.FetchLimit != 10 || cfg.SelectLimit != 50 {
		t.Errorf("limits = %d/%d", cfg.FetchLimit, cfg.SelectLimit)
	}
	// Untouched fields keep their defaults.
	if cfg.MaxConcurrency != 5 {
		t.Errorf("MaxConcurrency = %d, want 5", cfg.MaxConcurrency)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("REPOGRAPH_GITHUB_TOKEN", "env-token")
	t.Setenv("REPOGRAPH_PORT", "7000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubToken != "env-token" {
		t.Errorf("GitHubToken = %q", cfg.GitHubToken)
	}
	if cfg.Port != 7000 {
		t.Errorf("Port = %d, want 7000", cfg.Port)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".repograph.yml")

	cfg := DefaultConfig()
	cfg.Port = 3001
	cfg.AIProvider = ProviderOpenAI
	cfg.AIModel = "gpt-4o-mini"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Port != 3001 || loaded.AIProvider != ProviderOpenAI || loaded.AIModel != "gpt-4o-mini" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Port = 70000 }, true},
		{"zero fetch limit", func(c *Config) { c.FetchLimit = 0 }, true},
		{"fetch exceeds select", func(c *Config) { c.FetchLimit = 500 }, true},
		{"bad provider", func(c *Config) { c.AIProvider = "grok" }, true},
		{"provider without model", func(c *Config) { c.AIProvider = ProviderOpenAI }, true},
		{"provider with model", func(c *Config) { c.AIProvider = ProviderOpenAI; c.AIModel = "gpt-4o" }, false},
		{"negative ttl", func(c *Config) { c.CacheTTLMinutes = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
