// Package config loads, validates and persists the repograph configuration
// from .repograph.yml with REPOGRAPH_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultExcludes are glob patterns excluded from local-directory listings
// by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
	"*.lock",
	"go.sum",
	"package-lock.json",
	"yarn.lock",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:            8080,
		CachePath:       ".repograph/cache.db",
		CacheTTLMinutes: 60,
		SelectLimit:     200,
		FetchLimit:      60,
		MaxConcurrency:  5,
		Include:         []string{"**"},
		Exclude:         DefaultExcludes,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (REPOGRAPH_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// REPOGRAPH_GITHUB_TOKEN -> github_token, etc.
	if err := k.Load(env.Provider("REPOGRAPH_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "REPOGRAPH_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized AI provider values.
var validProviders = map[ProviderType]bool{
	ProviderNone:      true,
	ProviderOpenAI:    true,
	ProviderAnthropic: true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.CacheTTLMinutes < 0 {
		return fmt.Errorf("cache_ttl_minutes must be non-negative")
	}
	if c.SelectLimit < 1 {
		return fmt.Errorf("select_limit must be at least 1")
	}
	if c.FetchLimit < 1 {
		return fmt.Errorf("fetch_limit must be at least 1")
	}
	if c.FetchLimit > c.SelectLimit {
		return fmt.Errorf("fetch_limit (%d) must not exceed select_limit (%d)", c.FetchLimit, c.SelectLimit)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1")
	}
	if !validProviders[c.AIProvider] {
		return fmt.Errorf("invalid ai_provider %q: must be openai or anthropic", c.AIProvider)
	}
	if c.AIProvider != ProviderNone && c.AIModel == "" {
		return fmt.Errorf("ai_model is required when ai_provider is set")
	}
	return nil
}
