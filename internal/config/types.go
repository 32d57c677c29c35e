package config

// ProviderType identifies an LLM provider for optional AI file analysis.
type ProviderType string

const (
	ProviderNone      ProviderType = ""
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
)

// Config is the top-level repograph configuration, corresponding to
// .repograph.yml.
type Config struct {
	// GitHub API access.
	GitHubToken string `yaml:"github_token" koanf:"github_token"`
	APIBaseURL  string `yaml:"api_base_url" koanf:"api_base_url"`

	// HTTP server.
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	// Graph snapshot cache.
	CachePath       string `yaml:"cache_path" koanf:"cache_path"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes" koanf:"cache_ttl_minutes"`

	// Dependency enrichment bounds.
	SelectLimit    int `yaml:"select_limit" koanf:"select_limit"`
	FetchLimit     int `yaml:"fetch_limit" koanf:"fetch_limit"`
	MaxConcurrency int `yaml:"max_concurrency" koanf:"max_concurrency"`

	// Local-directory mode filters.
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`

	// Optional AI analysis.
	AIProvider ProviderType `yaml:"ai_provider" koanf:"ai_provider"`
	AIModel    string       `yaml:"ai_model" koanf:"ai_model"`
}
