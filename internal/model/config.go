package model

import "time"

// Config holds the full runtime configuration.
// Hierarchy: CLI flags > env vars (CATALYSTSCAN_*) > config file > defaults.
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Classify    ClassifyConfig    `yaml:"classify" mapstructure:"classify"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// LLMConfig configures the remote model collaborator
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds, per call
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`

	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ClassifyConfig bounds the classification stage's remote calls.
// CallDelay paces successive calls and is part of the contract with
// the remote service, not an incidental sleep.
type ClassifyConfig struct {
	Retries    int           `yaml:"retries" mapstructure:"retries"`
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	CallDelay  time.Duration `yaml:"call_delay" mapstructure:"call_delay"`
}

// CacheConfig configures the processed-result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls where extraction results are written
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// ConcurrencyConfig bounds outer-caller parallelism. Documents may be
// processed in parallel; within one document batches stay sequential.
type ConcurrencyConfig struct {
	Documents int `yaml:"documents" mapstructure:"documents"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "",
			Timeout:     60,
			MaxTokens:   2000,
			Temperature: 0,
		},
		Classify: ClassifyConfig{
			Retries:    3,
			RetryDelay: 1500 * time.Millisecond,
			CallDelay:  time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.catalystscan/cache at load time
			TTL:     7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			Dir: "./catalystscan-results",
		},
		Concurrency: ConcurrencyConfig{
			Documents: 2,
		},
	}
}
