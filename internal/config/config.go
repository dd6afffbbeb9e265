package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// ResolverConfig exposes the resolution policy constants. The thresholds are
// policy, not derived values; tests pin explicit numbers instead of relying
// on these defaults.
type ResolverConfig struct {
	PrimaryThreshold   float64 `toml:"primary_threshold"`
	SecondaryThreshold float64 `toml:"secondary_threshold"`
	FreeTextThreshold  float64 `toml:"freetext_threshold"`
	RouterPolicy       string  `toml:"router_policy"`
	// EscalationEnabled turns the arbiter pass on.
	EscalationEnabled bool `toml:"escalation_enabled"`
}

type PromptsConfig struct {
	Extraction string `toml:"extraction"`
	Arbiter    string `toml:"arbiter"`
}

type ConcurrencyConfig struct {
	ExtractWorkers int `toml:"extract_workers"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type Config struct {
	LLM         LLMConfig         `toml:"llm"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Resolver    ResolverConfig    `toml:"resolver"`
	Prompts     PromptsConfig     `toml:"prompts"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Log         LogConfig         `toml:"log"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied, for callers
// that run without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
		c.LLM.Model = "magistral:24b"
		c.LLM.BaseURL = "http://localhost:11434"
	}
	if c.Memgraph.URI == "" {
		c.Memgraph.URI = "bolt://localhost:7687"
	}
	if c.Resolver.PrimaryThreshold == 0 {
		c.Resolver.PrimaryThreshold = 0.85
	}
	if c.Resolver.SecondaryThreshold == 0 {
		c.Resolver.SecondaryThreshold = 0.75
	}
	if c.Resolver.FreeTextThreshold == 0 {
		c.Resolver.FreeTextThreshold = 0.90
	}
	if c.Resolver.RouterPolicy == "" {
		c.Resolver.RouterPolicy = "first_fit"
	}
	if c.Concurrency.ExtractWorkers == 0 {
		c.Concurrency.ExtractWorkers = 4
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
