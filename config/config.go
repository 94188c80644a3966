// Package config handles msgmodel configuration loading: YAML file with
// environment-variable overlay for credentials.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all msgmodel configuration.
type Config struct {
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Signing SigningConfig `yaml:"signing"`

	// StreamTimeoutSeconds is the default streaming idle timeout.
	// Zero disables it; per-call options override it.
	StreamTimeoutSeconds int `yaml:"stream_timeout_seconds"`
}

// OpenAIConfig defines OpenAI API settings.
type OpenAIConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
	TopP        float32 `yaml:"top_p"`
}

// GeminiConfig defines Gemini API settings.
type GeminiConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
	TopP        float32 `yaml:"top_p"`
}

// SigningConfig defines request-signing settings for multi-tenant
// deployments. The secret never appears in signatures or logs.
type SigningConfig struct {
	Secret string `yaml:"secret"`
}

// Default returns the configuration used when no file is supplied,
// mirroring the provider defaults.
func Default() *Config {
	cfg := &Config{
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   4096,
			Temperature: 1.0,
			TopP:        1.0,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			MaxTokens:   4096,
			Temperature: 1.0,
			TopP:        1.0,
		},
	}
	cfg.applyEnv()
	return cfg
}

// Load reads a YAML config file on top of the defaults, then applies
// environment overrides (env wins for credentials).
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays credentials from the environment:
// OPENAI_API_KEY, GEMINI_API_KEY, MSGMODEL_SIGNING_SECRET.
func (c *Config) applyEnv() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.OpenAI.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if secret := os.Getenv("MSGMODEL_SIGNING_SECRET"); secret != "" {
		c.Signing.Secret = secret
	}
}
