// Package config loads service configuration from defaults, an
// optional YAML file, and environment overrides, in that order. The
// environment names (PORT, PUBLIC_URL, REGISTRY_URL, CERT_FILE,
// KEY_FILE) follow the NANDA deployment conventions.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AgentConfig configures the command agent service.
type AgentConfig struct {
	Addr            string `yaml:"addr"`
	Name            string `yaml:"name"`
	Version         string `yaml:"version"`
	MemoryPath      string `yaml:"memory_path"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
	CertFile        string `yaml:"cert_file"`
	KeyFile         string `yaml:"key_file"`
}

// MarketConfig configures the market snapshot service.
type MarketConfig struct {
	Addr        string `yaml:"addr"`
	Ticker      string `yaml:"ticker"`
	Title       string `yaml:"title"`
	PublicURL   string `yaml:"public_url"`
	RegistryURL string `yaml:"registry_url"`
}

// Config is the full configuration tree.
type Config struct {
	Agent  AgentConfig  `yaml:"agent"`
	Market MarketConfig `yaml:"market"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Agent: AgentConfig{
			Addr:            ":5000",
			Name:            "nanda-go-agent",
			Version:         "0.1.0",
			MemoryPath:      "memory.json",
			RateLimitPerMin: 60,
		},
		Market: MarketConfig{
			Addr:   ":8744",
			Ticker: "^GSPC",
			Title:  "SPX Today (latest S&P 500 daily summary)",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Agent.Addr = ":" + v
	}
	if v := os.Getenv("NANDA_MEMORY_PATH"); v != "" {
		cfg.Agent.MemoryPath = v
	}
	if v := os.Getenv("NANDA_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Agent.RateLimitPerMin = n
		}
	}
	if v := os.Getenv("CERT_FILE"); v != "" {
		cfg.Agent.CertFile = v
	}
	if v := os.Getenv("KEY_FILE"); v != "" {
		cfg.Agent.KeyFile = v
	}
	if v := os.Getenv("MARKET_PORT"); v != "" {
		cfg.Market.Addr = ":" + v
	}
	if v := os.Getenv("TICKER"); v != "" {
		cfg.Market.Ticker = v
	}
	if v := os.Getenv("PUBLIC_URL"); v != "" {
		cfg.Market.PublicURL = v
	}
	if v := os.Getenv("REGISTRY_URL"); v != "" {
		cfg.Market.RegistryURL = v
	}
}
