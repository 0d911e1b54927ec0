package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for disaster-lens.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Generation GenerationConfig `toml:"generation"`
	Analysis   AnalysisConfig   `toml:"analysis"`
	History    HistoryConfig    `toml:"history"`
	Sources    SourcesConfig    `toml:"sources"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type GenerationConfig struct {
	Model string `toml:"model"`
	// TimeoutSeconds bounds one round trip to the generation service.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// RateLimit is the maximum generation calls per second.
	RateLimit float64 `toml:"rate_limit"`
}

type AnalysisConfig struct {
	MinEvents int `toml:"min_events"`
	MaxEvents int `toml:"max_events"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type SourcesConfig struct {
	// Inspect enables resolving cited source URLs to flag dead links.
	Inspect        bool `toml:"inspect"`
	TimeoutSeconds int  `toml:"timeout_seconds"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server:     ServerConfig{Host: "localhost", Port: 8080},
		Generation: GenerationConfig{Model: "gemini-2.5-flash", TimeoutSeconds: 120, RateLimit: 1.0},
		Analysis:   AnalysisConfig{MinEvents: 10, MaxEvents: 100},
		History:    HistoryConfig{Enabled: true, Dir: "data"},
		Sources:    SourcesConfig{Inspect: false, TimeoutSeconds: 10},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
