package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Database = DatabaseConfig{
		Path:    ":memory:",
		Timeout: 1 * time.Second,
	}
	cfg.API.HTTPTimeout = 5 * time.Second
	cfg.API.UserAgent = "hnstories-test/1.0"
	cfg.Log = LogConfig{Level: "off"}
	return cfg
}
