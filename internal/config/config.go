package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the FitSearch client
type Config struct {
	API  APIConfig  `mapstructure:"api"`
	Log  LogConfig  `mapstructure:"log"`
	Mock MockConfig `mapstructure:"mock"`
}

// APIConfig holds the storefront API connection settings
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// MockConfig holds the local mock API server configuration
type MockConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	CatalogPath string `mapstructure:"catalog_path"`
}

// Timeout returns the API timeout as a duration
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Address returns the mock server address
func (c *MockConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("FITSEARCH")
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_seconds", 30)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("mock.host", "0.0.0.0")
	v.SetDefault("mock.port", 8000)
	v.SetDefault("mock.catalog_path", "./data/catalog.db")
}
