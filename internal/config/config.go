package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/phish-triage/")
	v.AddConfigPath("$HOME/.phish-triage")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("PHISH_TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Embedding provider defaults
	v.SetDefault("embedding.provider", "openai")

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "text-embedding-3-small")
	v.SetDefault("openai.max_input_size", 8192)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "amazon.titan-embed-text-v2:0")
	v.SetDefault("bedrock.max_input_size", 8192)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "text-embedding-004")
	v.SetDefault("gemini.max_input_size", 8192)

	// Triage policy defaults
	v.SetDefault("triage.phishing_similarity", 0.4)
	v.SetDefault("triage.suspicious_similarity", 0.6)

	// Whitelist defaults
	v.SetDefault("whitelist.csv_path", "")
	v.SetDefault("whitelist.snapshot_path", "/data/safe_domains.txt")
	v.SetDefault("whitelist.domains", []string{})

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.capacity", 200)
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/embedding_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/phish_triage")

	// Server defaults
	v.SetDefault("server.type", "http")
	v.SetDefault("server.listen_address", "0.0.0.0:8080")
	v.SetDefault("server.block_phishing", false)
	v.SetDefault("server.headers.status", "X-Phish-Status")
	v.SetDefault("server.headers.confidence", "X-Phish-Confidence")
	v.SetDefault("server.headers.reason", "X-Phish-Reason")
	v.SetDefault("server.postfix.address", "127.0.0.1")
	v.SetDefault("server.postfix.port", 10026)
	v.SetDefault("server.postfix.enabled", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
