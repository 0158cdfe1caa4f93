package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for caseprose
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Translate TranslateConfig `yaml:"translate"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes"`
}

// Addr returns host:port for net/http.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TranslateConfig holds translator settings
type TranslateConfig struct {
	MaxDepth int    `yaml:"max_depth"`
	Indent   string `yaml:"indent"`
	Format   string `yaml:"format"`
}

// RedisConfig holds translation cache settings. An empty URL disables the cache.
type RedisConfig struct {
	URL        string `yaml:"url"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// TTL returns the cache entry lifetime.
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// DatabaseConfig holds the translation archive settings. An empty URL
// disables the archive.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SlogLevel parses Level, falling back to info.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (cfg *Config) setDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.Translate.MaxDepth == 0 {
		cfg.Translate.MaxDepth = 256
	}
	if cfg.Translate.Indent == "" {
		cfg.Translate.Indent = "\t"
	}
	if cfg.Translate.Format == "" {
		cfg.Translate.Format = "text"
	}
	if cfg.Redis.TTLSeconds == 0 {
		cfg.Redis.TTLSeconds = 24 * 60 * 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Load reads configuration from a YAML file. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.setDefaults()

	return &cfg, nil
}

// LoadFromEnv loads config from file and overrides with environment variables
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if host := os.Getenv("CASEPROSE_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("CASEPROSE_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("CASEPROSE_PORT: %w", err)
		}
		cfg.Server.Port = n
	}
	if origins := os.Getenv("CASEPROSE_ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cfg.Redis.URL = redisURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if level := os.Getenv("CASEPROSE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}
