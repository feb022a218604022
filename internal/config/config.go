package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full server configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Words   WordsConfig   `mapstructure:"words"`
	Rooms   RoomsConfig   `mapstructure:"rooms"`
	LogJSON bool          `mapstructure:"log_json"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	// Type is "memory" or "redis"
	Type     string `mapstructure:"type"`
	RedisURL string `mapstructure:"redis_url"`
}

// WordsConfig locates the word list
type WordsConfig struct {
	Path string `mapstructure:"path"`
}

// RoomsConfig tunes room lifecycle management
type RoomsConfig struct {
	Retention     time.Duration `mapstructure:"retention"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Load reads configuration from an optional file and BLINDSKETCH_* environment
// variables. Environment variables win; nested keys use underscores, e.g.
// BLINDSKETCH_SERVER_PORT or BLINDSKETCH_STORAGE_REDIS_URL.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.redis_url", "redis://localhost:6379/0")
	v.SetDefault("words.path", "data/words.txt")
	v.SetDefault("rooms.retention", 30*time.Minute)
	v.SetDefault("rooms.sweep_interval", time.Minute)
	v.SetDefault("log_json", true)

	v.SetEnvPrefix("BLINDSKETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Storage.Type != "memory" && cfg.Storage.Type != "redis" {
		return nil, fmt.Errorf("invalid storage type %q: must be memory or redis", cfg.Storage.Type)
	}

	return &cfg, nil
}
