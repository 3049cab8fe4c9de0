package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName        string        `mapstructure:"app_name"`
	Env            string        `mapstructure:"app_env"`
	LogLevel       string        `mapstructure:"log_level"`
	Target         string        `mapstructure:"target"`
	TargetsFile    string        `mapstructure:"targets_file"`
	SinksFile      string        `mapstructure:"sinks_file"`
	Token          string        `mapstructure:"api_token"`
	TimeoutSeconds int64         `mapstructure:"request_timeout"`
	Timeout        time.Duration `mapstructure:"-"`

	CredStoreType    string        `mapstructure:"credstore_type"`
	CredStorePath    string        `mapstructure:"credstore_path"`
	TokenTTLSeconds  int64         `mapstructure:"token_ttl_seconds"`
	CleanupSeconds   int64         `mapstructure:"credstore_cleanup_interval_seconds"`
	TokenTTL         time.Duration `mapstructure:"-"`
	CredStoreCleanup time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "samvad-poll-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("target", "local")
	v.SetDefault("targets_file", "./configs/targets.yaml")
	v.SetDefault("sinks_file", "./configs/sinks.yaml")
	v.SetDefault("request_timeout", 15) // seconds
	v.SetDefault("credstore_type", "bbolt")
	v.SetDefault("credstore_path", "./data/credentials.db")
	v.SetDefault("token_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("credstore_cleanup_interval_seconds", int64((time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout (must be positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if cfg.TokenTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid token_ttl_seconds (must be positive seconds)")
	}
	if cfg.CleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid credstore_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.TokenTTL = time.Duration(cfg.TokenTTLSeconds) * time.Second
	cfg.CredStoreCleanup = time.Duration(cfg.CleanupSeconds) * time.Second

	return &cfg, nil
}
