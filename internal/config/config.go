package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName            string        `mapstructure:"app_name" validate:"required"`
	Env                string        `mapstructure:"app_env" validate:"required"`
	LogLevel           string        `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	RequestsFile       string        `mapstructure:"requests_file" validate:"required"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds" validate:"gt=0"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	UserAgent          string        `mapstructure:"user_agent"`
	MaxRedirects       int           `mapstructure:"max_redirects" validate:"gte=0,lte=50"`
	StrictDecoding     bool          `mapstructure:"strict_decoding"`
}

var validate = validator.New()

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "samvad-netkit")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("requests_file", "./configs/requests.yaml")
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("user_agent", "samvad-netkit/1.0")
	v.SetDefault("max_redirects", 10)
	v.SetDefault("strict_decoding", true)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	return &cfg, nil
}
