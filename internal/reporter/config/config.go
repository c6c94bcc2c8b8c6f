package config

import (
	"golang-ticker-relay/pkg/config"
)

// Reporter holds reporter-specific configuration.
type Reporter struct {
	TickInterval  string `mapstructure:"tick_interval"`
	RetentionCron string `mapstructure:"retention_cron"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
}

// Config holds the full configuration for the report service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	Reporter Reporter        `mapstructure:"reporter"`
	Telegram Telegram        `mapstructure:"telegram"`
}

// Load loads the reporter configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
