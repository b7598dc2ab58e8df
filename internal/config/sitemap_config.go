package config

import (
	"github.com/spf13/viper"
)

type SitemapConfig struct {
	Schedule string `mapstructure:"schedule"`
}

func (config SitemapConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("sitemap.schedule", "SITEMAP_SCHEDULE")
}
