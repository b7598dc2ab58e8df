package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

type ServerConfig struct {
	ListenAddr  string `mapstructure:"listen_addr"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	SiteURL     string `mapstructure:"site_url"`
}

func (config ServerConfig) validate() error {

	var missingFields []string

	if config.ListenAddr == "" {
		missingFields = append(missingFields, "listen_addr")
	}

	if config.SiteURL == "" {
		missingFields = append(missingFields, "site_url")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("server.listen_addr", "SERVER_LISTEN_ADDR"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("server.metrics_addr", "METRICS_ADDR"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("server.site_url", "SITE_URL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
