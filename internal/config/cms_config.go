package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type CMSConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	Token                string        `mapstructure:"token"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	FilterCacheTTL       time.Duration `mapstructure:"filter_cache_ttl"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
}

func (config CMSConfig) validate() error {

	var missingFields []string

	if config.BaseURL == "" {
		missingFields = append(missingFields, "base_url")
	}

	if config.Token == "" {
		missingFields = append(missingFields, "token")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	if config.FilterCacheTTL <= 0 {
		return fmt.Errorf("filter_cache_ttl must be positive")
	}

	return nil
}

func (config CMSConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("cms.base_url", "CMS_BASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("cms.token", "CMS_TOKEN"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("cms.request_timeout", "CMS_REQUEST_TIMEOUT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("cms.filter_cache_ttl", "CMS_FILTER_CACHE_TTL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("cms.max_requests_per_second", "CMS_MAX_REQUESTS_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
