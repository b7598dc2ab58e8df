package config

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	override := Config{
		CMS: CMSConfig{
			BaseURL:              "https://cms.override.example",
			Token:                "overrideToken",
			RequestTimeout:       3 * time.Second,
			FilterCacheTTL:       7 * time.Minute,
			MaxRequestsPerSecond: 99,
		},
		DB: DBConfig{
			ConnectionString: "newConnectionString",
		},
		Server: ServerConfig{
			ListenAddr:  ":9999",
			MetricsAddr: ":9998",
			SiteURL:     "https://override.example",
		},
		Sitemap: SitemapConfig{
			Schedule: "30 * * * *",
		},
	}
	os.Setenv("MODE", "test")

	os.Setenv("CMS_BASE_URL", override.CMS.BaseURL)
	os.Setenv("CMS_TOKEN", override.CMS.Token)
	os.Setenv("CMS_REQUEST_TIMEOUT", "3s")
	os.Setenv("CMS_FILTER_CACHE_TTL", "7m")
	os.Setenv("CMS_MAX_REQUESTS_PER_SECOND", fmt.Sprintf("%f", override.CMS.MaxRequestsPerSecond))
	os.Setenv("DB_CONNECTION_STRING", override.DB.ConnectionString)
	os.Setenv("SERVER_LISTEN_ADDR", override.Server.ListenAddr)
	os.Setenv("METRICS_ADDR", override.Server.MetricsAddr)
	os.Setenv("SITE_URL", override.Server.SiteURL)
	os.Setenv("SITEMAP_SCHEDULE", override.Sitemap.Schedule)

	cfg := Get()

	assert.Equal(t, override.CMS.BaseURL, cfg.CMS.BaseURL)
	assert.Equal(t, override.CMS.Token, cfg.CMS.Token)
	assert.Equal(t, override.CMS.RequestTimeout, cfg.CMS.RequestTimeout)
	assert.Equal(t, override.CMS.FilterCacheTTL, cfg.CMS.FilterCacheTTL)
	assert.Equal(t, override.CMS.MaxRequestsPerSecond, cfg.CMS.MaxRequestsPerSecond)
	assert.Equal(t, override.DB.ConnectionString, cfg.DB.ConnectionString)
	assert.Equal(t, override.Server.ListenAddr, cfg.Server.ListenAddr)
	assert.Equal(t, override.Server.MetricsAddr, cfg.Server.MetricsAddr)
	assert.Equal(t, override.Server.SiteURL, cfg.Server.SiteURL)
	assert.Equal(t, override.Sitemap.Schedule, cfg.Sitemap.Schedule)
}
