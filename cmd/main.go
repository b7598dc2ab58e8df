package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/kerjaplus/jobboard/internal/clients/cms"
	"github.com/kerjaplus/jobboard/internal/config"
	"github.com/kerjaplus/jobboard/internal/logger"
	"github.com/kerjaplus/jobboard/internal/metrics"
	"github.com/kerjaplus/jobboard/internal/repositories"
	"github.com/kerjaplus/jobboard/internal/server"
	"github.com/kerjaplus/jobboard/internal/services"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsAddr)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	bookmarks := repositories.NewBookmarksRepository(dbContext.DB)
	bus := EventBus.New()

	cmsClient := cms.NewClient(cms.StaticSettings(cms.Settings{
		BaseURL:        cfg.CMS.BaseURL,
		Token:          cfg.CMS.Token,
		RequestTimeout: cfg.CMS.RequestTimeout,
	}))
	if cfg.CMS.MaxRequestsPerSecond > 0 {
		cmsClient.SetRateLimit(cfg.CMS.MaxRequestsPerSecond)
	}

	jobService := services.NewJobService(cmsClient, cfg.Server.SiteURL)
	articleService := services.NewArticleService(cmsClient)

	filterCache := gocache.New(gocache.NoExpiration, 30*time.Minute)
	filterService, err := services.NewFilterService(bus, cmsClient, filterCache, cfg.CMS.FilterCacheTTL)
	if err != nil {
		log.Fatalf("can't create filter service: %v", err)
	}

	sitemapService, err := services.NewSitemapService(bus, jobService, articleService, cmsClient,
		cfg.Server.SiteURL, cfg.Sitemap.Schedule)
	if err != nil {
		log.Fatalf("can't create sitemap service: %v", err)
	}
	defer sitemapService.Stop()

	cleaner, err := services.NewBookmarksCleaner(bookmarks, cmsClient)
	if err != nil {
		log.Fatalf("can't create bookmarks cleaner: %v", err)
	}
	defer cleaner.Stop()

	srv := server.NewServer(cfg.Server.ListenAddr, bus, jobService, filterService, sitemapService, bookmarks)
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Errorf("http server shutdown: %v", err)
	}
	log.Info("Services stopped.")
}
