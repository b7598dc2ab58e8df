package services

import (
	"context"
	"encoding/xml"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/kerjaplus/jobboard/internal/clients/cms"
	"github.com/kerjaplus/jobboard/internal/domain/models"
	"github.com/kerjaplus/jobboard/internal/events"
	"github.com/kerjaplus/jobboard/internal/logger"
	"github.com/kerjaplus/jobboard/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	sitemapRetryAttempts = 3
	sitemapRetryBackoff  = 500 * time.Millisecond
)

type sitemapJobsSource interface {
	GetAllForSitemap(ctx context.Context) ([]models.Job, error)
}

type sitemapArticlesSource interface {
	GetAllForSitemap(ctx context.Context) ([]models.Article, error)
}

type sitemapPagesSource interface {
	GetPages(ctx context.Context) ([]cms.Page, error)
	GetCategories(ctx context.Context) ([]cms.Named, error)
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapService aggregates jobs, articles, pages and category landings into
// one rendered sitemap document, regenerated on a cron schedule and on
// content-updated events. Unlike the job layer, its aggregate fetches retry
// with exponential backoff.
type SitemapService struct {
	jobs     sitemapJobsSource
	articles sitemapArticlesSource
	pages    sitemapPagesSource
	siteURL  string
	cron     *cron.Cron

	backoff  time.Duration
	attempts int

	mu          sync.RWMutex
	rendered    []byte
	generatedAt time.Time
}

func NewSitemapService(bus EventBus.Bus, jobs sitemapJobsSource, articles sitemapArticlesSource,
	pages sitemapPagesSource, siteURL string, schedule string) (*SitemapService, error) {

	s := &SitemapService{
		jobs:     jobs,
		articles: articles,
		pages:    pages,
		siteURL:  strings.TrimSuffix(siteURL, "/"),
		cron:     cron.New(),
		backoff:  sitemapRetryBackoff,
		attempts: sitemapRetryAttempts,
	}

	if _, err := s.cron.AddFunc(schedule, s.regenerate); err != nil {
		return nil, err
	}

	if bus != nil {
		if err := bus.Subscribe(events.ContentUpdatedTopic, s.onContentUpdated); err != nil {
			return nil, err
		}
	}

	s.cron.Start()
	log.Infof("sitemap service started, schedule: %v", schedule)
	return s, nil
}

func (s *SitemapService) Stop() {
	s.cron.Stop()
}

// Sitemap returns the last rendered document, or nil if none was generated yet.
func (s *SitemapService) Sitemap() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rendered
}

func (s *SitemapService) GeneratedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generatedAt
}

func (s *SitemapService) Generate(ctx context.Context) ([]byte, error) {

	start := time.Now()

	var jobs []models.Job
	err := s.withRetry(func() error {
		var err error
		jobs, err = s.jobs.GetAllForSitemap(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "aggregating jobs")
	}

	var articles []models.Article
	err = s.withRetry(func() error {
		var err error
		articles, err = s.articles.GetAllForSitemap(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "aggregating articles")
	}

	pages, err := s.pages.GetPages(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSitemap).
			Errorf("failed to get pages for sitemap, continuing without them: %v", err)
	}

	categories, err := s.pages.GetCategories(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSitemap).
			Errorf("failed to get categories for sitemap, continuing without them: %v", err)
	}

	rendered, err := s.render(jobs, articles, pages, categories)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rendered = rendered
	s.generatedAt = time.Now()
	s.mu.Unlock()

	metrics.SitemapGenerationDuration.Observe(time.Since(start).Seconds())
	log.Infof("sitemap generated with %v jobs, %v articles, %v pages in %v",
		len(jobs), len(articles), len(pages), time.Since(start))

	return rendered, nil
}

func (s *SitemapService) render(jobs []models.Job, articles []models.Article,
	pages []cms.Page, categories []cms.Named) ([]byte, error) {

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, sitemapURL{Loc: s.siteURL + "/"})

	for _, job := range jobs {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     s.siteURL + "/loker/" + job.Slug,
			LastMod: lastMod(job.PublishedAt),
		})
	}

	for _, article := range articles {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     s.siteURL + "/artikel/" + article.Slug,
			LastMod: lastMod(article.PublishedAt),
		})
	}

	for _, page := range pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     s.siteURL + "/" + page.Slug,
			LastMod: lastMod(page.UpdatedAt),
		})
	}

	for _, category := range categories {
		if category.Slug == "" {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: s.siteURL + "/kategori/" + category.Slug})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "rendering sitemap")
	}

	return append([]byte(xml.Header), body...), nil
}

func (s *SitemapService) withRetry(fn func() error) error {

	var err error
	for attempt := 0; attempt < s.attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(s.backoff << (attempt - 1))
		}
		if err = fn(); err == nil {
			return nil
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSitemap).
			Errorf("sitemap fetch attempt %v failed: %v", attempt+1, err)
	}
	return err
}

func (s *SitemapService) regenerate() {
	if _, err := s.Generate(context.Background()); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSitemap).
			Errorf("scheduled sitemap generation failed: %v", err)
	}
}

func (s *SitemapService) onContentUpdated(event events.ContentUpdated) {
	if event.Type == events.ContentTypeFilters {
		return
	}
	go s.regenerate()
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
