package server

import (
	"context"
	"net/http"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/kerjaplus/jobboard/internal/repositories"
	"github.com/kerjaplus/jobboard/internal/services"
	log "github.com/sirupsen/logrus"
)

// Server is the HTTP surface for the web UI and the CMS: health, the rendered
// sitemap, bookmark endpoints and the content-updated webhook.
type Server struct {
	httpServer *http.Server
	bus        EventBus.Bus
	jobs       *services.JobService
	filters    *services.FilterService
	sitemap    *services.SitemapService
	bookmarks  *repositories.Bookmarks
	validate   *validator.Validate
}

func NewServer(addr string, bus EventBus.Bus, jobs *services.JobService, filters *services.FilterService,
	sitemap *services.SitemapService, bookmarks *repositories.Bookmarks) *Server {

	s := &Server{
		bus:       bus,
		jobs:      jobs,
		filters:   filters,
		sitemap:   sitemap,
		bookmarks: bookmarks,
		validate:  validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/sitemap.xml", s.handleSitemap)
	mux.HandleFunc("/webhooks/cms", s.handleCmsWebhook)
	mux.HandleFunc("/api/jobs", s.handleJobs)
	mux.HandleFunc("/api/jobs/detail", s.handleJobDetail)
	mux.HandleFunc("/api/jobs/related", s.handleRelatedJobs)
	mux.HandleFunc("/api/filters", s.handleFilters)
	mux.HandleFunc("/api/bookmarks", s.handleBookmarks)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Run() error {
	log.Infof("http server listening on %v", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {

	rendered := s.sitemap.Sitemap()
	if rendered == nil {
		var err error
		rendered, err = s.sitemap.Generate(r.Context())
		if err != nil {
			http.Error(w, "sitemap unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(rendered)
}
