package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	CmsRequestDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "jobboard_cms_request_duration_seconds",
			Help:       "Duration of requests to the CMS API per endpoint.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"endpoint"},
	)
	FilterCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_filter_cache_requests_total",
			Help: "Filter data cache lookups by outcome.",
		},
		[]string{"result"},
	)
	SitemapGenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobboard_sitemap_generation_duration_seconds",
			Help:    "Duration of each sitemap generation in seconds.",
			Buckets: []float64{1, 5, 15, 60, 300},
		},
	)
	PrunedBookmarksCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_bookmarks_pruned_total",
			Help: "Total number of bookmarks removed because the job post disappeared upstream.",
		},
	)
)

func StartMetricsServer(addr string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(CmsRequestDuration)
	prometheus.MustRegister(FilterCacheRequests)
	prometheus.MustRegister(SitemapGenerationDuration)
	prometheus.MustRegister(PrunedBookmarksCounter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(addr, mux))
	}()
}
