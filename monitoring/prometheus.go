package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	PageDuration   *prometheus.HistogramVec
	ScrapeErrors   *prometheus.CounterVec
	MoviesIndexed  *prometheus.CounterVec
	EntriesSkipped *prometheus.CounterVec
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		PageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scraper_page_duration_seconds",
			Help:    "Duration of a single catalog page scrape",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"catalog"}),
		ScrapeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_errors_total",
			Help: "Number of fatal scrape errors",
		}, []string{"catalog"}),
		MoviesIndexed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_movies_indexed_total",
			Help: "Number of movie records handed to storage",
		}, []string{"catalog"}),
		EntriesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_entries_skipped_total",
			Help: "Number of entries or variants skipped as unparsable or incomplete",
		}, []string{"catalog", "reason"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Number of cache hits",
		}, []string{"cache"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Number of cache misses",
		}, []string{"cache"}),
	}
}

func (m *Metrics) Register() {
	prometheus.MustRegister(m.PageDuration)
	prometheus.MustRegister(m.ScrapeErrors)
	prometheus.MustRegister(m.MoviesIndexed)
	prometheus.MustRegister(m.EntriesSkipped)
	prometheus.MustRegister(m.CacheHits)
	prometheus.MustRegister(m.CacheMisses)
}
