package obs

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// TrackRequestsTotal counts tracking lookups by carrier and outcome
	// (cache_hit, scraped, link_only, unsupported).
	TrackRequestsTotal *prometheus.CounterVec
	// ScrapeFailuresTotal counts fetches that degraded to link-only results.
	ScrapeFailuresTotal *prometheus.CounterVec
	// ScrapeDurationMS records page fetch latency in milliseconds.
	ScrapeDurationMS *prometheus.HistogramVec
	// CacheLookupsTotal counts result-cache hits and misses.
	CacheLookupsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific
// Prometheus collectors. Safe to call more than once.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		TrackRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "track_requests_total",
			Help:      "Count of tracking lookups by carrier and outcome.",
		}, []string{"carrier", "result"})
		ScrapeFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_failures_total",
			Help:      "Count of tracking page fetches that failed and fell back to link-only.",
		}, []string{"carrier"})
		ScrapeDurationMS = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scrape_duration_ms",
			Help:      "Tracking page fetch latency distribution in milliseconds.",
			Buckets:   []float64{250, 500, 1000, 2500, 5000, 10000, 20000, 40000},
		}, []string{"carrier"})
		CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "track_cache_lookups_total",
			Help:      "Count of result cache lookups by outcome.",
		}, []string{"result"})
		reg.MustRegister(TrackRequestsTotal, ScrapeFailuresTotal, ScrapeDurationMS, CacheLookupsTotal)
	})
}

// The observe helpers are nil-safe so code paths exercised in tests do not
// require metric registration.

func ObserveTrackRequest(carrier, result string) {
	if TrackRequestsTotal != nil {
		TrackRequestsTotal.WithLabelValues(carrier, result).Inc()
	}
}

func ObserveScrapeFailure(carrier string) {
	if ScrapeFailuresTotal != nil {
		ScrapeFailuresTotal.WithLabelValues(carrier).Inc()
	}
}

func ObserveScrapeDuration(carrier string, d time.Duration) {
	if ScrapeDurationMS != nil {
		ScrapeDurationMS.WithLabelValues(carrier).Observe(DurationMillis(d))
	}
}

func ObserveCacheLookup(result string) {
	if CacheLookupsTotal != nil {
		CacheLookupsTotal.WithLabelValues(result).Inc()
	}
}
