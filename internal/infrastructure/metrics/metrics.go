// Package metrics exposes Prometheus collectors for chat turns, searches and
// HTTP traffic on a dedicated registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recipe-bot/internal/core/nlu"
)

const namespace = "recipebot"

// Collector 所有 Prometheus 指標，使用獨立的 registry
type Collector struct {
	Registry *prometheus.Registry

	IntentsTotal   *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	SearchResults  prometheus.Histogram
	EmptySearches  prometheus.Counter

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ActiveRequests      prometheus.Gauge

	CorpusRecipes prometheus.Gauge
	Sessions      prometheus.GaugeFunc
}

// New 建立並註冊所有指標，sessions 回傳目前會話數量，可為 nil
func New(sessions func() int) *Collector {
	reg := prometheus.NewRegistry()
	if sessions == nil {
		sessions = func() int { return 0 }
	}

	m := &Collector{
		Registry: reg,

		IntentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "intents_total",
			Help:      "Chat turns by classified intent.",
		}, []string{"intent"}),

		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "duration_seconds",
			Help:      "Recipe matching duration in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		}),

		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "results",
			Help:      "Number of recipes returned per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),

		EmptySearches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "match",
			Name:      "empty_total",
			Help:      "Searches that returned no recipes.",
		}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"method", "path", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "Number of currently active requests.",
		}),

		CorpusRecipes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "corpus",
			Name:      "recipes",
			Help:      "Number of recipes in the loaded corpus.",
		}),

		Sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Number of live chat sessions.",
		}, func() float64 { return float64(sessions()) }),
	}

	reg.MustRegister(
		m.IntentsTotal,
		m.SearchDuration,
		m.SearchResults,
		m.EmptySearches,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ActiveRequests,
		m.CorpusRecipes,
		m.Sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveIntent 記錄一輪對話的意圖
func (m *Collector) ObserveIntent(intent nlu.Intent) {
	m.IntentsTotal.WithLabelValues(string(intent)).Inc()
}

// ObserveSearch 記錄一次比對的耗時與結果數
func (m *Collector) ObserveSearch(elapsed time.Duration, results int) {
	m.SearchDuration.Observe(elapsed.Seconds())
	m.SearchResults.Observe(float64(results))
	if results == 0 {
		m.EmptySearches.Inc()
	}
}

// ObserveHTTP 記錄一個 HTTP 請求
func (m *Collector) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Handler /metrics 處理器
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
