package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcomes used as the "outcome" label.
const (
	OutcomeSuccess           = "success"
	OutcomeSourceUnavailable = "source_unavailable"
	OutcomeInternal          = "internal"
)

var (
	// RefreshTotal counts finished refresh runs by outcome.
	RefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "countries_refresh_total",
			Help: "Total refresh runs by outcome.",
		},
		[]string{"outcome"},
	)

	// RefreshDuration records wall time from fetch start to persisted result.
	RefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "countries_refresh_duration_seconds",
			Help:    "Duration of refresh runs up to the persisted result.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	// SourceFetchDuration records upstream fetch latency by source and outcome.
	SourceFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "countries_source_fetch_duration_seconds",
			Help:    "Duration of upstream source fetches.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "outcome"},
	)

	// CountriesUpserted counts rows written by refreshes.
	CountriesUpserted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "countries_upserted_total",
			Help: "Total country rows written by refreshes.",
		},
	)

	// SummaryFailures counts swallowed summary image failures.
	SummaryFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "countries_summary_failures_total",
			Help: "Total summary image generations that failed after a successful refresh.",
		},
	)

	// RequestsTotal counts HTTP requests by method, route and status.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records HTTP latency by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RefreshTotal,
			RefreshDuration,
			SourceFetchDuration,
			CountriesUpserted,
			SummaryFailures,
			RequestsTotal,
			RequestDuration,
		)
	})
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet; mirror its status choice.
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}
