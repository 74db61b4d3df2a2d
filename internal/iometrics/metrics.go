// Package iometrics keeps prometheus collectors of ipnidb and serves
// them in the text exposition format.
package iometrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ipnidb"

var (
	// ImportedRows counts rows committed by imports, per table.
	ImportedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_rows_total",
			Help:      "Rows inserted by committed imports.",
		},
		[]string{"table"},
	)

	// ImportRuns counts finished imports by result ("success", "error").
	ImportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_runs_total",
			Help:      "Finished import runs.",
		},
		[]string{"result"},
	)

	ImportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Duration of import runs.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Handled HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(
		ImportedRows,
		ImportRuns,
		ImportDuration,
		HTTPRequests,
		HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves collected metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Middleware records count and latency of requests. Paths are route
// templates (e.g. /name/:id), so ids do not inflate label sets.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// lets the error handler write the status before we read it
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unknown"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)
			HTTPRequests.WithLabelValues(method, path, status).Inc()
			HTTPDuration.WithLabelValues(method, path).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
