package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
)

func register() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of processed HTTP requests",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		prometheus.MustRegister(httpRequestsTotal, httpRequestDuration)
	})
}

// Middleware records a counter and latency histogram per request. The path
// label uses the route template, keeping cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	register()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			method := c.Request().Method
			path := c.Path()
			httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the prometheus exposition endpoint.
func Handler() echo.HandlerFunc {
	register()
	return echo.WrapHandler(promhttp.Handler())
}
