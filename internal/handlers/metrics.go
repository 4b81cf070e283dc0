package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type httpMetrics struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	logins   *prometheus.CounterVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookfans_login_attempts_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.duration, m.total, m.logins)
	return m
}

// observe records one sample per request. Unmatched routes share a label so
// random paths cannot blow up cardinality.
func (m *httpMetrics) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())
	m.duration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	m.total.WithLabelValues(c.Request.Method, path, status).Inc()
}

func (h *Handler) countLogin(result string) {
	if h.metrics == nil {
		return
	}
	h.metrics.logins.WithLabelValues(result).Inc()
}
