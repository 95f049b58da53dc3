package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	sweepRuns       prometheus.Counter
	renewalNotices  prometheus.Counter
	expiredTotal    prometheus.Counter
}

// NewMetricsService registers the collectors on a fresh registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	sweepRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "renewal_sweep_runs_total",
		Help: "Total renewal sweep executions",
	})

	renewalNotices := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "renewal_notices_total",
		Help: "Total renewal notifications delivered",
	})

	expiredTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrollments_expired_total",
		Help: "Total enrollments marked expired by the sweep",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, sweepRuns, renewalNotices, expiredTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		sweepRuns:       sweepRuns,
		renewalNotices:  renewalNotices,
		expiredTotal:    expiredTotal,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveRequest records a completed HTTP request.
func (s *MetricsService) ObserveRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// IncSweepRun counts a renewal sweep execution.
func (s *MetricsService) IncSweepRun() {
	s.sweepRuns.Inc()
}

// IncRenewalNotice counts a delivered renewal notification.
func (s *MetricsService) IncRenewalNotice() {
	s.renewalNotices.Inc()
}

// IncExpiredEnrollment counts an enrollment marked expired.
func (s *MetricsService) IncExpiredEnrollment() {
	s.expiredTotal.Inc()
}
