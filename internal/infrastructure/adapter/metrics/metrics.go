package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the panel's Prometheus collectors behind one registry
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	OrdersPlaced       *prometheus.CounterVec
	DepositsRecorded   prometheus.Counter
	CommissionsPaid    prometheus.Counter
	ProviderFailures   *prometheus.CounterVec
	DispatchQueueDepth prometheus.Gauge
}

// New creates and registers all collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		OrdersPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_placed_total",
				Help: "Total number of orders placed",
			},
			[]string{"status"},
		),
		DepositsRecorded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "deposits_recorded_total",
				Help: "Total number of deposits recorded",
			},
		),
		CommissionsPaid: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "referral_commissions_paid_total",
				Help: "Total number of referral commissions paid",
			},
		),
		ProviderFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_failures_total",
				Help: "Total number of failed provider API calls",
			},
			[]string{"action"},
		),
		DispatchQueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "order_dispatch_queue_depth",
				Help: "Current number of orders waiting for dispatch",
			},
		),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.OrdersPlaced,
		m.DepositsRecorded,
		m.CommissionsPaid,
		m.ProviderFailures,
		m.DispatchQueueDepth,
	)
	return m
}

// Handler returns the scrape endpoint handler
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// OrderPlaced counts a checkout attempt by outcome
func (m *Metrics) OrderPlaced(outcome string) {
	m.OrdersPlaced.WithLabelValues(outcome).Inc()
}

// DepositRecorded counts a credited deposit
func (m *Metrics) DepositRecorded() {
	m.DepositsRecorded.Inc()
}

// CommissionPaid counts a paid referral commission
func (m *Metrics) CommissionPaid() {
	m.CommissionsPaid.Inc()
}

// ProviderFailure counts a failed upstream call by action
func (m *Metrics) ProviderFailure(action string) {
	m.ProviderFailures.WithLabelValues(action).Inc()
}

// SetDispatchQueueDepth reports the dispatch backlog size
func (m *Metrics) SetDispatchQueueDepth(depth int) {
	m.DispatchQueueDepth.Set(float64(depth))
}

// GinMiddleware records request counts and latencies per route
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		timer := prometheus.NewTimer(m.RequestDuration.WithLabelValues(c.Request.Method, path))
		c.Next()
		timer.ObserveDuration()

		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
