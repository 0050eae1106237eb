package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry and every collector the portal exports.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	leaveRequests   *prometheus.CounterVec
	leaveDecisions  *prometheus.CounterVec
	leaveConflicts  *prometheus.CounterVec
	outboxPublished *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_portal_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hr_portal_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	leaveRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_portal_leave_requests_created_total",
		Help: "Leave requests created, by leave type.",
	}, []string{"leave_type_id"})
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_portal_leave_decisions_total",
		Help: "Leave request decisions by resulting status.",
	}, []string{"status"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_portal_leave_conflicts_total",
		Help: "Leave operations refused because of a department overlap.",
	}, []string{"operation"})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_portal_outbox_events_total",
		Help: "Outbox events relayed to Kafka by result.",
	}, []string{"event_type", "result"})
	registry.MustRegister(requests, duration, leaveRequests, decisions, conflicts, published)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		leaveRequests:   leaveRequests,
		leaveDecisions:  decisions,
		leaveConflicts:  conflicts,
		outboxPublished: published,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency of every request under its route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) LeaveRequested(leaveTypeID int64) {
	if m == nil {
		return
	}
	m.leaveRequests.WithLabelValues(strconv.FormatInt(leaveTypeID, 10)).Inc()
}

func (m *Metrics) LeaveDecided(status string) {
	if m == nil {
		return
	}
	m.leaveDecisions.WithLabelValues(status).Inc()
}

func (m *Metrics) LeaveConflict(operation string) {
	if m == nil {
		return
	}
	m.leaveConflicts.WithLabelValues(operation).Inc()
}

func (m *Metrics) OutboxPublished(eventType string, err error) {
	if m == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.outboxPublished.WithLabelValues(eventType, result).Inc()
}

// Registerer exposes the registry for collectors owned by other packages.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}
