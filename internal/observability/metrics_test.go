package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetricsMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := NewMetrics()

	r := gin.New()
	r.Use(metrics.Middleware())
	r.GET("/leave-requests/:id", func(c *gin.Context) {
		c.Status(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/leave-requests/42", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t, metrics)
	assert.Contains(t, body, `hr_portal_http_requests_total{code="418",route="/leave-requests/:id"} 1`)
	assert.Contains(t, body, `hr_portal_http_request_duration_seconds_bucket{route="/leave-requests/:id"`)
}

func TestMetricsMiddlewareUnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := NewMetrics()

	r := gin.New()
	r.Use(metrics.Middleware())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Contains(t, scrape(t, metrics), `hr_portal_http_requests_total{code="404",route="unknown"} 1`)
}

func TestLeaveCounters(t *testing.T) {
	metrics := NewMetrics()

	metrics.LeaveRequested(1)
	metrics.LeaveDecided("APPROVED")
	metrics.LeaveDecided("APPROVED")
	metrics.LeaveConflict("create")
	metrics.OutboxPublished("leave.requested", nil)
	metrics.OutboxPublished("leave.requested", errors.New("broker down"))

	body := scrape(t, metrics)
	assert.Contains(t, body, `hr_portal_leave_requests_created_total{leave_type_id="1"} 1`)
	assert.Contains(t, body, `hr_portal_leave_decisions_total{status="APPROVED"} 2`)
	assert.Contains(t, body, `hr_portal_leave_conflicts_total{operation="create"} 1`)
	assert.Contains(t, body, `hr_portal_outbox_events_total{event_type="leave.requested",result="sent"} 1`)
	assert.Contains(t, body, `hr_portal_outbox_events_total{event_type="leave.requested",result="failed"} 1`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var metrics *Metrics

	assert.NotPanics(t, func() {
		metrics.LeaveRequested(1)
		metrics.LeaveDecided("REJECTED")
		metrics.LeaveConflict("approve")
		metrics.OutboxPublished("leave.approved", nil)
	})

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
