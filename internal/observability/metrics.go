// Package observability holds the Prometheus metrics for the API.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	requestsTotal    *prometheus.CounterVec
	expensesCreated  prometheus.Counter
	budgetAlerts     *prometheus.CounterVec
	scanRequests     *prometheus.CounterVec
	eventsPublished  *prometheus.CounterVec
	websocketClients prometheus.Gauge
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "centavo_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "centavo_requests_total",
				Help: "Total HTTP requests processed.",
			},
			[]string{"route", "status"},
		),
		expensesCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "centavo_expenses_created_total",
				Help: "Total expenses recorded.",
			},
		),
		budgetAlerts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "centavo_budget_alerts_total",
				Help: "Total budget threshold alerts raised.",
			},
			[]string{"status"},
		),
		scanRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "centavo_receipt_scans_total",
				Help: "Total receipt scan attempts.",
			},
			[]string{"outcome"},
		),
		eventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "centavo_events_published_total",
				Help: "Total domain events published to the broker.",
			},
			[]string{"event"},
		),
		websocketClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "centavo_websocket_clients",
				Help: "Currently connected WebSocket clients.",
			},
		),
	}
}

// RecordRequestDuration records the duration of a request for a route.
func (m *Metrics) RecordRequestDuration(route string, d time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// IncrRequest increments the request counter for a route and status code class.
func (m *Metrics) IncrRequest(route, status string) {
	m.requestsTotal.WithLabelValues(route, status).Inc()
}

// IncrExpenseCreated increments the created expense counter.
func (m *Metrics) IncrExpenseCreated() {
	m.expensesCreated.Inc()
}

// IncrBudgetAlert increments the budget alert counter for a status.
func (m *Metrics) IncrBudgetAlert(status string) {
	m.budgetAlerts.WithLabelValues(status).Inc()
}

// IncrScanRequest increments the receipt scan counter with an outcome label.
func (m *Metrics) IncrScanRequest(outcome string) {
	m.scanRequests.WithLabelValues(outcome).Inc()
}

// IncrEventPublished increments the published event counter.
func (m *Metrics) IncrEventPublished(event string) {
	m.eventsPublished.WithLabelValues(event).Inc()
}

// SetWebsocketClients sets the connected WebSocket client gauge.
func (m *Metrics) SetWebsocketClients(n int) {
	m.websocketClients.Set(float64(n))
}
