package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	// Бизнес-метрики
	SlotClicksTotal   *prometheus.CounterVec
	PriceLookupsTotal *prometheus.CounterVec
	GridRefreshTotal  *prometheus.CounterVec
	SubmissionsTotal  *prometheus.CounterVec
}

// New регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном registry (удобно для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		SlotClicksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_clicks_total",
			Help:        "Grid cell clicks by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		PriceLookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "price_lookups_total",
			Help:        "Price lookups by result (ok, failed, stale)",
			ConstLabels: constLabels,
		}, []string{"result"}),

		GridRefreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "grid_refresh_total",
			Help:        "Booked interval refreshes by result (ok, failed, stale)",
			ConstLabels: constLabels,
		}, []string{"result"}),

		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_submissions_total",
			Help:        "Booking submissions by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveClick(outcome string) {
	m.SlotClicksTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePriceLookup(result string) {
	m.PriceLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRefresh(result string) {
	m.GridRefreshTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSubmission(result string) {
	m.SubmissionsTotal.WithLabelValues(result).Inc()
}

// Noop реализация наблюдателя, когда метрики выключены
type Noop struct{}

func (Noop) ObserveClick(string)       {}
func (Noop) ObservePriceLookup(string) {}
func (Noop) ObserveRefresh(string)     {}
func (Noop) ObserveSubmission(string)  {}
