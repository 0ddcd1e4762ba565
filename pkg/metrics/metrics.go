package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics контейнер prometheus-коллекторов сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbPoolOpenConns  *prometheus.GaugeVec
	dbPoolInUseConns *prometheus.GaugeVec
	dbPoolIdleConns  *prometheus.GaugeVec
}

// New создает и регистрирует коллекторы в default-регистре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds.",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbPoolOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbPoolInUseConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of in-use connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbPoolIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"db"}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, result).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauges состояния connection pool
func (m *Metrics) SetDBPoolStats(db string, open, inUse, idle int) {
	m.dbPoolOpenConns.WithLabelValues(db).Set(float64(open))
	m.dbPoolInUseConns.WithLabelValues(db).Set(float64(inUse))
	m.dbPoolIdleConns.WithLabelValues(db).Set(float64(idle))
}
