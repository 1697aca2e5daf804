package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты обращения к кэшу доступности
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheBypass = "bypass" // запрос на сегодняшнюю дату, кэш не используется
	CacheError  = "error"
)

// Metrics набор prometheus метрик сервиса
// Каждый экземпляр использует собственный реестр
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	CacheLookupsTotal       *prometheus.CounterVec
	CacheWriteErrorsTotal   *prometheus.CounterVec
	CacheInvalidationsTotal *prometheus.CounterVec
	SlotsGenerated          *prometheus.HistogramVec
}

// New создает и регистрирует метрики для сервиса serviceName
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		CacheLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_lookups_total",
			Help:        "Availability cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		CacheWriteErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_write_errors_total",
			Help:        "Failed availability cache write-backs",
			ConstLabels: constLabels,
		}, []string{"driver"}),

		CacheInvalidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_invalidations_total",
			Help:        "Availability cache keys deleted by write events",
			ConstLabels: constLabels,
		}, []string{"source"}),

		SlotsGenerated: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_slots_generated",
			Help:        "Number of slots returned per computed availability query",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 5, 10, 20, 40, 80},
		}, []string{}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.CacheLookupsTotal,
		m.CacheWriteErrorsTotal,
		m.CacheInvalidationsTotal,
		m.SlotsGenerated,
	)

	return m
}

// Handler возвращает HTTP handler для эндпоинта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveCacheLookup учитывает результат обращения к кэшу доступности
func (m *Metrics) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveCacheWriteError учитывает неудачную запись в кэш
func (m *Metrics) ObserveCacheWriteError(driver string) {
	if m == nil {
		return
	}
	m.CacheWriteErrorsTotal.WithLabelValues(driver).Inc()
}

// ObserveInvalidation учитывает удаление ключа кэша
func (m *Metrics) ObserveInvalidation(source string) {
	if m == nil {
		return
	}
	m.CacheInvalidationsTotal.WithLabelValues(source).Inc()
}

// ObserveSlotsGenerated учитывает количество сгенерированных слотов
func (m *Metrics) ObserveSlotsGenerated(count int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues().Observe(float64(count))
}
