package cache

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - счетчики обращений к кэшу с меткой вида ресурса
type Metrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

// NewMetrics регистрирует счетчики в reg; если reg равен nil, счетчики не регистрируются.
// Повторная регистрация возвращает уже зарегистрированные коллекторы.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Number of reads served from a fresh cache entry.",
		}, []string{"resource"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Number of reads that required a backend fetch.",
		}, []string{"resource"}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_fetch_errors_total",
			Help: "Number of failed backend fetches.",
		}, []string{"resource"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Number of cache entries marked stale.",
		}, []string{"resource"}),
	}

	if reg == nil {
		return m
	}

	m.hits = register(reg, m.hits)
	m.misses = register(reg, m.misses)
	m.fetchErrors = register(reg, m.fetchErrors)
	m.invalidations = register(reg, m.invalidations)
	return m
}

func register(reg prometheus.Registerer, collector *prometheus.CounterVec) *prometheus.CounterVec {
	err := reg.Register(collector)
	if err == nil {
		return collector
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing
		}
	}
	panic(err)
}
