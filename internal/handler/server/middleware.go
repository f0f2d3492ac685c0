package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/logger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type Metrics struct {
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of local API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	if reg != nil {
		if err := reg.Register(duration); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				duration = are.ExistingCollector.(*prometheus.HistogramVec)
			}
		}
	}
	return &Metrics{duration: duration}
}

// withRequestContext проставляет request_id, пишет access-лог и длительность запроса
func withRequestContext(next http.Handler, metrics *Metrics, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		r = r.WithContext(logger.WithRequestID(r.Context(), requestID))
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.duration.
			WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).
			Observe(elapsed.Seconds())

		logger.WithContext(r.Context(), log).Debug("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", elapsed),
		)
	})
}
