// Package observability регистрирует метрики Prometheus сервиса.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tracker"

// Результаты обращения к кэшу.
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheError  = "error"
	CacheBypass = "bypass"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	exercisesLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exercises_logged_total",
		Help:      "Exercises appended to user logs.",
	})

	usersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Users registered.",
	})

	logQueryEntries = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "log_query_entries",
		Help:      "Entries returned by log queries.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
	})

	cacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "User cache lookups by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, exercisesLogged, usersCreated, logQueryEntries, cacheRequests)
}

// ObserveHTTPRequest учитывает обработанный запрос.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordExerciseLogged учитывает добавленное упражнение.
func RecordExerciseLogged() {
	exercisesLogged.Inc()
}

// RecordUserCreated учитывает нового пользователя.
func RecordUserCreated() {
	usersCreated.Inc()
}

// ObserveLogQuery учитывает размер ответа на запрос журнала.
func ObserveLogQuery(entries int) {
	logQueryEntries.Observe(float64(entries))
}

// RecordCacheResult учитывает результат обращения к кэшу.
func RecordCacheResult(result string) {
	cacheRequests.WithLabelValues(result).Inc()
}

// Handler отдает метрики в формате Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
