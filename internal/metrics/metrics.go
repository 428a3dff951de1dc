package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefix = "mow"

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Account metrics
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_registrations_total",
			Help: "Total number of successful registrations by role",
		},
		[]string{"role"},
	)

	LoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_logins_total",
			Help: "Total number of successful logins",
		},
	)

	AuthErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of failed register and login attempts",
		},
		[]string{"reason"},
	)

	// Meal metrics
	MealOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_meal_operations_total",
			Help: "Total number of meal operations",
		},
		[]string{"operation"},
	)
)

func RecordRegistration(role string) {
	RegistrationsTotal.WithLabelValues(role).Inc()
}

func RecordLogin() {
	LoginsTotal.Inc()
}

func RecordAuthError(reason string) {
	AuthErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordMealOperation increments the counter for meal operations
func RecordMealOperation(operation string) {
	MealOperationsTotal.WithLabelValues(operation).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
