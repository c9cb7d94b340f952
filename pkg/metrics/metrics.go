package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds every metric exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Buckets tuned for in-process stores (sub-millisecond) up to object storage uploads
	CustomAPIBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Store (collaborator) Metrics
	StoreOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Data store operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"backend", "operation", "status"},
	)

	StoreOperationTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of data store operations",
		},
		[]string{"backend", "operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Object storage Metrics
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"backend", "operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"backend", "operation", "status"},
	)

	// Business Metrics
	Registrations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nmm_registrations_total",
			Help: "Total registration attempts",
		},
		[]string{"role", "status"},
	)

	RegistrationValidationErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nmm_registration_validation_errors_total",
			Help: "Total registration validation errors by field",
		},
		[]string{"field"},
	)

	LoginAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nmm_login_attempts_total",
			Help: "Total login attempts",
		},
		[]string{"method", "status"},
	)

	LoginDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nmm_login_duration_seconds",
			Help:    "Login duration in seconds",
			Buckets: CustomAPIBuckets,
		},
	)

	OTPRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nmm_otp_requests_total",
			Help: "Total OTP code requests",
		},
		[]string{"status"},
	)

	SessionsCreated = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "nmm_mentoring_sessions_created_total",
			Help: "Total mentoring sessions created",
		},
	)

	ResourceUploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nmm_resource_uploads_total",
			Help: "Total resource uploads",
		},
		[]string{"type", "status"},
	)

	HelpdeskTickets = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nmm_helpdesk_tickets_total",
			Help: "Total help desk tickets created",
		},
		[]string{"category", "priority"},
	)

	PreferenceUpdates = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nmm_preference_updates_total",
			Help: "Total preference updates",
		},
		[]string{"backend", "status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// Init registers the process and Go runtime collectors
func Init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordInfrastructureMetrics collects infrastructure metrics until ctx is done
func RecordInfrastructureMetrics(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

// ObserveStore records one data store operation
func ObserveStore(backend, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreOperationDuration.WithLabelValues(backend, operation, status).Observe(MeasureDuration(start))
	StoreOperationTotal.WithLabelValues(backend, operation, status).Inc()
}
