package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer captures telemetry for artifact uploads and record persistence.
type Observer interface {
	RecordUpload(category string, duration time.Duration, sizeBytes int64, err error)
	RecordPersist(duration time.Duration, err error)
}

// NopObserver discards all telemetry.
type NopObserver struct{}

func (NopObserver) RecordUpload(string, time.Duration, int64, error) {}
func (NopObserver) RecordPersist(time.Duration, error)               {}

// PrometheusObserver exports upload metrics to Prometheus.
type PrometheusObserver struct {
	uploadDuration  *prometheus.HistogramVec
	operationErrors *prometheus.CounterVec
	uploadBytes     *prometheus.CounterVec
	recordsTotal    prometheus.Counter
}

// NewPrometheusObserver registers upload and persistence metrics on reg.
// Collectors that are already registered are reused.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "apkdl"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		uploadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of object uploads and record inserts.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "category"}),
		operationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Count of failed uploads and record inserts.",
		}, []string{"operation", "category"}),
		uploadBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_bytes_total",
			Help:      "Cumulative payload size successfully uploaded to object storage.",
		}, []string{"category"}),
		recordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_records_total",
			Help:      "Number of upload records persisted.",
		}),
	}

	if err := register(reg, o.uploadDuration, &o.uploadDuration); err != nil {
		return nil, err
	}
	if err := register(reg, o.operationErrors, &o.operationErrors); err != nil {
		return nil, err
	}
	if err := register(reg, o.uploadBytes, &o.uploadBytes); err != nil {
		return nil, err
	}
	if err := register(reg, o.recordsTotal, &o.recordsTotal); err != nil {
		return nil, err
	}
	return o, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, dst *T) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				*dst = existing
				return nil
			}
		}
		return fmt.Errorf("register upload metric: %w", err)
	}
	return nil
}

// RecordUpload tracks upload duration, size, and failures per artifact category.
func (o *PrometheusObserver) RecordUpload(category string, duration time.Duration, sizeBytes int64, err error) {
	if o == nil {
		return
	}
	o.uploadDuration.WithLabelValues("upload", category).Observe(duration.Seconds())
	if err != nil {
		o.operationErrors.WithLabelValues("upload", category).Inc()
		return
	}
	if sizeBytes > 0 {
		o.uploadBytes.WithLabelValues(category).Add(float64(sizeBytes))
	}
}

// RecordPersist tracks record insert latency and failures.
func (o *PrometheusObserver) RecordPersist(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.uploadDuration.WithLabelValues("persist", "").Observe(duration.Seconds())
	if err != nil {
		o.operationErrors.WithLabelValues("persist", "").Inc()
		return
	}
	o.recordsTotal.Inc()
}
