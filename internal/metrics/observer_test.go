package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apkdownloader/internal/metrics"
)

func TestPrometheusObserver_RecordUpload(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := metrics.NewPrometheusObserver("test", reg)
	require.NoError(t, err)

	o.RecordUpload("IOS", 20*time.Millisecond, 2048, nil)
	o.RecordUpload("IMAGES", 5*time.Millisecond, 100, nil)
	o.RecordUpload("IMAGES", 5*time.Millisecond, 100, errors.New("boom"))

	count, err := testutil.GatherAndCount(reg, "test_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "test_operation_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheusObserver_RecordPersist(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := metrics.NewPrometheusObserver("test", reg)
	require.NoError(t, err)

	o.RecordPersist(time.Millisecond, nil)
	o.RecordPersist(time.Millisecond, nil)
	o.RecordPersist(time.Millisecond, errors.New("insert failed"))

	count, err := testutil.GatherAndCount(reg, "test_upload_records_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewPrometheusObserver_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewPrometheusObserver("test", reg)
	require.NoError(t, err)

	_, err = metrics.NewPrometheusObserver("test", reg)
	assert.NoError(t, err)
}

func TestPrometheusObserver_NilSafe(t *testing.T) {
	var o *metrics.PrometheusObserver
	assert.NotPanics(t, func() {
		o.RecordUpload("APP", time.Second, 1, nil)
		o.RecordPersist(time.Second, nil)
	})
}
