package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := New(DefaultConfig("stock-master"))

	m.RecordValidation("Receipt", "completed")
	m.RecordValidation("Receipt", "completed")
	m.RecordGeofenceRejection("Main Warehouse")
	m.RecordStockChange("quick-add", "add", true)
	m.RecordAIRequest("interpret", false, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsValidated.WithLabelValues("stock-master", "Receipt", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeofenceRejections.WithLabelValues("stock-master", "Main Warehouse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StockChanges.WithLabelValues("stock-master", "quick-add", "add", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AIRequests.WithLabelValues("stock-master", "interpret", "error")))
}

func TestMetrics_LowStockGauge(t *testing.T) {
	m := New(DefaultConfig("stock-master"))
	m.SetLowStockProducts(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.LowStockProducts))
}
