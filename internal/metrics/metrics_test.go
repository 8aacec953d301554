package metrics_test

import (
	"errors"
	"testing"
	"time"

	"taskboard/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTaskOperation_CountsByOutcome(t *testing.T) {
	success := metrics.TaskOperations.WithLabelValues("metrics_test", metrics.StatusSuccess)
	failure := metrics.TaskOperations.WithLabelValues("metrics_test", metrics.StatusError)
	beforeSuccess := testutil.ToFloat64(success)
	beforeFailure := testutil.ToFloat64(failure)

	metrics.ObserveTaskOperation("metrics_test", time.Now(), nil)
	metrics.ObserveTaskOperation("metrics_test", time.Now(), nil)
	metrics.ObserveTaskOperation("metrics_test", time.Now(), errors.New("boom"))

	assert.Equal(t, beforeSuccess+2, testutil.ToFloat64(success))
	assert.Equal(t, beforeFailure+1, testutil.ToFloat64(failure))
}
