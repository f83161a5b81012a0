package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetricsIsIdempotent(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(ParseFailures().WithLabelValues("generation"))
	ParseFailures().WithLabelValues("generation").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(ParseFailures().WithLabelValues("generation")))

	WorkerWaiting().Set(3)
	require.Equal(t, float64(3), testutil.ToFloat64(WorkerWaiting()))
	WorkerWaiting().Set(0)
}
