package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/qubo-tools/intqm/pkg/iqm"
	"github.com/qubo-tools/intqm/pkg/metrics"
)

func TestHandleMetricsModel(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	metrics.RegisterWith(reg)

	m, err := iqm.New(iqm.WithUnsignedPrecision(3))
	require.NoError(t, err)
	_, err = m.AddVariable("x", 1, iqm.UnsignedInteger)
	require.NoError(t, err)
	_, err = m.AddVariable("b", 1, iqm.Binary)
	require.NoError(t, err)
	require.NoError(t, m.AddInteraction("x", "b", 2))

	require.NoError(t, metrics.NewMetricsModel(m).HandleMetrics())

	expected := `
# HELP intqm_binary_interactions Number of quadratic biases in the last encoded model
# TYPE intqm_binary_interactions gauge
intqm_binary_interactions 3
# HELP intqm_binary_variables Number of binary variables the last encoded model expands into
# TYPE intqm_binary_variables gauge
intqm_binary_variables 4
# HELP intqm_integer_variables Number of integer variables in the last encoded model
# TYPE intqm_integer_variables gauge
intqm_integer_variables 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"intqm_integer_variables", "intqm_binary_variables", "intqm_binary_interactions"))
}

func TestRegisterSampleOutcome(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	metrics.RegisterWith(reg)

	metrics.RegisterSampleSuccess(time.Second)
	metrics.RegisterSampleFailure(time.Second)

	count, err := testutil.GatherAndCount(reg, "intqm_sample_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestMetricsNil(t *testing.T) {
	require.NoError(t, metrics.NewMetricsNil().HandleMetrics())
}
