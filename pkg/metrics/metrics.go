package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/qubo-tools/intqm/pkg/iqm"
)

const (
	Outcome   = "outcome"
	Succeeded = "succeeded"
	Failed    = "failed"
)

type MetricsProvider interface {
	HandleMetrics() error
}

type metricsModel struct {
	model *iqm.Model
}

// NewMetricsModel returns a provider reporting the size of model.
func NewMetricsModel(model *iqm.Model) MetricsProvider {
	return &metricsModel{model}
}

func (m *metricsModel) HandleMetrics() error {
	b := m.model.BQM()
	integerVariableCount.Set(float64(len(m.model.Variables())))
	binaryVariableCount.Set(float64(b.NumVariables()))
	binaryInteractionCount.Set(float64(b.NumInteractions()))
	return nil
}

type MetricsNil struct{}

func NewMetricsNil() MetricsProvider {
	return &MetricsNil{}
}

func (*MetricsNil) HandleMetrics() error {
	return nil
}

// To add new metrics:
// 1. Register new metrics in RegisterWith() below.
// 2. Add appropriate metric updates in HandleMetrics (or elsewhere instead).
var (
	integerVariableCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "intqm_integer_variables",
			Help: "Number of integer variables in the last encoded model",
		},
	)

	binaryVariableCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "intqm_binary_variables",
			Help: "Number of binary variables the last encoded model expands into",
		},
	)

	binaryInteractionCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "intqm_binary_interactions",
			Help: "Number of quadratic biases in the last encoded model",
		},
	)

	sampleDurationSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "intqm_sample_duration_seconds",
			Help:       "The duration of a sampler invocation",
			Objectives: map[float64]float64{0.95: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{Outcome},
	)
)

func RegisterWith(r prometheus.Registerer) {
	r.MustRegister(integerVariableCount)
	r.MustRegister(binaryVariableCount)
	r.MustRegister(binaryInteractionCount)
	r.MustRegister(sampleDurationSummary)
}

func RegisterSampleSuccess(duration time.Duration) {
	sampleDurationSummary.WithLabelValues(Succeeded).Observe(duration.Seconds())
}

func RegisterSampleFailure(duration time.Duration) {
	sampleDurationSummary.WithLabelValues(Failed).Observe(duration.Seconds())
}
