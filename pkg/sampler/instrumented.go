package sampler

import (
	"context"
	"time"

	"github.com/qubo-tools/intqm/pkg/bqm"
)

type InstrumentedSampler struct {
	sampler               bqm.Sampler
	successMetricsEmitter func(time.Duration)
	failureMetricsEmitter func(time.Duration)
}

var _ bqm.Sampler = &InstrumentedSampler{}

func NewInstrumentedSampler(sampler bqm.Sampler, successMetricsEmitter, failureMetricsEmitter func(time.Duration)) *InstrumentedSampler {
	return &InstrumentedSampler{
		sampler:               sampler,
		successMetricsEmitter: successMetricsEmitter,
		failureMetricsEmitter: failureMetricsEmitter,
	}
}

func (is *InstrumentedSampler) Sample(ctx context.Context, m *bqm.Model, params bqm.Parameters) (*bqm.SampleSet[bqm.Label], error) {
	start := time.Now()
	set, err := is.sampler.Sample(ctx, m, params)
	if err != nil {
		is.failureMetricsEmitter(time.Since(start))
	} else {
		is.successMetricsEmitter(time.Since(start))
	}
	return set, err
}
