package sampler

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/qubo-tools/intqm/pkg/bqm"
)

// ThrottledSampler limits how often the wrapped sampler is invoked.
// Callers block until the limiter admits them or ctx is done.
type ThrottledSampler struct {
	sampler bqm.Sampler
	limiter *rate.Limiter
}

var _ bqm.Sampler = &ThrottledSampler{}

func NewThrottledSampler(sampler bqm.Sampler, limiter *rate.Limiter) *ThrottledSampler {
	return &ThrottledSampler{
		sampler: sampler,
		limiter: limiter,
	}
}

func (ts *ThrottledSampler) Sample(ctx context.Context, m *bqm.Model, params bqm.Parameters) (*bqm.SampleSet[bqm.Label], error) {
	if err := ts.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "waiting for sampler rate limit")
	}
	return ts.sampler.Sample(ctx, m, params)
}
