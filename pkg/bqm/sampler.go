package bqm

import "context"

// Parameters carries sampler specific settings. Callers that sit
// between a user and a Sampler forward it without interpretation.
type Parameters map[string]interface{}

// Sampler solves a Model and reports the assignments it found.
// Implementations may block for a long time, e.g. on a remote solver;
// they should give up when ctx is done.
type Sampler interface {
	Sample(ctx context.Context, m *Model, params Parameters) (*SampleSet[Label], error)
}

// SamplerFunc is a simple implementation of Sampler.
type SamplerFunc func(ctx context.Context, m *Model, params Parameters) (*SampleSet[Label], error)

func (f SamplerFunc) Sample(ctx context.Context, m *Model, params Parameters) (*SampleSet[Label], error) {
	return f(ctx, m, params)
}

// FromStates builds the SampleSet for a Problem from raw solver states,
// one row per state with a single occurrence.
func FromStates(p *Problem, states [][]int8, info map[string]interface{}) *SampleSet[Label] {
	records := make([]Record, len(states))
	for r, state := range states {
		sample := make([]int64, len(state))
		for i, v := range state {
			sample[i] = int64(v)
		}
		records[r] = Record{
			Sample:         sample,
			Energy:         p.Energy(state),
			NumOccurrences: 1,
		}
	}
	return NewSampleSet(p.Labels, records, info, p.Vartype)
}
