// Package exact implements a sampler that enumerates every assignment
// of a binary quadratic model.
package exact

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/qubo-tools/intqm/pkg/bqm"
	"github.com/qubo-tools/intqm/pkg/lib/codec"
)

// MaxVariables bounds the size of models the sampler accepts; the
// result holds 2^n records.
const MaxVariables = 20

// checkEvery is the number of states enumerated between checks of the
// context.
const checkEvery = 1 << 10

type parameters struct {
	// Workers is the number of goroutines enumerating states.
	// Defaults to GOMAXPROCS.
	Workers int `mapstructure:"workers"`
}

// Sampler returns one record per assignment, each with a single
// occurrence, in counting order: variable i of state s is bit i of s.
type Sampler struct{}

var _ bqm.Sampler = Sampler{}

func New() Sampler {
	return Sampler{}
}

func (Sampler) Sample(ctx context.Context, m *bqm.Model, params bqm.Parameters) (*bqm.SampleSet[bqm.Label], error) {
	var p parameters
	if err := codec.Decode(params, &p); err != nil {
		return nil, errors.Wrap(err, "invalid exact sampler parameters")
	}
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}

	problem := m.Compile()
	n := problem.NumVariables()
	if n > MaxVariables {
		return nil, errors.Errorf("model has %d variables, at most %d can be enumerated", n, MaxVariables)
	}

	total := 1 << uint(n)
	records := make([]bqm.Record, total)
	chunk := (total + p.Workers - 1) / p.Workers

	g, ctx := errgroup.WithContext(ctx)
	for first := 0; first < total; first += chunk {
		first, last := first, min(first+chunk, total)
		g.Go(func() error {
			state := make([]int8, n)
			for s := first; s < last; s++ {
				if (s-first)%checkEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				records[s] = record(problem, state, s)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bqm.NewSampleSet(problem.Labels, records, nil, problem.Vartype), nil
}

// record fills state with assignment s and returns its record. state
// is scratch space reused between calls.
func record(p *bqm.Problem, state []int8, s int) bqm.Record {
	low, high := p.Vartype.Values()
	sample := make([]int64, len(state))
	for i := range state {
		v := low
		if s>>uint(i)&1 == 1 {
			v = high
		}
		state[i] = int8(v)
		sample[i] = v
	}
	return bqm.Record{
		Sample:         sample,
		Energy:         p.Energy(state),
		NumOccurrences: 1,
	}
}
