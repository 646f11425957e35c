// Package anneal implements a simulated annealing sampler for binary
// quadratic models.
package anneal

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/qubo-tools/intqm/pkg/bqm"
	"github.com/qubo-tools/intqm/pkg/lib/codec"
)

const (
	DefaultNumReads  = 10
	DefaultNumSweeps = 1000

	Linear    = "linear"
	Geometric = "geometric"
)

type parameters struct {
	NumReads  int `mapstructure:"num_reads"`
	NumSweeps int `mapstructure:"num_sweeps"`
	// BetaRange is the inverse temperature at the first and the last
	// sweep. Derived from the biases when unset.
	BetaRange        [2]float64 `mapstructure:"beta_range"`
	BetaScheduleType string     `mapstructure:"beta_schedule_type"`
	Seed             *int64     `mapstructure:"seed"`
	Workers          int        `mapstructure:"workers"`
}

func decode(params bqm.Parameters) (parameters, error) {
	p := parameters{
		NumReads:         DefaultNumReads,
		NumSweeps:        DefaultNumSweeps,
		BetaScheduleType: Geometric,
		Workers:          runtime.GOMAXPROCS(0),
	}
	if err := codec.Decode(params, &p); err != nil {
		return p, errors.Wrap(err, "invalid annealing parameters")
	}
	switch {
	case p.NumReads <= 0:
		return p, errors.Errorf("num_reads must be positive, got %d", p.NumReads)
	case p.NumSweeps <= 0:
		return p, errors.Errorf("num_sweeps must be positive, got %d", p.NumSweeps)
	case p.BetaRange != [2]float64{} && (p.BetaRange[0] <= 0 || p.BetaRange[1] <= 0):
		return p, errors.Errorf("beta_range must be positive, got %v", p.BetaRange)
	case p.BetaScheduleType != Linear && p.BetaScheduleType != Geometric:
		return p, errors.Errorf("unknown beta_schedule_type %q", p.BetaScheduleType)
	}
	if p.Workers <= 0 {
		p.Workers = 1
	}
	return p, nil
}

// Sampler runs independent single-flip Metropolis anneals, one per
// read, and reports the final state of each. Reads run concurrently.
//
// Recognised parameters: num_reads, num_sweeps, beta_range,
// beta_schedule_type ("linear" or "geometric"), seed and workers. Read
// r draws from a source seeded with seed+r, so a fixed seed gives
// reproducible results regardless of workers.
type Sampler struct{}

var _ bqm.Sampler = Sampler{}

func New() Sampler {
	return Sampler{}
}

func (Sampler) Sample(ctx context.Context, m *bqm.Model, params bqm.Parameters) (*bqm.SampleSet[bqm.Label], error) {
	p, err := decode(params)
	if err != nil {
		return nil, err
	}

	problem := m.Compile()
	betaRange := p.BetaRange
	if betaRange == [2]float64{} {
		betaRange = DefaultBetaRange(problem)
	}
	schedule := Schedule(p.BetaScheduleType, betaRange, p.NumSweeps)

	seed := time.Now().UnixNano()
	if p.Seed != nil {
		seed = *p.Seed
	}

	states := make([][]int8, p.NumReads)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for r := range states {
		r := r
		g.Go(func() error {
			state, err := anneal(ctx, problem, schedule, rand.New(rand.NewSource(seed+int64(r))))
			states[r] = state
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bqm.FromStates(problem, states, map[string]interface{}{
		"beta_range":         betaRange,
		"beta_schedule_type": p.BetaScheduleType,
		"seed":               seed,
	}), nil
}

func anneal(ctx context.Context, p *bqm.Problem, schedule []float64, rnd *rand.Rand) ([]int8, error) {
	low, high := p.Vartype.Values()
	state := make([]int8, p.NumVariables())
	for i := range state {
		state[i] = int8(low)
		if rnd.Intn(2) == 1 {
			state[i] = int8(high)
		}
	}

	for _, beta := range schedule {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range state {
			delta := p.Delta(state, i)
			if delta <= 0 || rnd.Float64() < math.Exp(-beta*delta) {
				p.Flip(state, i)
			}
		}
	}
	return state, nil
}

// DefaultBetaRange picks the inverse temperatures so that the largest
// possible single flip is accepted with probability 1/2 at the start,
// and the smallest nonzero bias with probability 1/100 at the end.
func DefaultBetaRange(p *bqm.Problem) [2]float64 {
	scale := 1.0
	if p.Vartype == bqm.Spin {
		scale = 2
	}

	var maxField float64
	minBias := math.Inf(1)
	for i, h := range p.Linear {
		field := math.Abs(h)
		for _, n := range p.Neighbors(i) {
			field += math.Abs(n.Bias)
		}
		maxField = math.Max(maxField, scale*field)
		if h != 0 {
			minBias = math.Min(minBias, scale*math.Abs(h))
		}
	}
	for _, c := range p.Couplings {
		if c.Bias != 0 {
			minBias = math.Min(minBias, scale*math.Abs(c.Bias))
		}
	}

	if maxField == 0 || math.IsInf(minBias, 1) {
		return [2]float64{0.1, 1}
	}
	hot, cold := math.Ln2/maxField, math.Log(100)/minBias
	if cold < hot {
		cold = hot
	}
	return [2]float64{hot, cold}
}

// Schedule returns the inverse temperature of each sweep, moving from
// betaRange[0] to betaRange[1] linearly or geometrically.
func Schedule(kind string, betaRange [2]float64, sweeps int) []float64 {
	schedule := make([]float64, sweeps)
	if sweeps == 1 {
		schedule[0] = betaRange[1]
		return schedule
	}
	for k := range schedule {
		t := float64(k) / float64(sweeps-1)
		if kind == Linear {
			schedule[k] = betaRange[0] + t*(betaRange[1]-betaRange[0])
		} else {
			schedule[k] = betaRange[0] * math.Pow(betaRange[1]/betaRange[0], t)
		}
	}
	return schedule
}
