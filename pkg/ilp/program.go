// Package ilp encodes integer linear programs with equality
// constraints as integer quadratic models.
//
// A Program asks to minimize cᵀx subject to Ax = b. The constraints are
// moved into the objective as the penalty term penalty·‖Ax − b‖², so
// that feasible assignments keep their objective value and every
// infeasible one pays for its residual.
package ilp

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/qubo-tools/intqm/pkg/bqm"
	"github.com/qubo-tools/intqm/pkg/iqm"
)

// DefaultPenalty weighs the constraint residual when a Program does not
// set one.
const DefaultPenalty = 1.0

// tolerance is the largest residual still considered feasible.
const tolerance = 1e-9

type Program struct {
	// C holds the objective coefficient of every variable.
	C []float64 `json:"c"`
	// A holds one row per equality constraint, each with one
	// coefficient per variable.
	A [][]float64 `json:"a,omitempty"`
	B []float64   `json:"b,omitempty"`
	// Kinds holds the kind of every variable.
	Kinds   []iqm.Kind `json:"kinds"`
	// Penalty weighs the constraint residual. Zero selects
	// DefaultPenalty.
	Penalty float64 `json:"penalty,omitempty"`
	// Precision overrides the model's default precisions.
	Precision iqm.Parameters `json:"precision,omitempty"`
}

// Load reads a Program from a YAML or JSON file.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading program %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading program %s", path)
	}
	return p, nil
}

// Parse decodes and validates a Program.
func Parse(data []byte) (*Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "decoding program")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// VariableName returns the identifier of the i-th variable.
func VariableName(i int) iqm.Identifier {
	return iqm.Identifier(fmt.Sprintf("x_%d", i))
}

func (p *Program) NumVariables() int {
	return len(p.C)
}

func (p *Program) NumConstraints() int {
	return len(p.A)
}

// Validate checks that the dimensions of the program agree.
func (p *Program) Validate() error {
	n := len(p.C)
	if n == 0 {
		return errors.New("program has no variables")
	}
	if len(p.Kinds) != n {
		return errors.Errorf("program has %d variables but %d kinds", n, len(p.Kinds))
	}
	for i, k := range p.Kinds {
		if k == iqm.Unspecified {
			return errors.Errorf("variable %s has no kind", VariableName(i))
		}
	}
	if len(p.B) != len(p.A) {
		return errors.Errorf("program has %d constraint rows but %d right hand sides", len(p.A), len(p.B))
	}
	for r, row := range p.A {
		if len(row) != n {
			return errors.Errorf("constraint %d has %d coefficients, expected %d", r, len(row), n)
		}
	}
	if p.Penalty < 0 || math.IsNaN(p.Penalty) {
		return errors.Errorf("penalty must not be negative, got %v", p.Penalty)
	}
	return nil
}

func (p *Program) penalty() float64 {
	if p.Penalty == 0 {
		return DefaultPenalty
	}
	return p.Penalty
}

func (p *Program) constraints() (*mat.Dense, *mat.VecDense) {
	m, n := len(p.A), len(p.C)
	data := make([]float64, 0, m*n)
	for _, row := range p.A {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), mat.NewVecDense(m, p.B)
}

// Encode builds the integer quadratic model of the program. The
// variable x_i is registered with Kinds[i]. options are applied after
// the program's own precision settings.
func (p *Program) Encode(options ...iqm.Option) (*iqm.Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	model, err := iqm.New(append(p.Precision.Options(), options...)...)
	if err != nil {
		return nil, err
	}

	n := len(p.C)
	for i, c := range p.C {
		if _, err := model.AddVariable(VariableName(i), c, p.Kinds[i]); err != nil {
			return nil, err
		}
	}
	if len(p.A) == 0 {
		return model, nil
	}

	// ‖Ax − b‖² = xᵀAᵀAx − 2(Aᵀb)ᵀx + bᵀb
	a, b := p.constraints()
	var ata mat.Dense
	ata.Mul(a.T(), a)
	var atb mat.VecDense
	atb.MulVec(a.T(), b)

	penalty := p.penalty()
	model.AddOffset(penalty * mat.Dot(b, b))
	for i := 0; i < n; i++ {
		if _, err := model.AddVariable(VariableName(i), -2*penalty*atb.AtVec(i), iqm.Unspecified); err != nil {
			return nil, err
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if q := ata.At(i, j); q != 0 {
				if err := model.AddInteraction(VariableName(i), VariableName(j), penalty*q); err != nil {
					return nil, err
				}
			}
		}
	}
	return model, nil
}

// Evaluate returns the objective value of an assignment and whether it
// satisfies every constraint.
func (p *Program) Evaluate(values map[iqm.Identifier]int64) (float64, bool, error) {
	if err := p.Validate(); err != nil {
		return 0, false, err
	}
	x := make([]float64, len(p.C))
	for i := range x {
		v, ok := values[VariableName(i)]
		if !ok {
			return 0, false, errors.Errorf("no value for variable %s", VariableName(i))
		}
		x[i] = float64(v)
	}
	xv := mat.NewVecDense(len(x), x)
	objective := mat.Dot(mat.NewVecDense(len(p.C), p.C), xv)
	if len(p.A) == 0 {
		return objective, true, nil
	}

	a, b := p.constraints()
	var residual mat.VecDense
	residual.MulVec(a, xv)
	residual.SubVec(&residual, b)
	return objective, mat.Norm(&residual, math.Inf(1)) <= tolerance, nil
}

// Sample encodes the program and samples it with sampler.
func (p *Program) Sample(ctx context.Context, sampler bqm.Sampler, params bqm.Parameters, options ...iqm.Option) (*bqm.SampleSet[iqm.Identifier], error) {
	model, err := p.Encode(options...)
	if err != nil {
		return nil, err
	}
	return model.Sample(ctx, sampler, params)
}
