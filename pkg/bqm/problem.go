package bqm

// Coupling is a quadratic bias between the variables at positions I
// and J of a Problem, with I < J.
type Coupling struct {
	I, J int
	Bias float64
}

// Neighbor is one side of a Coupling as seen from the other variable.
type Neighbor struct {
	J    int
	Bias float64
}

// Problem is the index-based form of a Model that samplers work on.
// Position i of a state corresponds to Labels[i].
type Problem struct {
	Vartype   Vartype
	Labels    []Label
	Linear    []float64
	Couplings []Coupling
	Offset    float64

	neighbors [][]Neighbor
}

func (p *Problem) NumVariables() int {
	return len(p.Labels)
}

// Neighbors returns the couplings incident to variable i.
func (p *Problem) Neighbors(i int) []Neighbor {
	return p.neighbors[i]
}

// Energy evaluates the problem for a full state.
func (p *Problem) Energy(state []int8) float64 {
	e := p.Offset
	for i, h := range p.Linear {
		e += h * float64(state[i])
	}
	for _, c := range p.Couplings {
		e += c.Bias * float64(state[c.I]) * float64(state[c.J])
	}
	return e
}

// Field returns the local field of variable i: its linear bias plus the
// coupling biases weighted by the current values of its neighbors.
func (p *Problem) Field(state []int8, i int) float64 {
	f := p.Linear[i]
	for _, n := range p.neighbors[i] {
		f += n.Bias * float64(state[n.J])
	}
	return f
}

// Delta returns the change in energy caused by flipping variable i.
func (p *Problem) Delta(state []int8, i int) float64 {
	f := p.Field(state, i)
	if p.Vartype == Spin {
		return -2 * float64(state[i]) * f
	}
	return float64(1-2*state[i]) * f
}

// Flip flips variable i of state in place.
func (p *Problem) Flip(state []int8, i int) {
	if p.Vartype == Spin {
		state[i] = -state[i]
		return
	}
	state[i] = 1 - state[i]
}
