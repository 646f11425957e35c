// Package bqm holds binary quadratic models, the sample sets produced
// by sampling them and the interface samplers implement.
package bqm

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSelfLoop is returned when an interaction would connect a variable
// to itself.
var ErrSelfLoop = errors.New("interaction between a variable and itself")

// pair is an unordered pair of variable indices with i < j.
type pair struct {
	i, j int
}

func pairOf(i, j int) pair {
	if i > j {
		i, j = j, i
	}
	return pair{i: i, j: j}
}

// Interaction is a quadratic bias between two distinct variables.
type Interaction struct {
	U, V Label
	Bias float64
}

// Model is a quadratic objective over binary (or spin) variables: a
// linear bias per variable, a quadratic bias per unordered pair of
// distinct variables and a constant offset. Every addition accumulates
// into the existing bias; nothing is ever overwritten.
//
// A Model is not safe for concurrent mutation.
type Model struct {
	vartype   Vartype
	inorder   []Label
	indices   map[Label]int
	linear    []float64
	quadratic map[pair]float64
	offset    float64
}

// New returns an empty Model over variables of the given type.
func New(vartype Vartype) *Model {
	return &Model{
		vartype:   vartype,
		indices:   make(map[Label]int),
		quadratic: make(map[pair]float64),
	}
}

func (m *Model) Vartype() Vartype {
	return m.vartype
}

// indexOf returns the position of l, adding it with zero bias on first
// reference.
func (m *Model) indexOf(l Label) int {
	if i, ok := m.indices[l]; ok {
		return i
	}
	i := len(m.inorder)
	m.indices[l] = i
	m.inorder = append(m.inorder, l)
	m.linear = append(m.linear, 0)
	return i
}

// AddVariable adds bias to the linear bias of l, creating the variable
// if it does not exist yet, and returns l.
func (m *Model) AddVariable(l Label, bias float64) Label {
	m.linear[m.indexOf(l)] += bias
	return l
}

// AddInteraction adds bias to the quadratic bias between u and v. The
// pair is unordered: (u, v) and (v, u) accumulate into the same bias.
func (m *Model) AddInteraction(u, v Label, bias float64) error {
	if u == v {
		return fmt.Errorf("%w: %s", ErrSelfLoop, u)
	}
	m.quadratic[pairOf(m.indexOf(u), m.indexOf(v))] += bias
	return nil
}

// AddOffset adds x to the constant energy offset.
func (m *Model) AddOffset(x float64) {
	m.offset += x
}

func (m *Model) Offset() float64 {
	return m.offset
}

func (m *Model) NumVariables() int {
	return len(m.inorder)
}

func (m *Model) NumInteractions() int {
	return len(m.quadratic)
}

// Variables returns the labels of all variables in the order they
// were first referenced.
func (m *Model) Variables() []Label {
	result := make([]Label, len(m.inorder))
	copy(result, m.inorder)
	return result
}

// Linear returns the linear bias of l and whether l is a variable of
// the model.
func (m *Model) Linear(l Label) (float64, bool) {
	i, ok := m.indices[l]
	if !ok {
		return 0, false
	}
	return m.linear[i], true
}

// Quadratic returns the quadratic bias between u and v and whether the
// two variables interact.
func (m *Model) Quadratic(u, v Label) (float64, bool) {
	i, ok := m.indices[u]
	if !ok {
		return 0, false
	}
	j, ok := m.indices[v]
	if !ok {
		return 0, false
	}
	bias, ok := m.quadratic[pairOf(i, j)]
	return bias, ok
}

// Interactions returns every quadratic bias ordered by the positions of
// the variables involved.
func (m *Model) Interactions() []Interaction {
	pairs := m.sortedPairs()
	result := make([]Interaction, len(pairs))
	for k, p := range pairs {
		result[k] = Interaction{
			U:    m.inorder[p.i],
			V:    m.inorder[p.j],
			Bias: m.quadratic[p],
		}
	}
	return result
}

func (m *Model) sortedPairs() []pair {
	pairs := make([]pair, 0, len(m.quadratic))
	for p := range m.quadratic {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].i != pairs[b].i {
			return pairs[a].i < pairs[b].i
		}
		return pairs[a].j < pairs[b].j
	})
	return pairs
}

// Energy evaluates the model for an assignment of every variable.
func (m *Model) Energy(sample map[Label]int64) (float64, error) {
	state := make([]int8, len(m.inorder))
	low, high := m.vartype.Values()
	for i, l := range m.inorder {
		value, ok := sample[l]
		if !ok {
			return 0, fmt.Errorf("no value for variable %s", l)
		}
		if value != low && value != high {
			return 0, fmt.Errorf("value %d of variable %s is not %s", value, l, m.vartype)
		}
		state[i] = int8(value)
	}
	return m.Compile().Energy(state), nil
}

// Compile returns an index-based snapshot of the model for samplers.
// Later changes to the model are not reflected in the snapshot.
func (m *Model) Compile() *Problem {
	p := &Problem{
		Vartype:   m.vartype,
		Labels:    m.Variables(),
		Linear:    make([]float64, len(m.linear)),
		Offset:    m.offset,
		neighbors: make([][]Neighbor, len(m.inorder)),
	}
	copy(p.Linear, m.linear)
	for _, pr := range m.sortedPairs() {
		bias := m.quadratic[pr]
		p.Couplings = append(p.Couplings, Coupling{I: pr.i, J: pr.j, Bias: bias})
		p.neighbors[pr.i] = append(p.neighbors[pr.i], Neighbor{J: pr.j, Bias: bias})
		p.neighbors[pr.j] = append(p.neighbors[pr.j], Neighbor{J: pr.i, Bias: bias})
	}
	return p
}
