// Package iqm encodes integer quadratic models into binary quadratic
// models and reconstructs integer samples from binary ones.
//
// Every integer variable is registered with a Kind that fixes its
// binary expansion. Binary variables map to a single bit, unsigned
// integers to an ordinary binary expansion and signed integers to a
// two's complement expansion. Bit i of variable x is the binary
// variable bqm.Label{Name: "x", Index: i}.
package iqm

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/qubo-tools/intqm/pkg/bqm"
)

// Model is a quadratic objective over integer variables, stored as the
// binary quadratic model of their expansions.
//
// A Model is not safe for concurrent use.
type Model struct {
	bqm               *bqm.Model
	kinds             map[Identifier]Kind
	inorder           []Identifier
	unsignedPrecision int
	signedPrecision   int
	logger            logrus.FieldLogger
}

// New returns an empty Model configured by options.
func New(options ...Option) (*Model, error) {
	m := Model{
		bqm:               bqm.New(bqm.Binary),
		kinds:             make(map[Identifier]Kind),
		unsignedPrecision: DefaultUnsignedPrecision,
		signedPrecision:   DefaultSignedPrecision,
	}
	for _, option := range append(options, defaults...) {
		if err := option(&m); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

var defaults = []Option{
	func(m *Model) error {
		if m.logger == nil {
			m.logger = logrus.New()
		}
		return nil
	},
}

func (m *Model) UnsignedPrecision() int {
	return m.unsignedPrecision
}

func (m *Model) SignedPrecision() int {
	return m.signedPrecision
}

// SetUnsignedPrecision changes the bit width of UnsignedInteger
// expansions. It fails once any variable has been added.
func (m *Model) SetUnsignedPrecision(p int) error {
	if err := m.checkPrecision("uint_precision", p); err != nil {
		return err
	}
	m.unsignedPrecision = p
	return nil
}

// SetSignedPrecision changes the bit width of SignedInteger
// expansions. It fails once any variable has been added.
func (m *Model) SetSignedPrecision(p int) error {
	if err := m.checkPrecision("int_precision", p); err != nil {
		return err
	}
	m.signedPrecision = p
	return nil
}

func (m *Model) checkPrecision(parameter string, p int) error {
	switch {
	case len(m.kinds) > 0:
		return ConfigurationError{Parameter: parameter, Reason: "cannot change precision of a non-empty model"}
	case p <= 0:
		return ConfigurationError{Parameter: parameter, Reason: fmt.Sprintf("%d is not a positive integer", p)}
	case p > MaxPrecision:
		return ConfigurationError{Parameter: parameter, Reason: fmt.Sprintf("%d exceeds the maximum of %d bits", p, MaxPrecision)}
	}
	return nil
}

// Coefficients returns the binary expansion coefficients of kind under
// the model's current precisions.
func (m *Model) Coefficients(kind Kind) ([]int64, error) {
	return coefficients(kind, m.unsignedPrecision, m.signedPrecision)
}

// Kind returns the kind id was registered with.
func (m *Model) Kind(id Identifier) (Kind, bool) {
	kind, ok := m.kinds[id]
	return kind, ok
}

// Variables returns the registered identifiers in registration order.
func (m *Model) Variables() []Identifier {
	result := make([]Identifier, len(m.inorder))
	copy(result, m.inorder)
	return result
}

// BQM returns the underlying binary quadratic model. It must not be
// modified directly.
func (m *Model) BQM() *bqm.Model {
	return m.bqm
}

func label(id Identifier, i int) bqm.Label {
	return bqm.Label{Name: string(id), Index: i}
}

// Labels returns the binary variable labels making up id.
func (m *Model) Labels(id Identifier) ([]bqm.Label, error) {
	kind, ok := m.kinds[id]
	if !ok {
		return nil, UnknownVariableError(id)
	}
	cs, err := m.Coefficients(kind)
	if err != nil {
		return nil, err
	}
	labels := make([]bqm.Label, len(cs))
	for i := range cs {
		labels[i] = label(id, i)
	}
	return labels, nil
}

// AddVariable adds bias times the variable id to the objective and
// returns the labels of the binary variables it expands into.
//
// The first reference to id registers it and requires a kind. Later
// references may pass Unspecified to reuse the registered kind; any
// other kind must match it. Repeated calls accumulate the bias.
func (m *Model) AddVariable(id Identifier, bias float64, kind Kind) ([]bqm.Label, error) {
	registered, ok := m.kinds[id]
	switch {
	case !ok && kind == Unspecified:
		return nil, MissingKindError(id)
	case ok && kind != Unspecified && kind != registered:
		return nil, KindConflictError{Identifier: id, Registered: registered, Requested: kind}
	case ok:
		kind = registered
	}

	cs, err := m.Coefficients(kind)
	if err != nil {
		return nil, err
	}

	if !ok {
		m.kinds[id] = kind
		m.inorder = append(m.inorder, id)
		m.logger.WithFields(logrus.Fields{
			"variable": id,
			"kind":     kind,
			"bits":     len(cs),
		}).Debug("registered variable")
	}

	labels := make([]bqm.Label, len(cs))
	for i, c := range cs {
		labels[i] = m.bqm.AddVariable(label(id, i), bias*float64(c))
	}
	return labels, nil
}

// AddInteraction adds bias times the product of u and v to the
// objective. Both variables must already be registered; u and v may
// be the same variable, in which case bias times its square is added.
//
// Expanding u = Σ a_i·u_i and v = Σ b_j·v_j gives Σ bias·a_i·b_j·u_i·v_j.
// When u == v the terms with i == j are linear, since u_i·u_i = u_i
// for binary u_i.
func (m *Model) AddInteraction(u, v Identifier, bias float64) error {
	uk, ok := m.kinds[u]
	if !ok {
		return UnknownVariableError(u)
	}
	vk, ok := m.kinds[v]
	if !ok {
		return UnknownVariableError(v)
	}

	ucs, err := m.Coefficients(uk)
	if err != nil {
		return err
	}
	vcs, err := m.Coefficients(vk)
	if err != nil {
		return err
	}

	for i, a := range ucs {
		for j, b := range vcs {
			if u == v && i == j {
				m.bqm.AddVariable(label(u, i), bias*float64(a)*float64(a))
				continue
			}
			if err := m.bqm.AddInteraction(label(u, i), label(v, j), bias*float64(a)*float64(b)); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddOffset adds x to the constant energy offset.
func (m *Model) AddOffset(x float64) {
	m.bqm.AddOffset(x)
}

// Encode returns the binary assignment representing values. Every
// registered variable needs a value within the range of its kind.
func (m *Model) Encode(values map[Identifier]int64) (map[bqm.Label]int64, error) {
	result := make(map[bqm.Label]int64, m.bqm.NumVariables())
	for _, id := range m.inorder {
		value, ok := values[id]
		if !ok {
			return nil, fmt.Errorf("no value for variable %q", id)
		}
		cs, err := m.Coefficients(m.kinds[id])
		if err != nil {
			return nil, err
		}
		low, high := bounds(cs)
		if value < low || value > high {
			return nil, fmt.Errorf("value %d of variable %q is outside [%d, %d]", value, id, low, high)
		}
		bits := uint64(value)
		for i := range cs {
			result[label(id, i)] = int64(bits >> uint(i) & 1)
		}
	}
	return result, nil
}

// Energy evaluates the objective for an assignment of every registered
// variable.
func (m *Model) Energy(values map[Identifier]int64) (float64, error) {
	sample, err := m.Encode(values)
	if err != nil {
		return 0, err
	}
	return m.bqm.Energy(sample)
}
