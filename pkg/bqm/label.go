package bqm

import "fmt"

// Label identifies a single binary variable within a Model. Variables
// produced by expanding one larger value share a Name and are told
// apart by Index.
type Label struct {
	Name  string
	Index int
}

func (l Label) String() string {
	return fmt.Sprintf("%s[%d]", l.Name, l.Index)
}

// LabelFromString returns the Label of a standalone binary variable.
func LabelFromString(s string) Label {
	return Label{Name: s}
}

// Vartype tags the value domain of the variables of a Model or
// SampleSet.
type Vartype int

const (
	// Binary variables take values in {0, 1}.
	Binary Vartype = iota
	// Spin variables take values in {-1, +1}.
	Spin
)

func (v Vartype) String() string {
	switch v {
	case Binary:
		return "BINARY"
	case Spin:
		return "SPIN"
	}
	return fmt.Sprintf("Vartype(%d)", int(v))
}

// Values returns the low and high value a variable of this type can
// take.
func (v Vartype) Values() (low, high int64) {
	if v == Spin {
		return -1, 1
	}
	return 0, 1
}
