package iqm

import (
	"fmt"
	"strings"
)

// Identifier values uniquely identify integer variables within a
// Model.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Kind is the declared representation of an integer variable.
type Kind int

const (
	// Unspecified stands for an omitted kind. It is only accepted for
	// variables that are already registered.
	Unspecified Kind = iota
	// Binary variables take values in {0, 1}.
	Binary
	// UnsignedInteger variables use an ordinary binary expansion.
	UnsignedInteger
	// SignedInteger variables use a two's complement expansion.
	SignedInteger
)

var kindNames = map[Kind]string{
	Unspecified:     "unspecified",
	Binary:          "binary",
	UnsignedInteger: "uint",
	SignedInteger:   "int",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, UnknownKindError(k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names produced by String as well as the
// long forms "unsigned" and "signed", ignoring case.
func (k *Kind) UnmarshalText(text []byte) error {
	switch s := strings.ToLower(strings.TrimSpace(string(text))); s {
	case "binary", "bin":
		*k = Binary
	case "uint", "unsigned", "unsignedinteger":
		*k = UnsignedInteger
	case "int", "signed", "signedinteger":
		*k = SignedInteger
	case "", "unspecified":
		*k = Unspecified
	default:
		return fmt.Errorf("unknown variable kind %q", s)
	}
	return nil
}

// coefficients returns the binary expansion coefficients of kind for
// the given precisions.
func coefficients(kind Kind, unsignedPrecision, signedPrecision int) ([]int64, error) {
	switch kind {
	case Binary:
		return []int64{1}, nil
	case UnsignedInteger:
		cs := make([]int64, unsignedPrecision)
		for i := range cs {
			cs[i] = 1 << uint(i)
		}
		return cs, nil
	case SignedInteger:
		cs := make([]int64, signedPrecision)
		for i := 0; i < signedPrecision-1; i++ {
			cs[i] = 1 << uint(i)
		}
		cs[signedPrecision-1] = -1 << uint(signedPrecision-1)
		return cs, nil
	}
	return nil, UnknownKindError(kind)
}

// bounds returns the smallest and largest value a variable of kind can
// represent.
func bounds(cs []int64) (low, high int64) {
	for _, c := range cs {
		if c < 0 {
			low += c
		} else {
			high += c
		}
	}
	return low, high
}
