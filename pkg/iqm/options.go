package iqm

import (
	"github.com/sirupsen/logrus"

	"github.com/qubo-tools/intqm/pkg/lib/codec"
)

const (
	// DefaultUnsignedPrecision is the number of bits used to expand
	// UnsignedInteger variables unless configured otherwise.
	DefaultUnsignedPrecision = 4
	// DefaultSignedPrecision is the number of bits used to expand
	// SignedInteger variables unless configured otherwise.
	DefaultSignedPrecision = 5
	// MaxPrecision is the largest precision whose expansions and
	// reconstructed values fit in an int64.
	MaxPrecision = 63
)

// Option configures a Model at construction time.
type Option func(m *Model) error

// WithUnsignedPrecision sets the bit width of UnsignedInteger
// expansions.
func WithUnsignedPrecision(p int) Option {
	return func(m *Model) error {
		return m.SetUnsignedPrecision(p)
	}
}

// WithSignedPrecision sets the bit width of SignedInteger expansions.
func WithSignedPrecision(p int) Option {
	return func(m *Model) error {
		return m.SetSignedPrecision(p)
	}
}

// Parameters is the loosely typed form of the precision settings, as
// found in configuration files and parameter maps. Both spell the keys
// uint_precision and int_precision.
type Parameters struct {
	UnsignedPrecision *int `mapstructure:"uint_precision" json:"uint_precision,omitempty"`
	SignedPrecision   *int `mapstructure:"int_precision" json:"int_precision,omitempty"`
}

// Options returns the Options setting every precision present in p.
func (p Parameters) Options() []Option {
	var options []Option
	if p.UnsignedPrecision != nil {
		options = append(options, WithUnsignedPrecision(*p.UnsignedPrecision))
	}
	if p.SignedPrecision != nil {
		options = append(options, WithSignedPrecision(*p.SignedPrecision))
	}
	return options
}

// WithParameters applies precision settings given as a map with the
// keys "uint_precision" and "int_precision". Missing keys keep their
// defaults; any other key is a ConfigurationError.
func WithParameters(params map[string]interface{}) Option {
	return func(m *Model) error {
		var p Parameters
		if err := codec.Decode(params, &p); err != nil {
			return ConfigurationError{Reason: err.Error()}
		}
		for _, option := range p.Options() {
			if err := option(m); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithLogger sets the logger used to report registrations and
// sampling.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Model) error {
		m.logger = logger
		return nil
	}
}
