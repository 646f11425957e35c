package iqm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoefficients(t *testing.T) {
	type tc struct {
		Name     string
		Kind     Kind
		Expected []int64
		Error    error
	}

	for _, tt := range []tc{
		{
			Name:     "binary",
			Kind:     Binary,
			Expected: []int64{1},
		},
		{
			Name:     "unsigned",
			Kind:     UnsignedInteger,
			Expected: []int64{1, 2, 4, 8},
		},
		{
			Name:     "signed",
			Kind:     SignedInteger,
			Expected: []int64{1, 2, 4, -8},
		},
		{
			Name:  "unspecified",
			Kind:  Unspecified,
			Error: UnknownKindError(Unspecified),
		},
		{
			Name:  "out of range",
			Kind:  Kind(42),
			Error: UnknownKindError(42),
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			cs, err := coefficients(tt.Kind, 4, 4)
			assert.Equal(t, tt.Error, err)
			assert.Equal(t, tt.Expected, cs)
		})
	}
}

func TestCoefficientsEveryPrecision(t *testing.T) {
	for p := 1; p <= MaxPrecision; p++ {
		unsigned, err := coefficients(UnsignedInteger, p, p)
		require.NoError(t, err)
		signed, err := coefficients(SignedInteger, p, p)
		require.NoError(t, err)

		require.Len(t, unsigned, p)
		require.Len(t, signed, p)
		for i := 0; i < p; i++ {
			assert.Equal(t, int64(1)<<uint(i), unsigned[i])
		}
		for i := 0; i < p-1; i++ {
			assert.Equal(t, int64(1)<<uint(i), signed[i])
		}
		assert.Equal(t, -(int64(1) << uint(p-1)), signed[p-1])

		low, high := bounds(signed)
		assert.Equal(t, -(int64(1) << uint(p-1)), low)
		assert.Equal(t, int64(1)<<uint(p-1)-1, high)
	}
}

func TestKindText(t *testing.T) {
	for text, expected := range map[string]Kind{
		"binary":   Binary,
		"BIN":      Binary,
		"uint":     UnsignedInteger,
		"Unsigned": UnsignedInteger,
		"int":      SignedInteger,
		" signed ": SignedInteger,
		"":         Unspecified,
	} {
		var k Kind
		require.NoError(t, k.UnmarshalText([]byte(text)), text)
		assert.Equal(t, expected, k, text)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("float")))

	b, err := SignedInteger.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "int", string(b))

	_, err = Kind(9).MarshalText()
	assert.Equal(t, UnknownKindError(9), err)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
