package exact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubo-tools/intqm/pkg/bqm"
)

func TestSampleEnumeratesEveryState(t *testing.T) {
	a, b := bqm.LabelFromString("a"), bqm.LabelFromString("b")

	for _, workers := range []int{0, 1, 3, 8} {
		m := bqm.New(bqm.Binary)
		m.AddVariable(a, -1)
		m.AddVariable(b, 2)
		require.NoError(t, m.AddInteraction(a, b, -3))
		m.AddOffset(1)

		s, err := New().Sample(context.Background(), m, bqm.Parameters{"workers": workers})
		require.NoError(t, err)

		assert.Equal(t, []bqm.Label{a, b}, s.Variables)
		assert.Equal(t, []bqm.Record{
			{Sample: []int64{0, 0}, Energy: 1, NumOccurrences: 1},
			{Sample: []int64{1, 0}, Energy: 0, NumOccurrences: 1},
			{Sample: []int64{0, 1}, Energy: 3, NumOccurrences: 1},
			{Sample: []int64{1, 1}, Energy: -1, NumOccurrences: 1},
		}, s.Records, "workers=%d", workers)
		assert.Equal(t, bqm.Binary, s.Vartype)

		first, ok := s.First()
		require.True(t, ok)
		assert.Equal(t, []int64{1, 1}, first.Sample)
	}
}

func TestSampleSpin(t *testing.T) {
	m := bqm.New(bqm.Spin)
	m.AddVariable(bqm.LabelFromString("s"), 1)

	s, err := New().Sample(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Equal(t, []bqm.Record{
		{Sample: []int64{-1}, Energy: -1, NumOccurrences: 1},
		{Sample: []int64{1}, Energy: 1, NumOccurrences: 1},
	}, s.Records)
}

func TestSampleEmptyModel(t *testing.T) {
	m := bqm.New(bqm.Binary)
	m.AddOffset(2)

	s, err := New().Sample(context.Background(), m, nil)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 2.0, s.Records[0].Energy)
	assert.Empty(t, s.Records[0].Sample)
}

func TestSampleErrors(t *testing.T) {
	m := bqm.New(bqm.Binary)
	for i := 0; i <= MaxVariables; i++ {
		m.AddVariable(bqm.Label{Name: "x", Index: i}, 1)
	}
	_, err := New().Sample(context.Background(), m, nil)
	assert.Error(t, err)

	_, err = New().Sample(context.Background(), bqm.New(bqm.Binary), bqm.Parameters{"num_reads": 3})
	assert.Error(t, err)
}

func TestSampleCancelled(t *testing.T) {
	m := bqm.New(bqm.Binary)
	for i := 0; i < 12; i++ {
		m.AddVariable(bqm.Label{Name: "x", Index: i}, 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Sample(ctx, m, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
