package bqm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleSetFirst(t *testing.T) {
	s := NewSampleSet([]string{"x"}, []Record{
		{Sample: []int64{1}, Energy: 2, NumOccurrences: 1},
		{Sample: []int64{2}, Energy: -1, NumOccurrences: 1},
		{Sample: []int64{3}, Energy: -1, NumOccurrences: 4},
	}, nil, Binary)

	first, ok := s.First()
	require.True(t, ok)
	assert.Equal(t, []int64{2}, first.Sample)
	assert.NotNil(t, s.Info)

	_, ok = NewSampleSet[string](nil, nil, nil, Binary).First()
	assert.False(t, ok)
}

func TestSampleSetSample(t *testing.T) {
	s := NewSampleSet([]string{"x", "y"}, []Record{
		{Sample: []int64{1, -3}},
	}, nil, Binary)
	assert.Equal(t, map[string]int64{"x": 1, "y": -3}, s.Sample(0))
}

func TestSampleSetAggregate(t *testing.T) {
	info := map[string]interface{}{"k": "v"}
	s := NewSampleSet([]string{"x", "y"}, []Record{
		{Sample: []int64{1, 0}, Energy: 1, NumOccurrences: 1},
		{Sample: []int64{0, 1}, Energy: 2, NumOccurrences: 2},
		{Sample: []int64{1, 0}, Energy: 1, NumOccurrences: 3},
		{Sample: []int64{10, 1}, Energy: 0, NumOccurrences: 1},
	}, info, Spin)

	a := s.Aggregate()
	assert.Equal(t, []Record{
		{Sample: []int64{1, 0}, Energy: 1, NumOccurrences: 4},
		{Sample: []int64{0, 1}, Energy: 2, NumOccurrences: 2},
		{Sample: []int64{10, 1}, Energy: 0, NumOccurrences: 1},
	}, a.Records)
	assert.Equal(t, s.Variables, a.Variables)
	assert.Equal(t, info, a.Info)
	assert.Equal(t, Spin, a.Vartype)
	assert.Equal(t, 4, s.Len())
}

func TestFromStates(t *testing.T) {
	m := New(Binary)
	m.AddVariable(LabelFromString("a"), 1)
	m.AddVariable(LabelFromString("b"), 2)
	m.AddOffset(1)
	p := m.Compile()

	s := FromStates(p, [][]int8{{0, 1}, {1, 1}}, nil)
	assert.Equal(t, []Label{LabelFromString("a"), LabelFromString("b")}, s.Variables)
	assert.Equal(t, []Record{
		{Sample: []int64{0, 1}, Energy: 3, NumOccurrences: 1},
		{Sample: []int64{1, 1}, Energy: 4, NumOccurrences: 1},
	}, s.Records)
}
