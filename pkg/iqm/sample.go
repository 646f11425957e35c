package iqm

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qubo-tools/intqm/pkg/bqm"
)

// Sample samples the underlying binary model with sampler and returns
// the samples reconstructed in terms of the integer variables. params
// is handed to the sampler untouched. Errors from the sampler are
// returned as they are.
//
// Columns of the result follow the first appearance of each variable
// among the sampler's columns. Energies, occurrence counts, info and
// vartype are carried over from the sampler's result.
func (m *Model) Sample(ctx context.Context, sampler bqm.Sampler, params bqm.Parameters) (*bqm.SampleSet[Identifier], error) {
	start := time.Now()
	binary, err := sampler.Sample(ctx, m.bqm, params)
	if err != nil {
		return nil, err
	}

	result, err := m.Reconstruct(binary)
	if err != nil {
		return nil, err
	}
	m.logger.WithFields(logrus.Fields{
		"variables": len(result.Variables),
		"bits":      len(binary.Variables),
		"records":   result.Len(),
		"duration":  time.Since(start),
	}).Debug("sampled model")
	return result, nil
}

// column records where a binary column's contribution goes.
type column struct {
	index       int
	coefficient int64
}

// Reconstruct converts a sample set over the binary expansion labels
// into one over the integer variables. Each integer value is the sum
// of its bits weighted by their expansion coefficients.
func (m *Model) Reconstruct(binary *bqm.SampleSet[bqm.Label]) (*bqm.SampleSet[Identifier], error) {
	var (
		variables []Identifier
		indices   = make(map[Identifier]int)
		expansion = make(map[Kind][]int64)
		columns   = make([]column, len(binary.Variables))
	)
	for k, l := range binary.Variables {
		id := Identifier(l.Name)
		kind, ok := m.kinds[id]
		if !ok {
			return nil, UnknownVariableError(id)
		}
		cs, ok := expansion[kind]
		if !ok {
			var err error
			if cs, err = m.Coefficients(kind); err != nil {
				return nil, err
			}
			expansion[kind] = cs
		}
		if l.Index < 0 || l.Index >= len(cs) {
			return nil, fmt.Errorf("binary variable %s is not part of the %d bit expansion of %q", l, len(cs), id)
		}

		index, ok := indices[id]
		if !ok {
			index = len(variables)
			indices[id] = index
			variables = append(variables, id)
		}
		columns[k] = column{index: index, coefficient: cs[l.Index]}
	}

	records := make([]bqm.Record, len(binary.Records))
	for r, record := range binary.Records {
		if len(record.Sample) != len(columns) {
			return nil, fmt.Errorf("record %d has %d values for %d variables", r, len(record.Sample), len(columns))
		}
		values := make([]int64, len(variables))
		for k, bit := range record.Sample {
			values[columns[k].index] += bit * columns[k].coefficient
		}
		records[r] = bqm.Record{
			Sample:         values,
			Energy:         record.Energy,
			NumOccurrences: record.NumOccurrences,
		}
	}

	return &bqm.SampleSet[Identifier]{
		Variables: variables,
		Records:   records,
		Info:      binary.Info,
		Vartype:   binary.Vartype,
	}, nil
}
