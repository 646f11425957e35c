package bqm

import (
	"fmt"
	"strings"
)

// Record is one row of a SampleSet.
type Record struct {
	// Sample holds one value per variable, in the column order of
	// the enclosing SampleSet.
	Sample         []int64
	Energy         float64
	NumOccurrences int
}

// SampleSet is the result of sampling a model: a table of assignments
// with their energies and occurrence counts, the variables labelling
// its columns, free-form solver information and the value type of
// the assignments.
type SampleSet[V comparable] struct {
	Variables []V
	Records   []Record
	Info      map[string]interface{}
	Vartype   Vartype
}

// NewSampleSet returns a SampleSet over the given columns and rows. A
// nil info is replaced by an empty map.
func NewSampleSet[V comparable](variables []V, records []Record, info map[string]interface{}, vartype Vartype) *SampleSet[V] {
	if info == nil {
		info = map[string]interface{}{}
	}
	return &SampleSet[V]{
		Variables: variables,
		Records:   records,
		Info:      info,
		Vartype:   vartype,
	}
}

// Len returns the number of rows.
func (s *SampleSet[V]) Len() int {
	return len(s.Records)
}

// First returns the lowest-energy row. Ties go to the earliest row.
func (s *SampleSet[V]) First() (Record, bool) {
	if len(s.Records) == 0 {
		return Record{}, false
	}
	best := 0
	for i, r := range s.Records {
		if r.Energy < s.Records[best].Energy {
			best = i
		}
	}
	return s.Records[best], true
}

// Sample returns row i keyed by variable.
func (s *SampleSet[V]) Sample(i int) map[V]int64 {
	result := make(map[V]int64, len(s.Variables))
	for k, v := range s.Variables {
		result[v] = s.Records[i].Sample[k]
	}
	return result
}

// Aggregate returns a SampleSet in which identical assignments are
// merged into one row, in first-seen order, with their occurrence
// counts summed. Energies of identical assignments are equal, so the
// first one is kept.
func (s *SampleSet[V]) Aggregate() *SampleSet[V] {
	rows := make(map[string]int, len(s.Records))
	var records []Record
	for _, r := range s.Records {
		key := sampleKey(r.Sample)
		if i, ok := rows[key]; ok {
			records[i].NumOccurrences += r.NumOccurrences
			continue
		}
		rows[key] = len(records)
		sample := make([]int64, len(r.Sample))
		copy(sample, r.Sample)
		records = append(records, Record{
			Sample:         sample,
			Energy:         r.Energy,
			NumOccurrences: r.NumOccurrences,
		})
	}
	return NewSampleSet(s.Variables, records, s.Info, s.Vartype)
}

func sampleKey(sample []int64) string {
	var b strings.Builder
	for i, v := range sample {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}
