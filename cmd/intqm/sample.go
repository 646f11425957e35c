package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/time/rate"

	"github.com/qubo-tools/intqm/pkg/bqm"
	"github.com/qubo-tools/intqm/pkg/iqm"
	"github.com/qubo-tools/intqm/pkg/metrics"
	"github.com/qubo-tools/intqm/pkg/sampler"
	"github.com/qubo-tools/intqm/pkg/sampler/anneal"
	"github.com/qubo-tools/intqm/pkg/sampler/exact"
)

const (
	samplerAnneal = "anneal"
	samplerExact  = "exact"

	outputTable = "table"
	outputYAML  = "yaml"
)

// evaluator reports the objective value and feasibility of a sample.
type evaluator func(values map[iqm.Identifier]int64) (float64, bool, error)

type sampleOptions struct {
	sampler      string
	params       []string
	rate         float64
	output       string
	top          int
	aggregate    bool
	printMetrics bool
}

func newSampleOptions() *sampleOptions {
	return &sampleOptions{
		sampler: samplerAnneal,
		output:  outputTable,
		top:     10,
	}
}

func (o *sampleOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.sampler, "sampler", o.sampler, "sampler to use, one of anneal or exact")
	fs.StringArrayVarP(&o.params, "param", "p", nil, "sampler parameter as key=value, may be repeated")
	fs.Float64Var(&o.rate, "rate", 0, "maximum sampler invocations per second, 0 for no limit")
	fs.StringVarP(&o.output, "output", "o", o.output, "output format, one of table or yaml")
	fs.IntVar(&o.top, "top", o.top, "number of lowest energy records to print, 0 for all")
	fs.BoolVar(&o.aggregate, "aggregate", false, "merge identical samples before printing")
	fs.BoolVar(&o.printMetrics, "print-metrics", false, "print the collected metrics in the Prometheus text format")
}

// parseParams turns key=value pairs into sampler parameters. Values
// stay strings; samplers decode them weakly.
func parseParams(raw []string) (bqm.Parameters, error) {
	params := bqm.Parameters{}
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Errorf("invalid parameter %q, expected key=value", kv)
		}
		if _, dup := params[key]; dup {
			return nil, errors.Errorf("parameter %q given more than once", key)
		}
		params[key] = value
	}
	return params, nil
}

func (o *sampleOptions) newSampler(logger logrus.FieldLogger) (bqm.Sampler, error) {
	var s bqm.Sampler
	switch o.sampler {
	case samplerAnneal:
		s = anneal.New()
	case samplerExact:
		s = exact.New()
	default:
		return nil, errors.Errorf("unknown sampler %q", o.sampler)
	}
	s = sampler.NewLoggingSampler(s, logger.WithField("sampler", o.sampler))
	s = sampler.NewInstrumentedSampler(s, metrics.RegisterSampleSuccess, metrics.RegisterSampleFailure)
	if o.rate < 0 {
		return nil, errors.Errorf("rate must not be negative, got %v", o.rate)
	}
	if o.rate > 0 {
		s = sampler.NewThrottledSampler(s, rate.NewLimiter(rate.Limit(o.rate), 1))
	}
	return s, nil
}

func (o *sampleOptions) run(ctx context.Context, w io.Writer, logger logrus.FieldLogger, model *iqm.Model, evaluate evaluator) error {
	if o.output != outputTable && o.output != outputYAML {
		return errors.Errorf("unknown output format %q", o.output)
	}
	params, err := parseParams(o.params)
	if err != nil {
		return err
	}
	s, err := o.newSampler(logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics.RegisterWith(reg)
	provider := metrics.NewMetricsNil()
	if o.printMetrics {
		provider = metrics.NewMetricsModel(model)
	}
	if err := provider.HandleMetrics(); err != nil {
		return err
	}

	set, err := model.Sample(ctx, s, params)
	if err != nil {
		return errors.Wrap(err, "sampling")
	}
	if o.aggregate {
		set = set.Aggregate()
	}

	rows, err := newRows(set, evaluate, o.top)
	if err != nil {
		return err
	}
	switch o.output {
	case outputYAML:
		err = writeYAML(w, rows)
	default:
		err = writeTable(w, set.Variables, rows, evaluate != nil)
	}
	if err != nil {
		return err
	}

	if o.printMetrics {
		return writeMetrics(w, reg)
	}
	return nil
}

type row struct {
	Sample         map[iqm.Identifier]int64 `json:"sample"`
	Energy         float64                  `json:"energy"`
	NumOccurrences int                      `json:"numOccurrences"`
	Objective      *float64                 `json:"objective,omitempty"`
	Feasible       *bool                    `json:"feasible,omitempty"`

	values []int64
}

// newRows returns up to top records of set ordered by energy.
func newRows(set *bqm.SampleSet[iqm.Identifier], evaluate evaluator, top int) ([]row, error) {
	order := make([]int, set.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return set.Records[order[a]].Energy < set.Records[order[b]].Energy
	})
	if top > 0 && top < len(order) {
		order = order[:top]
	}

	rows := make([]row, len(order))
	for k, i := range order {
		record := set.Records[i]
		rows[k] = row{
			Sample:         set.Sample(i),
			Energy:         record.Energy,
			NumOccurrences: record.NumOccurrences,
			values:         record.Sample,
		}
		if evaluate == nil {
			continue
		}
		objective, feasible, err := evaluate(rows[k].Sample)
		if err != nil {
			return nil, err
		}
		rows[k].Objective, rows[k].Feasible = &objective, &feasible
	}
	return rows, nil
}

func writeTable(w io.Writer, variables []iqm.Identifier, rows []row, evaluated bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, v := range variables {
		fmt.Fprintf(tw, "%s\t", v)
	}
	fmt.Fprint(tw, "ENERGY\tOCCURRENCES")
	if evaluated {
		fmt.Fprint(tw, "\tOBJECTIVE\tFEASIBLE")
	}
	fmt.Fprintln(tw)

	for _, r := range rows {
		for _, value := range r.values {
			fmt.Fprintf(tw, "%d\t", value)
		}
		fmt.Fprintf(tw, "%g\t%d", r.Energy, r.NumOccurrences)
		if evaluated {
			fmt.Fprintf(tw, "\t%g\t%t", *r.Objective, *r.Feasible)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, rows []row) error {
	out, err := yaml.Marshal(rows)
	if err != nil {
		return errors.Wrap(err, "encoding samples")
	}
	_, err = w.Write(out)
	return err
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
