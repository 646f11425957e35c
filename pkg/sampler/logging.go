package sampler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qubo-tools/intqm/pkg/bqm"
)

type LoggingSampler struct {
	sampler bqm.Sampler
	logger  logrus.FieldLogger
}

var _ bqm.Sampler = &LoggingSampler{}

func NewLoggingSampler(sampler bqm.Sampler, logger logrus.FieldLogger) *LoggingSampler {
	return &LoggingSampler{
		sampler: sampler,
		logger:  logger,
	}
}

func (ls *LoggingSampler) Sample(ctx context.Context, m *bqm.Model, params bqm.Parameters) (*bqm.SampleSet[bqm.Label], error) {
	logger := ls.logger.WithFields(logrus.Fields{
		"variables":    m.NumVariables(),
		"interactions": m.NumInteractions(),
		"vartype":      m.Vartype(),
	})
	logger.WithField("params", params).Debug("sampling")

	start := time.Now()
	set, err := ls.sampler.Sample(ctx, m, params)
	logger = logger.WithField("duration", time.Since(start))
	if err != nil {
		logger.WithError(err).Warn("sampling failed")
		return nil, err
	}
	logger.WithField("records", set.Len()).Debug("sampled")
	return set, nil
}
