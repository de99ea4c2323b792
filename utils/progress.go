package utils

import (
	"time"

	"go.uber.org/zap"
)

// Step logs the start and the elapsed time of one named unit of work
type Step struct {
	logger *zap.Logger
	name   string
	start  time.Time
}

func StartStep(logger *zap.Logger, name string) *Step {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("step started", zap.String("step", name))
	return &Step{logger: logger, name: name, start: time.Now()}
}

// Done closes the step, err is logged when the step failed
func (s *Step) Done(err error) time.Duration {
	elapsed := time.Since(s.start)
	if err != nil {
		s.logger.Debug("step failed", zap.String("step", s.name), zap.Duration("elapsed", elapsed), zap.Error(err))
		return elapsed
	}
	if ce := s.logger.Check(zap.DebugLevel, "step done"); ce != nil {
		ce.Write(zap.String("step", s.name), zap.Duration("elapsed", elapsed), zap.Object("mem", GetMemUsage()))
	}
	return elapsed
}
