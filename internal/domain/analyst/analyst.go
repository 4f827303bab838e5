// Package analyst computes comparative statistics over the district repositories:
// participation variation, correlation judgments, ranked proficiency growth and
// threshold result sets. Every query is a pure read of repository state.
package analyst

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/pkg/logger"
	"github.com/okian/headcount/pkg/metrics"
)

// Districts is the read interface the analyst consumes.
type Districts interface {
	// FindByName resolves a district (or a baseline alias) to a handle.
	FindByName(name string) (*model.District, bool)
	// Names lists every known district in a stable order.
	Names() []string
	// Baseline returns the canonical statewide baseline name.
	Baseline() string
	// IsBaseline reports whether name refers to the baseline.
	IsBaseline(name string) bool
}

// Analyst is the statistics engine.
type Analyst struct {
	districts  Districts
	thresholds Thresholds
	logger     logger.Logger
}

// New constructs an Analyst over districts.
func New(districts Districts, opts ...Option) *Analyst {
	a := &Analyst{
		districts:  districts,
		thresholds: DefaultThresholds(),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Thresholds returns the active calibration.
func (a *Analyst) Thresholds() Thresholds { return a.thresholds }

// Baseline returns the statewide baseline name.
func (a *Analyst) Baseline() string { return a.districts.Baseline() }

// district resolves name or fails with ErrUnknownDistrict.
func (a *Analyst) district(name string) (*model.District, error) {
	if model.NormalizeName(name) == "" {
		return nil, fmt.Errorf("district name: %w", ErrInsufficientInformation)
	}
	d, ok := a.districts.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", model.NormalizeName(name), ErrUnknownDistrict)
	}
	return d, nil
}

// observe records the outcome and latency of a public query.
func (a *Analyst) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	metrics.RecordAnalystQuery(op, outcome(err))
	metrics.RecordAnalystLatency(op, float64(elapsed.Microseconds())/1000)
	if err != nil {
		a.logger.Debug(context.Background(), "analyst query rejected",
			logger.String("op", op),
			logger.Duration("elapsed", elapsed),
			logger.Error(err),
		)
	}
}
