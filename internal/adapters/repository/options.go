// Package repository provides the in-memory, name-keyed district repositories.
package repository

import "github.com/okian/headcount/internal/domain/model"

// DefaultBaseline is the statewide pseudo-district name used by the Colorado data set.
const DefaultBaseline = "COLORADO"

// Option applies a configuration option to the DistrictRepository.
type Option func(*DistrictRepository)

// WithBaseline sets the canonical name of the statewide baseline.
func WithBaseline(name string) Option {
	return func(r *DistrictRepository) {
		if n := model.NormalizeName(name); n != "" {
			r.baseline = n
		}
	}
}

// WithBaselineAliases registers alternate names that resolve to the baseline.
func WithBaselineAliases(aliases ...string) Option {
	return func(r *DistrictRepository) {
		for _, a := range aliases {
			if n := model.NormalizeName(a); n != "" {
				r.aliases[n] = struct{}{}
			}
		}
	}
}

// WithEnrollments shares an existing enrollment repository.
func WithEnrollments(e *EnrollmentRepository) Option {
	return func(r *DistrictRepository) {
		if e != nil {
			r.enrollments = e
		}
	}
}

// WithStatewideTests shares an existing testing repository.
func WithStatewideTests(t *StatewideTestRepository) Option {
	return func(r *DistrictRepository) {
		if t != nil {
			r.tests = t
		}
	}
}

// WithEconomicProfiles shares an existing economic repository.
func WithEconomicProfiles(p *EconomicProfileRepository) Option {
	return func(r *DistrictRepository) {
		if p != nil {
			r.economics = p
		}
	}
}
