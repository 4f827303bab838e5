package repository

import (
	"fmt"

	"github.com/okian/headcount/internal/domain/model"
)

// DistrictRepository resolves district handles across the category repositories.
// The statewide baseline is an ordinary district whose aliases resolve to one canonical name.
type DistrictRepository struct {
	enrollments *EnrollmentRepository
	tests       *StatewideTestRepository
	economics   *EconomicProfileRepository

	baseline string
	aliases  map[string]struct{}
}

// NewDistrictRepository constructs a repository with empty category stores unless
// shared ones are supplied through options. The category stores then fold baseline
// aliases on write as well as on lookup, so rows keyed STATEWIDE land on the baseline.
func NewDistrictRepository(opts ...Option) *DistrictRepository {
	r := &DistrictRepository{
		enrollments: NewEnrollmentRepository(),
		tests:       NewStatewideTestRepository(),
		economics:   NewEconomicProfileRepository(),
		baseline:    DefaultBaseline,
		aliases:     map[string]struct{}{"STATEWIDE": {}},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.enrollments.ix.setKey(r.Canonical)
	r.tests.ix.setKey(r.Canonical)
	r.economics.ix.setKey(r.Canonical)
	return r
}

// Enrollments exposes the enrollment store for loading.
func (r *DistrictRepository) Enrollments() *EnrollmentRepository { return r.enrollments }

// StatewideTests exposes the testing store for loading.
func (r *DistrictRepository) StatewideTests() *StatewideTestRepository { return r.tests }

// EconomicProfiles exposes the economic store for loading.
func (r *DistrictRepository) EconomicProfiles() *EconomicProfileRepository { return r.economics }

// Baseline returns the canonical statewide baseline name.
func (r *DistrictRepository) Baseline() string { return r.baseline }

// Canonical normalizes name and folds baseline aliases onto the baseline name.
func (r *DistrictRepository) Canonical(name string) string {
	n := model.NormalizeName(name)
	if _, ok := r.aliases[n]; ok {
		return r.baseline
	}
	return n
}

// IsBaseline reports whether name refers to the statewide baseline.
func (r *DistrictRepository) IsBaseline(name string) bool {
	return r.Canonical(name) == r.baseline
}

// FindByName returns a handle for name when any category holds data for it.
func (r *DistrictRepository) FindByName(name string) (*model.District, bool) {
	n := r.Canonical(name)
	if n == "" {
		return nil, false
	}
	_, inEnrollment := r.enrollments.FindByName(n)
	_, inTests := r.tests.FindByName(n)
	_, inEconomics := r.economics.FindByName(n)
	if !inEnrollment && !inTests && !inEconomics {
		return nil, false
	}
	return model.NewDistrict(n, r.enrollments, r.tests, r.economics), true
}

// Find is FindByName with an error result: ErrInvalidName for a blank name,
// ErrNotFound for an unknown one.
func (r *DistrictRepository) Find(name string) (*model.District, error) {
	if model.NormalizeName(name) == "" {
		return nil, ErrInvalidName
	}
	d, ok := r.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", model.NormalizeName(name), ErrNotFound)
	}
	return d, nil
}

// Names returns every known district in first-load order: enrollment districts first,
// then any only present in testing or economic data.
func (r *DistrictRepository) Names() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, names := range [][]string{r.enrollments.Names(), r.tests.Names(), r.economics.Names()} {
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}

// Districts returns handles for every known district in Names order.
func (r *DistrictRepository) Districts() []*model.District {
	names := r.Names()
	out := make([]*model.District, len(names))
	for i, n := range names {
		out[i] = model.NewDistrict(n, r.enrollments, r.tests, r.economics)
	}
	return out
}

// Count returns the number of known districts.
func (r *DistrictRepository) Count() int { return len(r.Names()) }
