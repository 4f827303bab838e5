package repository

import (
	"sync"

	"github.com/okian/headcount/internal/domain/model"
)

// index is a name-keyed store that remembers first-insertion order. Every name is
// passed through key on both reads and writes.
type index[T any] struct {
	mu     sync.RWMutex
	key    func(string) string
	order  []string
	byName map[string]T
}

func newIndex[T any]() *index[T] {
	return &index[T]{key: model.NormalizeName, byName: make(map[string]T)}
}

// setKey replaces the name canonicalizer; the district repository installs its
// baseline alias folding here.
func (ix *index[T]) setKey(key func(string) string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.key = key
}

func (ix *index[T]) find(name string) (T, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	v, ok := ix.byName[ix.key(name)]
	return v, ok
}

// upsert returns the record for name, creating it with mk when absent.
func (ix *index[T]) upsert(name string, mk func(string) T) T {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	name = ix.key(name)
	if v, ok := ix.byName[name]; ok {
		return v
	}
	v := mk(name)
	ix.byName[name] = v
	ix.order = append(ix.order, name)
	return v
}

func (ix *index[T]) names() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

func (ix *index[T]) count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.order)
}

// EnrollmentRepository stores enrollment records by normalized district name.
type EnrollmentRepository struct{ ix *index[*model.Enrollment] }

// NewEnrollmentRepository constructs an empty repository.
func NewEnrollmentRepository() *EnrollmentRepository {
	return &EnrollmentRepository{ix: newIndex[*model.Enrollment]()}
}

// FindByName implements model.EnrollmentLookup.
func (r *EnrollmentRepository) FindByName(name string) (*model.Enrollment, bool) {
	return r.ix.find(name)
}

// Upsert returns the record for name, creating an empty one on first use.
func (r *EnrollmentRepository) Upsert(name string) *model.Enrollment {
	return r.ix.upsert(name, model.NewEnrollment)
}

// Names returns the district names in load order.
func (r *EnrollmentRepository) Names() []string { return r.ix.names() }

// Count returns the number of records.
func (r *EnrollmentRepository) Count() int { return r.ix.count() }

// StatewideTestRepository stores testing records by normalized district name.
type StatewideTestRepository struct{ ix *index[*model.StatewideTest] }

// NewStatewideTestRepository constructs an empty repository.
func NewStatewideTestRepository() *StatewideTestRepository {
	return &StatewideTestRepository{ix: newIndex[*model.StatewideTest]()}
}

// FindByName implements model.StatewideTestLookup.
func (r *StatewideTestRepository) FindByName(name string) (*model.StatewideTest, bool) {
	return r.ix.find(name)
}

// Upsert returns the record for name, creating an empty one on first use.
func (r *StatewideTestRepository) Upsert(name string) *model.StatewideTest {
	return r.ix.upsert(name, model.NewStatewideTest)
}

// Names returns the district names in load order.
func (r *StatewideTestRepository) Names() []string { return r.ix.names() }

// Count returns the number of records.
func (r *StatewideTestRepository) Count() int { return r.ix.count() }

// EconomicProfileRepository stores economic records by normalized district name.
type EconomicProfileRepository struct{ ix *index[*model.EconomicProfile] }

// NewEconomicProfileRepository constructs an empty repository.
func NewEconomicProfileRepository() *EconomicProfileRepository {
	return &EconomicProfileRepository{ix: newIndex[*model.EconomicProfile]()}
}

// FindByName implements model.EconomicProfileLookup.
func (r *EconomicProfileRepository) FindByName(name string) (*model.EconomicProfile, bool) {
	return r.ix.find(name)
}

// Upsert returns the record for name, creating an empty one on first use.
func (r *EconomicProfileRepository) Upsert(name string) *model.EconomicProfile {
	return r.ix.upsert(name, model.NewEconomicProfile)
}

// Names returns the district names in load order.
func (r *EconomicProfileRepository) Names() []string { return r.ix.names() }

// Count returns the number of records.
func (r *EconomicProfileRepository) Count() int { return r.ix.count() }
