package model

// EnrollmentLookup resolves enrollment records by normalized name.
type EnrollmentLookup interface {
	FindByName(name string) (*Enrollment, bool)
}

// StatewideTestLookup resolves testing records by normalized name.
type StatewideTestLookup interface {
	FindByName(name string) (*StatewideTest, bool)
}

// EconomicProfileLookup resolves economic records by normalized name.
type EconomicProfileLookup interface {
	FindByName(name string) (*EconomicProfile, bool)
}

// District is a name-keyed handle over the category repositories. It holds no data of its
// own; every accessor resolves through the lookups and never fails for a missing category.
type District struct {
	name        string
	enrollments EnrollmentLookup
	tests       StatewideTestLookup
	economics   EconomicProfileLookup
}

// NewDistrict builds a handle for name. Nil lookups behave as empty repositories.
func NewDistrict(name string, enrollments EnrollmentLookup, tests StatewideTestLookup, economics EconomicProfileLookup) *District {
	return &District{
		name:        NormalizeName(name),
		enrollments: enrollments,
		tests:       tests,
		economics:   economics,
	}
}

// Name returns the normalized district name.
func (d *District) Name() string { return d.name }

// Enrollment returns the district's enrollment record, or an empty one.
func (d *District) Enrollment() *Enrollment {
	if d.enrollments != nil {
		if e, ok := d.enrollments.FindByName(d.name); ok {
			return e
		}
	}
	return NewEnrollment(d.name)
}

// StatewideTest returns the district's testing record, or an empty one.
func (d *District) StatewideTest() *StatewideTest {
	if d.tests != nil {
		if t, ok := d.tests.FindByName(d.name); ok {
			return t
		}
	}
	return NewStatewideTest(d.name)
}

// EconomicProfile returns the district's economic record, or an empty one.
func (d *District) EconomicProfile() *EconomicProfile {
	if d.economics != nil {
		if p, ok := d.economics.FindByName(d.name); ok {
			return p
		}
	}
	return NewEconomicProfile(d.name)
}
