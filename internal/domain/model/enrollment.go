package model

// Enrollment holds a district's kindergarten participation and graduation series.
// Records are populated by the repositories at load time and only read afterwards.
type Enrollment struct {
	name                      string
	kindergartenParticipation TimeSeries
	graduationRate            TimeSeries
}

// NewEnrollment returns an empty record for name.
func NewEnrollment(name string) *Enrollment {
	return &Enrollment{
		name:                      NormalizeName(name),
		kindergartenParticipation: TimeSeries{},
		graduationRate:            TimeSeries{},
	}
}

// Name returns the normalized district name.
func (e *Enrollment) Name() string { return e.name }

// RecordKindergartenParticipation stores the participation rate for year.
func (e *Enrollment) RecordKindergartenParticipation(year int, rate float64) {
	e.kindergartenParticipation.Set(year, rate)
}

// RecordGraduationRate stores the high school graduation rate for year.
func (e *Enrollment) RecordGraduationRate(year int, rate float64) {
	e.graduationRate.Set(year, rate)
}

// KindergartenParticipationByYear returns a copy of the participation series.
func (e *Enrollment) KindergartenParticipationByYear() TimeSeries {
	return e.kindergartenParticipation.Clone()
}

// KindergartenParticipationInYear returns the participation rate for year.
func (e *Enrollment) KindergartenParticipationInYear(year int) (float64, bool) {
	return e.kindergartenParticipation.In(year)
}

// GraduationRateByYear returns a copy of the graduation series.
func (e *Enrollment) GraduationRateByYear() TimeSeries {
	return e.graduationRate.Clone()
}

// GraduationRateInYear returns the graduation rate for year.
func (e *Enrollment) GraduationRateInYear(year int) (float64, bool) {
	return e.graduationRate.In(year)
}
