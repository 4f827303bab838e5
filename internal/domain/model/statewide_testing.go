package model

import "fmt"

// StatewideTest holds proficiency series decomposed by grade x subject and by subject x race.
type StatewideTest struct {
	name    string
	byGrade map[Grade]map[Subject]TimeSeries
	byRace  map[Subject]map[Race]TimeSeries
}

// NewStatewideTest returns an empty record for name.
func NewStatewideTest(name string) *StatewideTest {
	return &StatewideTest{
		name:    NormalizeName(name),
		byGrade: make(map[Grade]map[Subject]TimeSeries),
		byRace:  make(map[Subject]map[Race]TimeSeries),
	}
}

// Name returns the normalized district name.
func (s *StatewideTest) Name() string { return s.name }

// RecordGradeProficiency stores a grade x subject proficiency value.
func (s *StatewideTest) RecordGradeProficiency(grade Grade, subject Subject, year int, value float64) {
	bySubject, ok := s.byGrade[grade]
	if !ok {
		bySubject = make(map[Subject]TimeSeries)
		s.byGrade[grade] = bySubject
	}
	if bySubject[subject] == nil {
		bySubject[subject] = TimeSeries{}
	}
	bySubject[subject].Set(year, value)
}

// RecordRaceProficiency stores a subject x race proficiency value.
func (s *StatewideTest) RecordRaceProficiency(subject Subject, race Race, year int, value float64) {
	byRace, ok := s.byRace[subject]
	if !ok {
		byRace = make(map[Race]TimeSeries)
		s.byRace[subject] = byRace
	}
	if byRace[race] == nil {
		byRace[race] = TimeSeries{}
	}
	byRace[race].Set(year, value)
}

// Proficiency returns a copy of the grade x subject series. An absent series is empty,
// an unsupported selector is ErrUnknownData.
func (s *StatewideTest) Proficiency(grade Grade, subject Subject) (TimeSeries, error) {
	if !grade.Valid() {
		return nil, fmt.Errorf("grade %d: %w", grade, ErrUnknownData)
	}
	if !subject.Valid() {
		return nil, fmt.Errorf("subject %q: %w", subject, ErrUnknownData)
	}
	return s.byGrade[grade][subject].Clone(), nil
}

// RaceProficiency returns a copy of the subject x race series.
func (s *StatewideTest) RaceProficiency(subject Subject, race Race) (TimeSeries, error) {
	if !subject.Valid() {
		return nil, fmt.Errorf("subject %q: %w", subject, ErrUnknownData)
	}
	if !race.Valid() {
		return nil, fmt.Errorf("race %q: %w", race, ErrUnknownData)
	}
	return s.byRace[subject][race].Clone(), nil
}

// ProficientByGrade pivots the grade's series into year -> subject -> value.
func (s *StatewideTest) ProficientByGrade(grade Grade) (map[int]map[Subject]float64, error) {
	if !grade.Valid() {
		return nil, fmt.Errorf("grade %d: %w", grade, ErrUnknownData)
	}
	out := make(map[int]map[Subject]float64)
	for subject, series := range s.byGrade[grade] {
		pivot(out, subject, series)
	}
	return out, nil
}

// ProficientByRaceOrEthnicity pivots the race's series into year -> subject -> value.
func (s *StatewideTest) ProficientByRaceOrEthnicity(race Race) (map[int]map[Subject]float64, error) {
	if !race.Valid() {
		return nil, fmt.Errorf("race %q: %w", race, ErrUnknownData)
	}
	out := make(map[int]map[Subject]float64)
	for subject, byRace := range s.byRace {
		pivot(out, subject, byRace[race])
	}
	return out, nil
}

// ProficientForSubjectByGradeInYear returns a single value; a missing year is ErrUnknownData.
func (s *StatewideTest) ProficientForSubjectByGradeInYear(subject Subject, grade Grade, year int) (float64, error) {
	series, err := s.Proficiency(grade, subject)
	if err != nil {
		return 0, err
	}
	v, ok := series.In(year)
	if !ok {
		return 0, fmt.Errorf("year %d: %w", year, ErrUnknownData)
	}
	return v, nil
}

// ProficientForSubjectByRaceInYear returns a single value; a missing year is ErrUnknownData.
func (s *StatewideTest) ProficientForSubjectByRaceInYear(subject Subject, race Race, year int) (float64, error) {
	series, err := s.RaceProficiency(subject, race)
	if err != nil {
		return 0, err
	}
	v, ok := series.In(year)
	if !ok {
		return 0, fmt.Errorf("year %d: %w", year, ErrUnknownData)
	}
	return v, nil
}

func pivot(out map[int]map[Subject]float64, subject Subject, series TimeSeries) {
	for year, v := range series {
		if out[year] == nil {
			out[year] = make(map[Subject]float64)
		}
		out[year][subject] = v
	}
}
