package model

import (
	"fmt"
	"strings"
)

// Grade is a tested grade level.
type Grade int

// Supported grades.
const (
	ThirdGrade  Grade = 3
	EighthGrade Grade = 8
)

// Grades lists the supported grades in ascending order.
var Grades = []Grade{ThirdGrade, EighthGrade}

// Valid reports whether g is a supported grade.
func (g Grade) Valid() bool {
	return g == ThirdGrade || g == EighthGrade
}

// Subject is a tested subject.
type Subject string

// Supported subjects.
const (
	Math    Subject = "math"
	Reading Subject = "reading"
	Writing Subject = "writing"
)

// Subjects lists the supported subjects in their canonical order.
var Subjects = []Subject{Math, Reading, Writing}

// Valid reports whether s is a supported subject.
func (s Subject) Valid() bool {
	switch s {
	case Math, Reading, Writing:
		return true
	}
	return false
}

// ParseSubject normalizes a subject name ("Math", " reading ") to a Subject.
func ParseSubject(name string) (Subject, error) {
	s := Subject(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("subject %q: %w", name, ErrUnknownData)
	}
	return s, nil
}

// Race is a race/ethnicity category used by the proficiency breakdowns.
type Race string

// Race/ethnicity categories.
const (
	AllStudents     Race = "all_students"
	Asian           Race = "asian"
	Black           Race = "black"
	PacificIslander Race = "hawaiian/pacific_islander"
	Hispanic        Race = "hispanic"
	NativeAmerican  Race = "native_american"
	TwoOrMore       Race = "two_or_more"
	White           Race = "white"
)

// Races lists the race/ethnicity categories in display order.
var Races = []Race{AllStudents, Asian, Black, PacificIslander, Hispanic, NativeAmerican, TwoOrMore, White}

// Valid reports whether r is a known category.
func (r Race) Valid() bool {
	for _, known := range Races {
		if r == known {
			return true
		}
	}
	return false
}

// raceLabels maps the source file spellings onto categories.
var raceLabels = map[string]Race{
	"all students":              AllStudents,
	"asian":                     Asian,
	"black":                     Black,
	"hawaiian/pacific islander": PacificIslander,
	"pacific islander":          PacificIslander,
	"hispanic":                  Hispanic,
	"native american":           NativeAmerican,
	"two or more":               TwoOrMore,
	"white":                     White,
}

// ParseRace maps a source label or a canonical key to a Race.
func ParseRace(label string) (Race, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if r, ok := raceLabels[key]; ok {
		return r, nil
	}
	if r := Race(strings.ReplaceAll(key, " ", "_")); r.Valid() {
		return r, nil
	}
	return "", fmt.Errorf("race %q: %w", label, ErrUnknownData)
}

// NormalizeName returns the lookup key for a district name.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
