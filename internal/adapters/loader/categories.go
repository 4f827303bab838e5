package loader

import (
	"fmt"
	"strings"

	"github.com/okian/headcount/internal/adapters/repository"
	"github.com/okian/headcount/internal/domain/model"
)

// Category names, matching the config source keys.
const (
	Kindergarten            = "kindergarten"
	HighSchoolGraduation    = "high_school_graduation"
	ThirdGrade              = "third_grade"
	EighthGrade             = "eighth_grade"
	Math                    = "math"
	Reading                 = "reading"
	Writing                 = "writing"
	MedianHouseholdIncome   = "median_household_income"
	ChildrenInPoverty       = "children_in_poverty"
	FreeOrReducedPriceLunch = "free_or_reduced_price_lunch"
	TitleI                  = "title_i"
)

// Categories lists every category in load order. Enrollment comes first so district
// order follows the enrollment files.
var Categories = []string{
	Kindergarten, HighSchoolGraduation,
	ThirdGrade, EighthGrade, Math, Reading, Writing,
	MedianHouseholdIncome, ChildrenInPoverty, FreeOrReducedPriceLunch, TitleI,
}

// eligibleFreeOrReduced is the poverty level row carrying the lunch measures.
const eligibleFreeOrReduced = "eligible for free or reduced lunch"

// outcome of storing one row.
type outcome int

const (
	stored outcome = iota
	ignored
	rejected
)

// store writes one row into the repositories.
type store func(repo *repository.DistrictRepository, r record, year int, v float64) (outcome, error)

// handler describes how a category's rows are stored.
type handler struct {
	columns []string
	store   store
}

var handlers = map[string]handler{
	Kindergarten: {store: func(repo *repository.DistrictRepository, r record, year int, v float64) (outcome, error) {
		repo.Enrollments().Upsert(r.location).RecordKindergartenParticipation(year, v)
		return stored, nil
	}},
	HighSchoolGraduation: {store: func(repo *repository.DistrictRepository, r record, year int, v float64) (outcome, error) {
		repo.Enrollments().Upsert(r.location).RecordGraduationRate(year, v)
		return stored, nil
	}},
	ThirdGrade:  {columns: []string{colScore}, store: gradeStore(model.ThirdGrade)},
	EighthGrade: {columns: []string{colScore}, store: gradeStore(model.EighthGrade)},
	Math:        {columns: []string{colRace}, store: raceStore(model.Math)},
	Reading:     {columns: []string{colRace}, store: raceStore(model.Reading)},
	Writing:     {columns: []string{colRace}, store: raceStore(model.Writing)},
	MedianHouseholdIncome: {store: func(repo *repository.DistrictRepository, r record, year int, v float64) (outcome, error) {
		repo.EconomicProfiles().Upsert(r.location).RecordMedianHouseholdIncome(year, v)
		return stored, nil
	}},
	ChildrenInPoverty: {store: func(repo *repository.DistrictRepository, r record, year int, v float64) (outcome, error) {
		if r.format != formatPercent {
			return ignored, nil
		}
		repo.EconomicProfiles().Upsert(r.location).RecordChildrenInPoverty(year, v)
		return stored, nil
	}},
	FreeOrReducedPriceLunch: {columns: []string{colPovertyLevel}, store: func(repo *repository.DistrictRepository, r record, year int, v float64) (outcome, error) {
		if strings.ToLower(r.povertyLevel) != eligibleFreeOrReduced {
			return ignored, nil
		}
		switch r.format {
		case formatPercent:
			repo.EconomicProfiles().Upsert(r.location).RecordFreeOrReducedLunchPercentage(year, v)
		case formatNumber:
			repo.EconomicProfiles().Upsert(r.location).RecordFreeOrReducedLunchTotal(year, v)
		default:
			return ignored, nil
		}
		return stored, nil
	}},
	TitleI: {store: func(repo *repository.DistrictRepository, r record, year int, v float64) (outcome, error) {
		repo.EconomicProfiles().Upsert(r.location).RecordTitleI(year, v)
		return stored, nil
	}},
}

func gradeStore(grade model.Grade) store {
	return func(repo *repository.DistrictRepository, r record, year int, v float64) (outcome, error) {
		subject, err := model.ParseSubject(r.score)
		if err != nil {
			return rejected, err
		}
		repo.StatewideTests().Upsert(r.location).RecordGradeProficiency(grade, subject, year, v)
		return stored, nil
	}
}

func raceStore(subject model.Subject) store {
	return func(repo *repository.DistrictRepository, r record, year int, v float64) (outcome, error) {
		race, err := model.ParseRace(r.race)
		if err != nil {
			return rejected, err
		}
		repo.StatewideTests().Upsert(r.location).RecordRaceProficiency(subject, race, year, v)
		return stored, nil
	}
}

func lookup(category string) (handler, error) {
	h, ok := handlers[category]
	if !ok {
		return handler{}, fmt.Errorf("%q: %w", category, ErrUnknownCategory)
	}
	return h, nil
}
