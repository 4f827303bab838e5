package analyst_test

import (
	"github.com/okian/headcount/internal/adapters/repository"
	"github.com/okian/headcount/internal/domain/model"
)

type gradeScores map[model.Subject]model.TimeSeries

type districtFixture struct {
	name         string
	kindergarten model.TimeSeries
	graduation   model.TimeSeries
	income       model.TimeSeries
	poverty      model.TimeSeries
	lunch        model.TimeSeries
	thirdGrade   gradeScores
}

// fixtureDistricts is a small Colorado-shaped data set. COLORADO is the baseline.
//
//	district         kinder  grad  income  poverty  lunch  3rd math/reading/writing growth
//	COLORADO         0.5     0.8   50000   0.2      0.4    0.1 / 0.1 / 0.05
//	ACADEMY 20       0.4     0.5   100000  0.1      0.2    0.3 / 0.1 / 0.1
//	PUEBLO CITY 60   0.5     0.9   40000   0.3      0.6    0.1 / 0.3 / 0.1
//	ASPEN 1          0.5     0.6   90000   0.25     0.1    0.1 / 0.05 / -
//	NO DATA DISTRICT 0.5     -     -       -        -      -
var fixtureDistricts = []districtFixture{
	{
		name:         "Colorado",
		kindergarten: model.TimeSeries{2007: 0.4, 2008: 0.6},
		graduation:   model.TimeSeries{2010: 0.8, 2011: 0.8},
		income:       model.TimeSeries{2005: 50000, 2006: 50000},
		poverty:      model.TimeSeries{2010: 0.2, 2011: 0.2},
		lunch:        model.TimeSeries{2010: 0.4, 2011: 0.4},
		thirdGrade: gradeScores{
			model.Math:    {2008: 0.5, 2014: 0.6},
			model.Reading: {2008: 0.5, 2014: 0.6},
			model.Writing: {2008: 0.5, 2014: 0.55},
		},
	},
	{
		name:         "Academy 20",
		kindergarten: model.TimeSeries{2007: 0.4, 2008: 0.4, 2009: 0.4},
		graduation:   model.TimeSeries{2010: 0.5, 2011: 0.5},
		income:       model.TimeSeries{2005: 100000, 2006: 100000},
		poverty:      model.TimeSeries{2010: 0.1, 2011: 0.1},
		lunch:        model.TimeSeries{2010: 0.2, 2011: 0.2},
		thirdGrade: gradeScores{
			model.Math:    {2008: 0.5, 2011: 0.6, 2014: 0.8},
			model.Reading: {2008: 0.5, 2014: 0.6},
			model.Writing: {2008: 0.4, 2014: 0.5},
		},
	},
	{
		name:         "Pueblo City 60",
		kindergarten: model.TimeSeries{2007: 0.5, 2008: 0.5},
		graduation:   model.TimeSeries{2010: 0.9, 2011: 0.9},
		income:       model.TimeSeries{2005: 40000},
		poverty:      model.TimeSeries{2010: 0.3},
		lunch:        model.TimeSeries{2010: 0.6},
		thirdGrade: gradeScores{
			model.Math:    {2008: 0.4, 2014: 0.5},
			model.Reading: {2008: 0.4, 2014: 0.7},
			model.Writing: {2008: 0.3, 2014: 0.4},
		},
	},
	{
		name:         "Aspen 1",
		kindergarten: model.TimeSeries{2007: 0.5, 2008: 0.5},
		graduation:   model.TimeSeries{2010: 0.6, 2011: 0.6},
		income:       model.TimeSeries{2005: 90000},
		poverty:      model.TimeSeries{2010: 0.25},
		lunch:        model.TimeSeries{2010: 0.1},
		thirdGrade: gradeScores{
			model.Math:    {2008: 0.6, 2014: 0.7},
			model.Reading: {2008: 0.6, 2014: 0.65},
			model.Writing: {2014: 0.5},
		},
	},
	{
		name:         "No Data District",
		kindergarten: model.TimeSeries{2007: 0.5},
	},
}

func newFixtureRepository() *repository.DistrictRepository {
	repo := repository.NewDistrictRepository()
	for _, f := range fixtureDistricts {
		e := repo.Enrollments().Upsert(f.name)
		for y, v := range f.kindergarten {
			e.RecordKindergartenParticipation(y, v)
		}
		for y, v := range f.graduation {
			e.RecordGraduationRate(y, v)
		}

		if f.income != nil || f.poverty != nil || f.lunch != nil {
			p := repo.EconomicProfiles().Upsert(f.name)
			for y, v := range f.income {
				p.RecordMedianHouseholdIncome(y, v)
			}
			for y, v := range f.poverty {
				p.RecordChildrenInPoverty(y, v)
			}
			for y, v := range f.lunch {
				p.RecordFreeOrReducedLunchPercentage(y, v)
			}
		}

		if f.thirdGrade != nil {
			t := repo.StatewideTests().Upsert(f.name)
			for subject, series := range f.thirdGrade {
				for y, v := range series {
					t.RecordGradeProficiency(model.ThirdGrade, subject, y, v)
				}
			}
		}
	}
	return repo
}
