package analyst

import (
	"fmt"
	"math"
	"time"

	"github.com/okian/headcount/internal/domain/model"
)

const precision = 1000

// round3 rounds half away from zero to 3 decimal places.
func round3(x float64) float64 {
	return math.Round(x*precision) / precision
}

// Average returns the arithmetic mean of the series, summed in year order.
func Average(series model.TimeSeries) (float64, error) {
	if series.Len() == 0 {
		return 0, fmt.Errorf("average: %w", ErrEmptyData)
	}
	var sum float64
	for _, v := range series.Values() {
		sum += v
	}
	return sum / float64(series.Len()), nil
}

// Variation returns a / b rounded to 3 decimal places. The numerator is the subject,
// the denominator the comparison baseline; a zero baseline has no usable data.
func Variation(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("variation against zero: %w", ErrEmptyData)
	}
	return round3(a / b), nil
}

// metric selects one series from a district.
type metric func(*model.District) model.TimeSeries

func kindergartenParticipation(d *model.District) model.TimeSeries {
	return d.Enrollment().KindergartenParticipationByYear()
}

func graduationRate(d *model.District) model.TimeSeries {
	return d.Enrollment().GraduationRateByYear()
}

func medianHouseholdIncome(d *model.District) model.TimeSeries {
	return d.EconomicProfile().MedianHouseholdIncome()
}

func childrenInPoverty(d *model.District) model.TimeSeries {
	return d.EconomicProfile().ChildrenInPoverty()
}

func freeOrReducedLunch(d *model.District) model.TimeSeries {
	return d.EconomicProfile().FreeOrReducedLunchPercentage()
}

// averageOf averages one metric of a resolved district.
func averageOf(d *model.District, m metric) (float64, error) {
	avg, err := Average(m(d))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", d.Name(), err)
	}
	return avg, nil
}

// variationOf compares the same metric of two districts.
func (a *Analyst) variationOf(name, against string, m metric) (float64, error) {
	if model.NormalizeName(against) == "" {
		return 0, fmt.Errorf("against: %w", ErrInsufficientInformation)
	}
	subject, err := a.district(name)
	if err != nil {
		return 0, err
	}
	baseline, err := a.district(against)
	if err != nil {
		return 0, err
	}
	num, err := averageOf(subject, m)
	if err != nil {
		return 0, err
	}
	den, err := averageOf(baseline, m)
	if err != nil {
		return 0, err
	}
	return Variation(num, den)
}

// KindergartenParticipationRateVariation compares the district's average kindergarten
// participation with the against district's.
func (a *Analyst) KindergartenParticipationRateVariation(name, against string) (v float64, err error) {
	defer func(start time.Time) {
		a.observe("kindergarten_participation_rate_variation", start, err)
	}(time.Now())

	return a.variationOf(name, against, kindergartenParticipation)
}

// KindergartenParticipationRateVariationTrend returns the per-year participation
// variation for every year both districts report. Years where the against district
// reports zero participation are left out.
func (a *Analyst) KindergartenParticipationRateVariationTrend(name, against string) (trend model.TimeSeries, err error) {
	defer func(start time.Time) {
		a.observe("kindergarten_participation_rate_variation_trend", start, err)
	}(time.Now())

	if model.NormalizeName(against) == "" {
		return nil, fmt.Errorf("against: %w", ErrInsufficientInformation)
	}
	subject, err := a.district(name)
	if err != nil {
		return nil, err
	}
	baseline, err := a.district(against)
	if err != nil {
		return nil, err
	}

	own := kindergartenParticipation(subject)
	other := kindergartenParticipation(baseline)
	trend = model.TimeSeries{}
	for _, year := range own.Years() {
		den, ok := other.In(year)
		if !ok {
			continue
		}
		v, verr := Variation(own[year], den)
		if verr != nil {
			continue
		}
		trend.Set(year, v)
	}
	return trend, nil
}

// KindergartenParticipationAgainstHighSchoolGraduation compares a district's average
// kindergarten participation with its own average graduation rate.
func (a *Analyst) KindergartenParticipationAgainstHighSchoolGraduation(name string) (v float64, err error) {
	defer func(start time.Time) {
		a.observe("kindergarten_participation_against_high_school_graduation", start, err)
	}(time.Now())

	d, err := a.district(name)
	if err != nil {
		return 0, err
	}
	return kindergartenAgainstGraduation(d)
}

func kindergartenAgainstGraduation(d *model.District) (float64, error) {
	participation, err := averageOf(d, kindergartenParticipation)
	if err != nil {
		return 0, err
	}
	graduation, err := averageOf(d, graduationRate)
	if err != nil {
		return 0, err
	}
	return Variation(participation, graduation)
}

// KindergartenParticipationAgainstHouseholdIncome divides the district's participation
// variation by its median income variation, both against the statewide baseline.
func (a *Analyst) KindergartenParticipationAgainstHouseholdIncome(name string) (v float64, err error) {
	defer func(start time.Time) {
		a.observe("kindergarten_participation_against_household_income", start, err)
	}(time.Now())

	return a.kindergartenAgainstIncome(name)
}

func (a *Analyst) kindergartenAgainstIncome(name string) (float64, error) {
	baseline := a.districts.Baseline()
	participation, err := a.variationOf(name, baseline, kindergartenParticipation)
	if err != nil {
		return 0, err
	}
	income, err := a.variationOf(name, baseline, medianHouseholdIncome)
	if err != nil {
		return 0, err
	}
	return Variation(participation, income)
}
