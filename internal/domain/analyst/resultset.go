package analyst

import (
	"fmt"
	"time"

	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/internal/domain/types"
)

// Metric keys carried by result entries.
const (
	MetricGraduationRate     = "high_school_graduation_rate"
	MetricChildrenInPoverty  = "children_in_poverty_rate"
	MetricFreeOrReducedLunch = "free_or_reduced_price_lunch_rate"
	MetricMedianIncome       = "median_household_income"
	MetricIncomeVariation    = "median_household_income_variation"
)

// criterion is one averaged metric compared against the baseline.
type criterion struct {
	key       string
	metric    metric
	threshold float64
}

// averages resolves every criterion's average for d.
func averages(d *model.District, criteria []criterion) (map[string]float64, error) {
	out := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		avg, err := averageOf(d, c.metric)
		if err != nil {
			return nil, err
		}
		out[c.key] = avg
	}
	return out, nil
}

// exceeds reports whether every criterion's variation against the baseline is strictly
// above its threshold.
func exceeds(own, baseline map[string]float64, criteria []criterion) (bool, error) {
	for _, c := range criteria {
		v, err := Variation(own[c.key], baseline[c.key])
		if err != nil {
			return false, err
		}
		if v <= c.threshold {
			return false, nil
		}
	}
	return true, nil
}

func rounded(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = round3(v)
	}
	return out
}

// scan builds a result set of the districts exceeding every criterion. value picks the
// entry value from a district's averages; extra adds derived metrics to matching entries.
func (a *Analyst) scan(criteria []criterion, value string, extra func(own, baseline map[string]float64) map[string]float64) (types.ResultSet, error) {
	baseName := a.districts.Baseline()
	base, err := a.district(baseName)
	if err != nil {
		return types.ResultSet{}, fmt.Errorf("statewide baseline: %w", err)
	}
	baseAvg, err := averages(base, criteria)
	if err != nil {
		return types.ResultSet{}, fmt.Errorf("statewide baseline: %w", err)
	}
	statewide := types.NewResultEntry(base.Name(), round3(baseAvg[value]), rounded(baseAvg))

	var matching []types.ResultEntry
	for _, name := range a.districts.Names() {
		if a.districts.IsBaseline(name) {
			continue
		}
		d, ok := a.districts.FindByName(name)
		if !ok {
			continue
		}
		own, err := averages(d, criteria)
		if err != nil {
			continue
		}
		ok, err = exceeds(own, baseAvg, criteria)
		if err != nil || !ok {
			continue
		}
		metrics := rounded(own)
		if extra != nil {
			for k, v := range extra(own, baseAvg) {
				metrics[k] = v
			}
		}
		matching = append(matching, types.NewResultEntry(d.Name(), round3(own[value]), metrics))
	}
	return types.NewResultSet(matching, statewide), nil
}

// HighPovertyAndHighSchoolGraduation selects districts whose children-in-poverty,
// free/reduced lunch and graduation averages all exceed their thresholds relative to
// the statewide averages. Entry values are graduation rate averages.
func (a *Analyst) HighPovertyAndHighSchoolGraduation() (rs types.ResultSet, err error) {
	defer func(start time.Time) {
		a.observe("high_poverty_and_high_school_graduation", start, err)
	}(time.Now())

	t := a.thresholds
	return a.scan([]criterion{
		{key: MetricChildrenInPoverty, metric: childrenInPoverty, threshold: t.Poverty},
		{key: MetricFreeOrReducedLunch, metric: freeOrReducedLunch, threshold: t.Lunch},
		{key: MetricGraduationRate, metric: graduationRate, threshold: t.Graduation},
	}, MetricGraduationRate, nil)
}

// HighIncomeDisparity selects districts whose median household income and
// children-in-poverty variations both exceed their thresholds. Entry values are median
// income averages.
func (a *Analyst) HighIncomeDisparity() (rs types.ResultSet, err error) {
	defer func(start time.Time) {
		a.observe("high_income_disparity", start, err)
	}(time.Now())

	t := a.thresholds
	return a.scan([]criterion{
		{key: MetricMedianIncome, metric: medianHouseholdIncome, threshold: t.IncomeDisparity},
		{key: MetricChildrenInPoverty, metric: childrenInPoverty, threshold: t.IncomePoverty},
	}, MetricMedianIncome, func(own, baseline map[string]float64) map[string]float64 {
		v, err := Variation(own[MetricMedianIncome], baseline[MetricMedianIncome])
		if err != nil {
			return nil
		}
		return map[string]float64{MetricIncomeVariation: v}
	})
}
