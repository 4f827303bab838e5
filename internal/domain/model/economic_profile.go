package model

// EconomicProfile holds a district's economic indicators. Median household income is
// keyed by the first year of the reporting range ("2005-2009" -> 2005).
type EconomicProfile struct {
	name                  string
	medianHouseholdIncome TimeSeries
	childrenInPoverty     TimeSeries
	lunchPercentage       TimeSeries
	lunchTotal            TimeSeries
	titleI                TimeSeries
}

// NewEconomicProfile returns an empty record for name.
func NewEconomicProfile(name string) *EconomicProfile {
	return &EconomicProfile{
		name:                  NormalizeName(name),
		medianHouseholdIncome: TimeSeries{},
		childrenInPoverty:     TimeSeries{},
		lunchPercentage:       TimeSeries{},
		lunchTotal:            TimeSeries{},
		titleI:                TimeSeries{},
	}
}

// Name returns the normalized district name.
func (p *EconomicProfile) Name() string { return p.name }

func (p *EconomicProfile) RecordMedianHouseholdIncome(year int, v float64) {
	p.medianHouseholdIncome.Set(year, v)
}
func (p *EconomicProfile) RecordChildrenInPoverty(year int, v float64) {
	p.childrenInPoverty.Set(year, v)
}
func (p *EconomicProfile) RecordFreeOrReducedLunchPercentage(year int, v float64) {
	p.lunchPercentage.Set(year, v)
}
func (p *EconomicProfile) RecordFreeOrReducedLunchTotal(year int, v float64) {
	p.lunchTotal.Set(year, v)
}
func (p *EconomicProfile) RecordTitleI(year int, v float64) { p.titleI.Set(year, v) }

// MedianHouseholdIncome returns a copy of the income series.
func (p *EconomicProfile) MedianHouseholdIncome() TimeSeries {
	return p.medianHouseholdIncome.Clone()
}

// ChildrenInPoverty returns a copy of the school-aged poverty rate series.
func (p *EconomicProfile) ChildrenInPoverty() TimeSeries { return p.childrenInPoverty.Clone() }

// FreeOrReducedLunchPercentage returns a copy of the eligible-student rate series.
func (p *EconomicProfile) FreeOrReducedLunchPercentage() TimeSeries {
	return p.lunchPercentage.Clone()
}

// FreeOrReducedLunchTotal returns a copy of the eligible-student count series.
func (p *EconomicProfile) FreeOrReducedLunchTotal() TimeSeries { return p.lunchTotal.Clone() }

// TitleI returns a copy of the Title I rate series.
func (p *EconomicProfile) TitleI() TimeSeries { return p.titleI.Clone() }
