// Package model contains the district records shared between the repositories and the analyst.
package model

import "sort"

// TimeSeries maps a calendar year to a value. Keys are unique; iteration helpers
// always walk the series in ascending year order.
type TimeSeries map[int]float64

// Len returns the number of data points.
func (ts TimeSeries) Len() int { return len(ts) }

// Years returns the years in ascending order.
func (ts TimeSeries) Years() []int {
	years := make([]int, 0, len(ts))
	for y := range ts {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Values returns the values ordered by year.
func (ts TimeSeries) Values() []float64 {
	years := ts.Years()
	out := make([]float64, len(years))
	for i, y := range years {
		out[i] = ts[y]
	}
	return out
}

// In returns the value recorded for year.
func (ts TimeSeries) In(year int) (float64, bool) {
	v, ok := ts[year]
	return v, ok
}

// Earliest returns the first year and its value; ok is false for an empty series.
func (ts TimeSeries) Earliest() (year int, value float64, ok bool) {
	if len(ts) == 0 {
		return 0, 0, false
	}
	years := ts.Years()
	return years[0], ts[years[0]], true
}

// Latest returns the most recent year and its value; ok is false for an empty series.
func (ts TimeSeries) Latest() (year int, value float64, ok bool) {
	if len(ts) == 0 {
		return 0, 0, false
	}
	years := ts.Years()
	last := years[len(years)-1]
	return last, ts[last], true
}

// Clone returns an independent copy. A nil series clones to an empty one.
func (ts TimeSeries) Clone() TimeSeries {
	out := make(TimeSeries, len(ts))
	for y, v := range ts {
		out[y] = v
	}
	return out
}

// Set records value for year, replacing any previous value.
func (ts TimeSeries) Set(year int, value float64) {
	ts[year] = value
}
