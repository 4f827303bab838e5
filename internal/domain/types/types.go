// Package types contains the value objects returned by analyst queries.
package types

import (
	"encoding/json"
	"sort"
)

// GrowthEntry pairs a district with its year-over-year proficiency growth.
type GrowthEntry struct {
	Rank   int     `json:"rank,omitempty"`
	Name   string  `json:"name"`
	Growth float64 `json:"growth"`
}

// ResultEntry pairs a district (or the statewide baseline) with one computed value.
// Metrics carries the named averages the value was derived from; it is copied on the
// way in and out so an entry cannot change after construction.
type ResultEntry struct {
	name    string
	value   float64
	metrics map[string]float64
}

// NewResultEntry builds an entry.
func NewResultEntry(name string, value float64, metrics map[string]float64) ResultEntry {
	return ResultEntry{name: name, value: value, metrics: copyMetrics(metrics)}
}

// Name returns the district name.
func (e ResultEntry) Name() string { return e.name }

// Value returns the entry's primary metric.
func (e ResultEntry) Value() float64 { return e.value }

// Metric returns a named supporting metric.
func (e ResultEntry) Metric(key string) (float64, bool) {
	v, ok := e.metrics[key]
	return v, ok
}

// Metrics returns a copy of the supporting metrics.
func (e ResultEntry) Metrics() map[string]float64 { return copyMetrics(e.metrics) }

// MetricKeys returns the supporting metric names in sorted order.
func (e ResultEntry) MetricKeys() []string {
	keys := make([]string, 0, len(e.metrics))
	for k := range e.metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type resultEntryJSON struct {
	Name    string             `json:"name"`
	Value   float64            `json:"value"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// MarshalJSON exposes the entry to the API and renderer.
func (e ResultEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultEntryJSON{Name: e.name, Value: e.value, Metrics: e.metrics})
}

// ResultSet bundles the districts matching a threshold query with the statewide baseline.
type ResultSet struct {
	matching  []ResultEntry
	statewide ResultEntry
}

// NewResultSet builds a result set. Entries named like the baseline are dropped so the
// matching districts never contain the baseline itself.
func NewResultSet(matching []ResultEntry, statewide ResultEntry) ResultSet {
	out := make([]ResultEntry, 0, len(matching))
	for _, e := range matching {
		if e.name == statewide.name {
			continue
		}
		out = append(out, e)
	}
	return ResultSet{matching: out, statewide: statewide}
}

// MatchingDistricts returns a copy of the matching entries in query order.
func (rs ResultSet) MatchingDistricts() []ResultEntry {
	out := make([]ResultEntry, len(rs.matching))
	copy(out, rs.matching)
	return out
}

// StatewideAverage returns the baseline entry.
func (rs ResultSet) StatewideAverage() ResultEntry { return rs.statewide }

type resultSetJSON struct {
	MatchingDistricts []ResultEntry `json:"matching_districts"`
	StatewideAverage  ResultEntry   `json:"statewide_average"`
}

// MarshalJSON exposes the set to the API and renderer.
func (rs ResultSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultSetJSON{MatchingDistricts: rs.MatchingDistricts(), StatewideAverage: rs.statewide})
}

func copyMetrics(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
