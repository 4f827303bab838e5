package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column keys after normalization: lowercase with spaces and underscores removed.
const (
	colLocation     = "location"
	colTimeFrame    = "timeframe"
	colDataFormat   = "dataformat"
	colData         = "data"
	colScore        = "score"
	colRace         = "raceethnicity"
	colPovertyLevel = "povertylevel"
)

// Data formats used by the source files.
const (
	formatPercent  = "percent"
	formatNumber   = "number"
	formatCurrency = "currency"
)

// record is one source row with its named columns resolved.
type record struct {
	location     string
	timeFrame    string
	format       string
	data         string
	score        string
	race         string
	povertyLevel string
}

// header maps normalized column names to positions.
type header map[string]int

func newHeader(cols []string) header {
	h := make(header, len(cols))
	for i, c := range cols {
		h[normalizeColumn(c)] = i
	}
	return h
}

func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "", "_", "").Replace(name)
}

// require fails when any of cols is absent.
func (h header) require(cols ...string) error {
	for _, c := range cols {
		if _, ok := h[c]; !ok {
			return fmt.Errorf("%s: %w", c, ErrMissingColumn)
		}
	}
	return nil
}

func (h header) field(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) record(row []string) record {
	return record{
		location:     h.field(row, colLocation),
		timeFrame:    h.field(row, colTimeFrame),
		format:       strings.ToLower(h.field(row, colDataFormat)),
		data:         h.field(row, colData),
		score:        h.field(row, colScore),
		race:         h.field(row, colRace),
		povertyLevel: h.field(row, colPovertyLevel),
	}
}

// year reads a TimeFrame. Ranges such as "2005-2009" key on their first year.
func (r record) year() (int, error) {
	first, _, _ := strings.Cut(r.timeFrame, "-")
	y, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil || y < 1000 || y > 9999 {
		return 0, fmt.Errorf("timeframe %q is not a year", r.timeFrame)
	}
	return y, nil
}

// value parses Data. Percentages are truncated to three decimals and must lie in [0, 1].
// Placeholders such as N/A, LNE and #VALUE! do not parse.
func (r record) value() (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(r.data, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("data %q is not a number", r.data)
	}
	if r.format == formatPercent {
		if v < 0 || v > 1 {
			return 0, fmt.Errorf("percent %v outside [0, 1]", v)
		}
		v = truncate3(v)
	}
	return v, nil
}

// truncate3 drops digits past the third decimal. The epsilon absorbs representation
// error so 0.3 stays 0.3.
func truncate3(v float64) float64 {
	return math.Floor(v*1000+1e-9) / 1000
}
