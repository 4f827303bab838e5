package analyst

import "github.com/okian/headcount/pkg/logger"

// Band is an inclusive acceptance interval for a correlation ratio.
type Band struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether ratio lies within the band.
func (b Band) Contains(ratio float64) bool {
	return ratio >= b.Lower && ratio <= b.Upper
}

// Thresholds holds the calibration constants of the correlation predicates and result
// set builders. Ratios are variations against the statewide baseline, so 1.0 means
// "same as the state".
type Thresholds struct {
	// GraduationBand accepts kindergarten participation / graduation ratios.
	GraduationBand Band
	// IncomeBand accepts participation variation / income variation ratios.
	IncomeBand Band

	// Poverty, Lunch and Graduation are the minimum (exclusive) variations of a district's
	// children-in-poverty, free/reduced lunch and graduation averages for
	// HighPovertyAndHighSchoolGraduation.
	Poverty    float64
	Lunch      float64
	Graduation float64

	// IncomeDisparity and IncomePoverty are the minimum (exclusive) variations of median
	// household income and children-in-poverty for HighIncomeDisparity.
	IncomeDisparity float64
	IncomePoverty   float64
}

// DefaultThresholds returns the reference calibration: correlation bands of [0.6, 1.5]
// and "above the statewide average" (variation > 1.0) for every result set criterion.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GraduationBand:  Band{Lower: 0.6, Upper: 1.5},
		IncomeBand:      Band{Lower: 0.6, Upper: 1.5},
		Poverty:         1.0,
		Lunch:           1.0,
		Graduation:      1.0,
		IncomeDisparity: 1.0,
		IncomePoverty:   1.0,
	}
}

// Option applies a configuration option to the Analyst.
type Option func(*Analyst)

// WithThresholds overrides the calibration constants.
func WithThresholds(t Thresholds) Option {
	return func(a *Analyst) {
		a.thresholds = t
	}
}

// WithLogger sets the logger used for query diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyst) {
		if l != nil {
			a.logger = l
		}
	}
}
