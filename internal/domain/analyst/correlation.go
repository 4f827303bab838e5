package analyst

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Correlation names a correlation family.
type Correlation int

// Correlation families.
const (
	// KindergartenGraduation judges kindergarten participation against high school graduation.
	KindergartenGraduation Correlation = iota + 1
	// KindergartenIncome judges kindergarten participation against median household income.
	KindergartenIncome
)

var correlationNames = map[Correlation]string{
	KindergartenGraduation: "kindergarten_graduation",
	KindergartenIncome:     "kindergarten_income",
}

func (c Correlation) String() string {
	if s, ok := correlationNames[c]; ok {
		return s
	}
	return fmt.Sprintf("correlation(%d)", int(c))
}

// ParseCorrelation resolves a family name. Hyphens and underscores are interchangeable.
func ParseCorrelation(name string) (Correlation, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for c, s := range correlationNames {
		if s == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("correlation %q: %w", name, ErrUnknownData)
}

// Target selects the districts a correlation is judged for: a single district or a
// set that must all correlate. The zero value selects nothing.
type Target struct {
	single string
	across []string
	multi  bool
}

// For targets one district.
func For(name string) Target {
	return Target{single: name}
}

// Across targets every named district. An empty set never correlates.
func Across(names ...string) Target {
	return Target{across: append(make([]string, 0, len(names)), names...), multi: true}
}

// NewTarget validates a loosely specified selection. Exactly one of forName (non-empty)
// and across (non-nil) must be supplied.
func NewTarget(forName string, across []string) (Target, error) {
	hasFor := strings.TrimSpace(forName) != ""
	hasAcross := across != nil
	switch {
	case hasFor && hasAcross:
		return Target{}, fmt.Errorf("both for and across given: %w", ErrInsufficientInformation)
	case hasFor:
		return For(forName), nil
	case hasAcross:
		return Across(across...), nil
	default:
		return Target{}, fmt.Errorf("neither for nor across given: %w", ErrInsufficientInformation)
	}
}

// IsAcross reports whether the target is a district set.
func (t Target) IsAcross() bool { return t.multi }

// Names returns the targeted district names.
func (t Target) Names() []string {
	if t.multi {
		return append([]string(nil), t.across...)
	}
	if t.single == "" {
		return nil
	}
	return []string{t.single}
}

func (t Target) validate() error {
	if !t.multi && strings.TrimSpace(t.single) == "" {
		return fmt.Errorf("empty target: %w", ErrInsufficientInformation)
	}
	return nil
}

// Correlates judges family c for the target.
func (a *Analyst) Correlates(c Correlation, t Target) (ok bool, err error) {
	defer func(start time.Time) {
		a.observe("correlates_"+c.String(), start, err)
	}(time.Now())

	return a.correlates(c, t)
}

// KindergartenParticipationCorrelatesWithHighSchoolGraduation reports whether the
// participation/graduation ratio of the target lies within the graduation band.
func (a *Analyst) KindergartenParticipationCorrelatesWithHighSchoolGraduation(t Target) (bool, error) {
	return a.Correlates(KindergartenGraduation, t)
}

// KindergartenParticipationCorrelatesWithHouseholdIncome reports whether the
// participation/income ratio of the target lies within the income band.
func (a *Analyst) KindergartenParticipationCorrelatesWithHouseholdIncome(t Target) (bool, error) {
	return a.Correlates(KindergartenIncome, t)
}

// CountAllCorrelations counts the known districts for which family c holds. Districts
// without the data to judge are counted as not correlating.
func (a *Analyst) CountAllCorrelations(c Correlation) (n int, err error) {
	defer func(start time.Time) {
		a.observe("count_all_correlations_"+c.String(), start, err)
	}(time.Now())

	for _, name := range a.districts.Names() {
		ok, cerr := a.correlatesFor(c, name)
		if errors.Is(cerr, ErrEmptyData) {
			continue
		}
		if cerr != nil {
			return 0, cerr
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func (a *Analyst) correlates(c Correlation, t Target) (bool, error) {
	if err := t.validate(); err != nil {
		return false, err
	}
	if !t.multi {
		return a.correlatesFor(c, t.single)
	}
	if len(t.across) == 0 {
		return false, nil
	}
	for _, name := range t.across {
		ok, err := a.correlatesFor(c, name)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (a *Analyst) correlatesFor(c Correlation, name string) (bool, error) {
	d, err := a.district(name)
	if err != nil {
		return false, err
	}
	// The baseline compared with itself is always 1.0 and is defined not to correlate.
	if a.districts.IsBaseline(d.Name()) {
		return false, nil
	}

	var (
		ratio float64
		band  Band
	)
	switch c {
	case KindergartenGraduation:
		ratio, err = kindergartenAgainstGraduation(d)
		band = a.thresholds.GraduationBand
	case KindergartenIncome:
		ratio, err = a.kindergartenAgainstIncome(d.Name())
		band = a.thresholds.IncomeBand
	default:
		return false, fmt.Errorf("%s: %w", c, ErrUnknownData)
	}
	if err != nil {
		return false, err
	}
	return band.Contains(ratio), nil
}
