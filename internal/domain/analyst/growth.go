package analyst

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/internal/domain/ranking"
	"github.com/okian/headcount/internal/domain/types"
)

// GrowthQuery selects a year-over-year growth ranking.
type GrowthQuery struct {
	// Grade is mandatory; zero means "not supplied".
	Grade model.Grade
	// Subject limits growth to one subject. Empty combines all subjects.
	Subject model.Subject
	// Top is the number of entries to return. Zero means one.
	Top int
	// Weighting combines per-subject growth as a weighted sum. Nil means a simple average.
	Weighting map[model.Subject]float64
}

// GrowthOption configures a GrowthQuery.
type GrowthOption func(*GrowthQuery)

// WithSubject limits the query to one subject.
func WithSubject(s model.Subject) GrowthOption {
	return func(q *GrowthQuery) { q.Subject = s }
}

// WithTop sets the number of entries returned.
func WithTop(n int) GrowthOption {
	return func(q *GrowthQuery) { q.Top = n }
}

// WithWeighting combines subjects with the given weights.
func WithWeighting(w map[model.Subject]float64) GrowthOption {
	return func(q *GrowthQuery) {
		q.Weighting = make(map[model.Subject]float64, len(w))
		for s, v := range w {
			q.Weighting[s] = v
		}
	}
}

// NewGrowthQuery builds and validates a query.
func NewGrowthQuery(grade model.Grade, opts ...GrowthOption) (GrowthQuery, error) {
	q := GrowthQuery{Grade: grade}
	for _, opt := range opts {
		opt(&q)
	}
	if err := q.Validate(); err != nil {
		return GrowthQuery{}, err
	}
	return q, nil
}

// Validate checks the selectors. A missing grade is ErrInsufficientInformation; any
// out-of-domain value is ErrUnknownData.
func (q GrowthQuery) Validate() error {
	if q.Grade == 0 {
		return fmt.Errorf("grade: %w", ErrInsufficientInformation)
	}
	if !q.Grade.Valid() {
		return fmt.Errorf("grade %d: %w", q.Grade, ErrUnknownData)
	}
	if q.Subject != "" && !q.Subject.Valid() {
		return fmt.Errorf("subject %q: %w", q.Subject, ErrUnknownData)
	}
	if q.Top < 0 {
		return fmt.Errorf("top %d: %w", q.Top, ErrUnknownData)
	}
	if q.Weighting == nil {
		return nil
	}
	if q.Subject != "" {
		return fmt.Errorf("weighting with a single subject: %w", ErrUnknownData)
	}
	for s, w := range q.Weighting {
		if !s.Valid() {
			return fmt.Errorf("weighting subject %q: %w", s, ErrUnknownData)
		}
		if w < 0 {
			return fmt.Errorf("weighting %s=%v: %w", s, w, ErrUnknownData)
		}
	}
	if sum := weightSum(q.Weighting); sum != 1.0 {
		return fmt.Errorf("weights sum to %v: %w", sum, ErrUnknownData)
	}
	return nil
}

// weightSum adds the weights in subject order so the result does not depend on map
// iteration.
func weightSum(w map[model.Subject]float64) float64 {
	var sum float64
	for _, s := range model.Subjects {
		sum += w[s]
	}
	return sum
}

func (q GrowthQuery) limit() int {
	if q.Top == 0 {
		return 1
	}
	return q.Top
}

// subjects lists the subjects a district needs growth data for. Under a weighting a
// zero-weight subject contributes nothing to the sum, so it is not required.
func (q GrowthQuery) subjects() []model.Subject {
	if q.Subject != "" {
		return []model.Subject{q.Subject}
	}
	if q.Weighting == nil {
		return model.Subjects
	}
	out := make([]model.Subject, 0, len(model.Subjects))
	for _, s := range model.Subjects {
		if q.Weighting[s] > 0 {
			out = append(out, s)
		}
	}
	return out
}

// ParseWeighting reads "math:0.5,reading:0.5,writing:0" into a weighting map.
func ParseWeighting(s string) (map[model.Subject]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	out := make(map[model.Subject]float64)
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("weighting %q: %w", part, ErrUnknownData)
		}
		subject, err := model.ParseSubject(key)
		if err != nil {
			return nil, err
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("weighting %q: %w", part, ErrUnknownData)
		}
		out[subject] = w
	}
	return out, nil
}

// subjectGrowth is latest minus earliest proficiency, rounded. A series needs two
// points to have growth.
func subjectGrowth(d *model.District, grade model.Grade, subject model.Subject) (float64, bool) {
	series, err := d.StatewideTest().Proficiency(grade, subject)
	if err != nil || series.Len() < 2 {
		return 0, false
	}
	_, first, _ := series.Earliest()
	_, last, _ := series.Latest()
	return round3(last - first), true
}

// combine reduces per-subject growths to one value; growths is aligned with subjects.
func combine(subjects []model.Subject, growths []float64, weighting map[model.Subject]float64) float64 {
	if len(growths) == 1 {
		return growths[0]
	}
	var total float64
	if weighting != nil {
		for i, s := range subjects {
			total += growths[i] * weighting[s]
		}
		return round3(total)
	}
	for _, g := range growths {
		total += g
	}
	return round3(total / float64(len(growths)))
}

// districtsAndGrowths computes one pair per district with data for every subject,
// in repository order.
func (a *Analyst) districtsAndGrowths(grade model.Grade, subjects []model.Subject, weighting map[model.Subject]float64) []types.GrowthEntry {
	names := a.districts.Names()
	out := make([]types.GrowthEntry, 0, len(names))
	growths := make([]float64, len(subjects))
	for _, name := range names {
		d, ok := a.districts.FindByName(name)
		if !ok {
			continue
		}
		complete := true
		for i, s := range subjects {
			g, ok := subjectGrowth(d, grade, s)
			if !ok {
				complete = false
				break
			}
			growths[i] = g
		}
		if !complete {
			continue
		}
		out = append(out, types.GrowthEntry{Name: d.Name(), Growth: combine(subjects, growths, weighting)})
	}
	return out
}

// DistrictsAndGrowths returns the unranked (name, growth) pairs for grade, combining
// subjects by simple average. Districts missing data for any subject are left out.
func (a *Analyst) DistrictsAndGrowths(grade model.Grade, subjects []model.Subject) (pairs []types.GrowthEntry, err error) {
	defer func(start time.Time) {
		a.observe("districts_and_growths", start, err)
	}(time.Now())

	q := GrowthQuery{Grade: grade}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		subjects = model.Subjects
	}
	for _, s := range subjects {
		if !s.Valid() {
			return nil, fmt.Errorf("subject %q: %w", s, ErrUnknownData)
		}
	}
	return a.districtsAndGrowths(grade, subjects, nil), nil
}

// FindSingleTopDistrictGrowth returns the pair with the highest growth; ties go to the
// lexicographically smaller name.
func FindSingleTopDistrictGrowth(pairs []types.GrowthEntry) (types.GrowthEntry, error) {
	if len(pairs) == 0 {
		return types.GrowthEntry{}, fmt.Errorf("growth pairs: %w", ErrEmptyData)
	}
	best := pairs[0]
	for _, p := range pairs[1:] {
		if p.Growth > best.Growth || (p.Growth == best.Growth && p.Name < best.Name) {
			best = p
		}
	}
	best.Rank = 1
	return best, nil
}

// TopGrowth ranks districts by growth and returns up to q.Top entries. An empty ranking
// is not an error.
func (a *Analyst) TopGrowth(q GrowthQuery) (entries []types.GrowthEntry, err error) {
	defer func(start time.Time) {
		a.observe("top_growth", start, err)
	}(time.Now())

	return a.topGrowth(q)
}

func (a *Analyst) topGrowth(q GrowthQuery) ([]types.GrowthEntry, error) {
	board, err := a.growthBoard(q)
	if err != nil {
		return nil, err
	}
	return board.TopN(q.limit())
}

func (a *Analyst) growthBoard(q GrowthQuery) (*ranking.Board, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	board := ranking.NewBoard()
	for _, p := range a.districtsAndGrowths(q.Grade, q.subjects(), q.Weighting) {
		if err := board.Add(p.Name, p.Growth); err != nil {
			return nil, err
		}
	}
	return board, nil
}

// GrowthRank places one district in the full ranking for q, ignoring q.Top. It also
// returns how many districts were ranked. A known district without the data the query
// needs is ErrEmptyData.
func (a *Analyst) GrowthRank(q GrowthQuery, name string) (entry types.GrowthEntry, ranked int, err error) {
	defer func(start time.Time) {
		a.observe("growth_rank", start, err)
	}(time.Now())

	board, err := a.growthBoard(q)
	if err != nil {
		return types.GrowthEntry{}, 0, err
	}
	d, err := a.district(name)
	if err != nil {
		return types.GrowthEntry{}, 0, err
	}
	entry, err = board.Rank(d.Name())
	if errors.Is(err, ranking.ErrNotFound) {
		return types.GrowthEntry{}, board.Count(), fmt.Errorf("%s grade %d growth: %w", d.Name(), q.Grade, ErrEmptyData)
	}
	if err != nil {
		return types.GrowthEntry{}, 0, err
	}
	return entry, board.Count(), nil
}

// TopDistrictGrowth returns the single leader of the ranking.
func (a *Analyst) TopDistrictGrowth(q GrowthQuery) (top types.GrowthEntry, err error) {
	defer func(start time.Time) {
		a.observe("top_district_growth", start, err)
	}(time.Now())

	q.Top = 1
	entries, err := a.topGrowth(q)
	if err != nil {
		return types.GrowthEntry{}, err
	}
	if len(entries) == 0 {
		return types.GrowthEntry{}, fmt.Errorf("grade %d growth: %w", q.Grade, ErrEmptyData)
	}
	return entries[0], nil
}
