// Package render builds the static HTML report: an index of districts, four pages per
// district and the headcount analysis page, plus a manifest of everything written.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/internal/domain/types"
	"github.com/okian/headcount/pkg/logger"
	"github.com/okian/headcount/pkg/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page kinds, also used as metric labels.
const (
	KindIndex      = "index"
	KindDistrict   = "district"
	KindEnrollment = "enrollment"
	KindTesting    = "testing"
	KindEconomic   = "economic"
	KindHeadcount  = "headcount"
)

// ManifestFile is written at the root of the output directory.
const ManifestFile = "manifest.yaml"

// Source is what the renderer reads: the loaded districts and the analyst queries
// shown on the pages.
type Source interface {
	Baseline() string
	Names() []string
	Find(name string) (*model.District, error)
	KindergartenParticipationRateVariation(name, against string) (float64, error)
	KindergartenParticipationRateVariationTrend(name, against string) (model.TimeSeries, error)
	Correlates(c analyst.Correlation, t analyst.Target) (bool, error)
	TopGrowth(q analyst.GrowthQuery) ([]types.GrowthEntry, error)
	HighPovertyAndHighSchoolGraduation() (types.ResultSet, error)
	HighIncomeDisparity() (types.ResultSet, error)
}

// ManifestDistrict lists the pages written for one district.
type ManifestDistrict struct {
	Name  string   `yaml:"name"`
	Slug  string   `yaml:"slug"`
	Pages []string `yaml:"pages"`
}

// Manifest records one build.
type Manifest struct {
	BuildID   string             `yaml:"build_id"`
	Generated time.Time          `yaml:"generated"`
	Baseline  string             `yaml:"baseline"`
	Pages     []string           `yaml:"pages"`
	Districts []ManifestDistrict `yaml:"districts"`
}

// PageCount returns the number of HTML pages written.
func (m Manifest) PageCount() int {
	n := len(m.Pages)
	for _, d := range m.Districts {
		n += len(d.Pages)
	}
	return n
}

// Renderer writes the report for a Source into a directory.
type Renderer struct {
	src     Source
	outDir  string
	workers int
	buildID string
	now     func() time.Time
	tmpl    *template.Template
	logger  logger.Logger
}

// New creates a renderer writing into outDir.
func New(src Source, outDir string, opts ...Option) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	r := &Renderer{
		src:     src,
		outDir:  outDir,
		workers: runtime.NumCPU(),
		buildID: uuid.NewString(),
		now:     time.Now,
		tmpl:    tmpl,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Build renders every page and writes the manifest. District pages are rendered
// concurrently; the first failure cancels the rest.
func (r *Renderer) Build(ctx context.Context) (Manifest, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Manifest{}, err
	}

	generated := r.now().UTC()
	m := Manifest{BuildID: r.buildID, Generated: generated, Baseline: r.src.Baseline()}
	base := page{BuildID: r.buildID, Generated: generated.Format(time.RFC3339)}

	names := r.src.Names()
	links := make([]districtLink, len(names))
	for i, n := range names {
		links[i] = districtLink{Name: n, Slug: Slug(n)}
	}

	if err := os.MkdirAll(filepath.Join(r.outDir, "districts"), 0o755); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w: %w", r.outDir, ErrWrite, err)
	}

	index := indexPage{page: base, Baseline: m.Baseline, Districts: links}
	index.Title = "Colorado school districts"
	if err := r.write(KindIndex, "index.html", index); err != nil {
		return Manifest{}, err
	}
	m.Pages = append(m.Pages, "index.html")

	headcount, err := r.headcountPage(base)
	if err != nil {
		return Manifest{}, err
	}
	if err := r.write(KindHeadcount, "headcount.html", headcount); err != nil {
		return Manifest{}, err
	}
	m.Pages = append(m.Pages, "headcount.html")

	m.Districts = make([]ManifestDistrict, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, link := range links {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pages, err := r.buildDistrict(base, link)
			if err != nil {
				return fmt.Errorf("%s: %w", link.Name, err)
			}
			m.Districts[i] = ManifestDistrict{Name: link.Name, Slug: link.Slug, Pages: pages}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.RecordErrorByComponent("render", "district")
		return Manifest{}, err
	}

	if err := r.writeManifest(m); err != nil {
		return Manifest{}, err
	}

	metrics.RecordRenderDuration(float64(time.Since(start).Microseconds()) / 1000)
	r.logger.Info(ctx, "report built",
		logger.String("buildID", m.BuildID),
		logger.String("dir", r.outDir),
		logger.Int("districts", len(m.Districts)),
		logger.Int("pages", m.PageCount()),
		logger.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}

// growthQueries mirrors the eight tables of the headcount page: the overall leader
// of each grade and the top three per subject per grade.
func growthQueries() ([]string, []analyst.GrowthQuery) {
	var titles []string
	var queries []analyst.GrowthQuery
	for _, g := range model.Grades {
		titles = append(titles, fmt.Sprintf("Grade %d, all subjects", g))
		queries = append(queries, analyst.GrowthQuery{Grade: g})
	}
	for _, g := range model.Grades {
		for _, s := range model.Subjects {
			titles = append(titles, fmt.Sprintf("Grade %d, top 3 in %s", g, s))
			queries = append(queries, analyst.GrowthQuery{Grade: g, Subject: s, Top: 3})
		}
	}
	return titles, queries
}

func (r *Renderer) headcountPage(base page) (headcountPage, error) {
	p := headcountPage{page: base}
	p.Title = "Headcount analysis"

	titles, queries := growthQueries()
	for i, q := range queries {
		entries, err := r.src.TopGrowth(q)
		if err != nil {
			return p, fmt.Errorf("growth %q: %w", titles[i], err)
		}
		p.Growth = append(p.Growth, growthTable{Title: titles[i], Entries: entries})
	}

	for _, rs := range []struct {
		title string
		build func() (types.ResultSet, error)
	}{
		{"High poverty with high school graduation", r.src.HighPovertyAndHighSchoolGraduation},
		{"High income disparity", r.src.HighIncomeDisparity},
	} {
		set, err := rs.build()
		if err != nil {
			p.Results = append(p.Results, resultTable{Title: rs.title, Err: err.Error()})
			continue
		}
		p.Results = append(p.Results, resultTable{
			Title:     rs.title,
			Statewide: set.StatewideAverage(),
			Matching:  set.MatchingDistricts(),
		})
	}
	return p, nil
}

func (r *Renderer) buildDistrict(base page, link districtLink) ([]string, error) {
	d, err := r.src.Find(link.Name)
	if err != nil {
		return nil, err
	}
	p, err := r.districtPage(base, link, d)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join("districts", link.Slug)
	if err := os.MkdirAll(filepath.Join(r.outDir, dir), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	var pages []string
	for _, kind := range []string{KindDistrict, KindEnrollment, KindTesting, KindEconomic} {
		file := kind + ".html"
		if kind == KindDistrict {
			file = "index.html"
		}
		rel := filepath.ToSlash(filepath.Join(dir, file))
		if err := r.write(kind, rel, p); err != nil {
			return nil, err
		}
		pages = append(pages, rel)
	}
	return pages, nil
}

func (r *Renderer) districtPage(base page, link districtLink, d *model.District) (districtPage, error) {
	baseline := r.src.Baseline()
	p := districtPage{page: base, Baseline: baseline, District: link}
	p.Title = d.Name()
	p.Root = "../../"

	e := d.Enrollment()
	p.Enrollment.Kindergarten = newSeriesTable("Participation", e.KindergartenParticipationByYear())
	p.Enrollment.Graduation = newSeriesTable("Graduation rate", e.GraduationRateByYear())

	var err error
	if p.Enrollment.Variation, err = describe(r.src.KindergartenParticipationRateVariation(d.Name(), baseline)); err != nil {
		return p, err
	}
	if p.Enrollment.Correlates, err = describe(r.src.Correlates(analyst.KindergartenGraduation, analyst.For(d.Name()))); err != nil {
		return p, err
	}
	trend, err := r.src.KindergartenParticipationRateVariationTrend(d.Name(), baseline)
	if _, derr := describe(trend, err); derr != nil {
		return p, derr
	}
	p.Enrollment.Trend = newSeriesTable("Variation", trend)

	t := d.StatewideTest()
	years := model.TimeSeries{}
	for _, s := range model.Subjects {
		p.Testing.Subjects = append(p.Testing.Subjects, string(s))
	}
	for _, g := range model.Grades {
		byYear, err := t.ProficientByGrade(g)
		if err != nil {
			return p, err
		}
		for y := range byYear {
			years[y] = 0
		}
		p.Testing.Grades = append(p.Testing.Grades, newProficiencyTable(gradeLabel(g), byYear))
	}
	for _, race := range model.Races {
		byYear, err := t.ProficientByRaceOrEthnicity(race)
		if err != nil {
			return p, err
		}
		if len(byYear) > 0 {
			p.Testing.Races = append(p.Testing.Races, newProficiencyTable(raceLabel(race), byYear))
		}
	}
	p.Testing.Years = missing
	if years.Len() > 0 {
		parts := make([]string, 0, years.Len())
		for _, y := range years.Years() {
			parts = append(parts, fmt.Sprint(y))
		}
		p.Testing.Years = strings.Join(parts, ", ")
	}

	econ := d.EconomicProfile()
	income := econ.MedianHouseholdIncome()
	p.Economic = economicView{
		Income:          newSeriesTable("Median household income", income),
		Poverty:         newSeriesTable("Children in poverty", econ.ChildrenInPoverty()),
		LunchPercentage: newSeriesTable("Percentage", econ.FreeOrReducedLunchPercentage()),
		LunchTotal:      newSeriesTable("Students", econ.FreeOrReducedLunchTotal()),
		TitleI:          newSeriesTable("Title I", econ.TitleI()),
		LatestIncome:    missing,
	}
	if _, v, ok := income.Latest(); ok {
		p.Economic.LatestIncome = formatValue(v)
	}
	return p, nil
}

// write executes the template for kind into rel under the output directory.
func (r *Renderer) write(kind, rel string, data any) error {
	name := kind + ".html"
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("%s: %w: %w", name, ErrTemplate, err)
	}
	path := filepath.Join(r.outDir, filepath.FromSlash(rel))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrWrite, err)
	}
	metrics.RecordPageRendered(kind)
	return nil
}

func (r *Renderer) writeManifest(m Manifest) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("%s: %w", ManifestFile, err)
	}
	path := filepath.Join(r.outDir, ManifestFile)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrWrite, err)
	}
	return nil
}

// ReadManifest loads the manifest of a previous build.
func ReadManifest(dir string) (Manifest, error) {
	var m Manifest
	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return m, err
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("%s: %w", ManifestFile, err)
	}
	return m, nil
}
