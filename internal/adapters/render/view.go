package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/internal/domain/types"
)

const missing = "n/a"

// page carries the fields every template header and footer reads.
type page struct {
	Title     string
	BuildID   string
	Generated string
	// Root is the relative path from the page back to the output directory.
	Root string
}

type districtLink struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type indexPage struct {
	page
	Baseline  string
	Districts []districtLink
}

type seriesRow struct {
	Year  int
	Value string
}

type seriesTable struct {
	Label string
	Rows  []seriesRow
}

type proficiencyRow struct {
	Year  int
	Cells []string
}

type proficiencyTable struct {
	Label string
	Rows  []proficiencyRow
}

type enrollmentView struct {
	Kindergarten seriesTable
	Graduation   seriesTable
	Trend        seriesTable
	Variation    string
	Correlates   string
}

type testingView struct {
	Years    string
	Subjects []string
	Grades   []proficiencyTable
	Races    []proficiencyTable
}

type economicView struct {
	Income          seriesTable
	Poverty         seriesTable
	LunchPercentage seriesTable
	LunchTotal      seriesTable
	TitleI          seriesTable
	LatestIncome    string
}

type districtPage struct {
	page
	Baseline   string
	District   districtLink
	Enrollment enrollmentView
	Testing    testingView
	Economic   economicView
}

type growthTable struct {
	Title   string
	Entries []types.GrowthEntry
}

type resultTable struct {
	Title     string
	Statewide types.ResultEntry
	Matching  []types.ResultEntry
	Err       string
}

type headcountPage struct {
	page
	Growth  []growthTable
	Results []resultTable
}

// Slug turns a district name into its directory name: lowercase, spaces and slashes
// replaced by hyphens.
func Slug(name string) string {
	return strings.NewReplacer(" ", "-", "/", "-").Replace(strings.ToLower(strings.TrimSpace(name)))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newSeriesTable(label string, ts model.TimeSeries) seriesTable {
	t := seriesTable{Label: label}
	for _, year := range ts.Years() {
		t.Rows = append(t.Rows, seriesRow{Year: year, Value: formatValue(ts[year])})
	}
	return t
}

func newProficiencyTable(label string, byYear map[int]map[model.Subject]float64) proficiencyTable {
	years := make(model.TimeSeries, len(byYear))
	for year := range byYear {
		years[year] = 0
	}
	t := proficiencyTable{Label: label}
	for _, year := range years.Years() {
		row := proficiencyRow{Year: year}
		for _, s := range model.Subjects {
			if v, ok := byYear[year][s]; ok {
				row.Cells = append(row.Cells, formatValue(v))
			} else {
				row.Cells = append(row.Cells, missing)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// describe renders a query result, showing missing data as n/a and failing on
// anything else.
func describe[T any](v T, err error) (string, error) {
	if errors.Is(err, analyst.ErrEmptyData) || errors.Is(err, analyst.ErrUnknownDistrict) {
		return missing, nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

func raceLabel(r model.Race) string {
	return strings.ReplaceAll(strings.ReplaceAll(string(r), "_", " "), "/", " / ")
}

func gradeLabel(g model.Grade) string {
	if g == model.ThirdGrade {
		return "3rd grade proficiency"
	}
	return "8th grade proficiency"
}
