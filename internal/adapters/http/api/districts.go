package api

import (
	"net/http"

	"github.com/okian/headcount/internal/domain/model"
)

// DistrictHandler serves the loaded district records.
type DistrictHandler struct {
	deps DistrictDependencies
}

// NewDistrictHandler creates a new district handler.
func NewDistrictHandler(deps DistrictDependencies) *DistrictHandler {
	return &DistrictHandler{deps: deps}
}

type districtListResponse struct {
	Baseline  string   `json:"baseline"`
	Count     int      `json:"count"`
	Districts []string `json:"districts"`
}

type enrollmentView struct {
	KindergartenParticipation model.TimeSeries `json:"kindergarten_participation"`
	GraduationRate            model.TimeSeries `json:"high_school_graduation"`
}

type testingView struct {
	ByGrade map[string]map[int]map[model.Subject]float64     `json:"by_grade"`
	ByRace  map[model.Race]map[int]map[model.Subject]float64 `json:"by_race"`
}

type economicView struct {
	MedianHouseholdIncome        model.TimeSeries `json:"median_household_income"`
	ChildrenInPoverty            model.TimeSeries `json:"children_in_poverty"`
	FreeOrReducedLunchPercentage model.TimeSeries `json:"free_or_reduced_price_lunch_percentage"`
	FreeOrReducedLunchTotal      model.TimeSeries `json:"free_or_reduced_price_lunch_total"`
	TitleI                       model.TimeSeries `json:"title_i"`
}

type districtResponse struct {
	Name            string         `json:"name"`
	Enrollment      enrollmentView `json:"enrollment"`
	StatewideTest   testingView    `json:"statewide_test"`
	EconomicProfile economicView   `json:"economic_profile"`
}

func gradeKey(g model.Grade) string {
	if g == model.ThirdGrade {
		return "third_grade"
	}
	return "eighth_grade"
}

func newDistrictResponse(d *model.District) districtResponse {
	e := d.Enrollment()
	t := d.StatewideTest()
	p := d.EconomicProfile()

	tv := testingView{
		ByGrade: make(map[string]map[int]map[model.Subject]float64, len(model.Grades)),
		ByRace:  make(map[model.Race]map[int]map[model.Subject]float64),
	}
	for _, g := range model.Grades {
		if byYear, err := t.ProficientByGrade(g); err == nil && len(byYear) > 0 {
			tv.ByGrade[gradeKey(g)] = byYear
		}
	}
	for _, r := range model.Races {
		if byYear, err := t.ProficientByRaceOrEthnicity(r); err == nil && len(byYear) > 0 {
			tv.ByRace[r] = byYear
		}
	}

	return districtResponse{
		Name: d.Name(),
		Enrollment: enrollmentView{
			KindergartenParticipation: e.KindergartenParticipationByYear(),
			GraduationRate:            e.GraduationRateByYear(),
		},
		StatewideTest: tv,
		EconomicProfile: economicView{
			MedianHouseholdIncome:        p.MedianHouseholdIncome(),
			ChildrenInPoverty:            p.ChildrenInPoverty(),
			FreeOrReducedLunchPercentage: p.FreeOrReducedLunchPercentage(),
			FreeOrReducedLunchTotal:      p.FreeOrReducedLunchTotal(),
			TitleI:                       p.TitleI(),
		},
	}
}

// HandleList handles GET /districts requests.
func (h *DistrictHandler) HandleList(w http.ResponseWriter, _ *http.Request) {
	names := h.deps.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, districtListResponse{
		Baseline:  h.deps.Baseline(),
		Count:     len(names),
		Districts: names,
	})
}

// HandleGet handles GET /districts/:name requests.
func (h *DistrictHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.deps.Find(param(r, "name"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDistrictResponse(d))
}
