package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/internal/domain/types"
)

// GrowthHandler serves the year-over-year growth ranking.
type GrowthHandler struct {
	deps GrowthDependencies
}

// NewGrowthHandler creates a new growth handler.
func NewGrowthHandler(deps GrowthDependencies) *GrowthHandler {
	return &GrowthHandler{deps: deps}
}

type growthResponse struct {
	Grade     model.Grade               `json:"grade"`
	Subject   model.Subject             `json:"subject,omitempty"`
	Weighting map[model.Subject]float64 `json:"weighting,omitempty"`
	Entries   []types.GrowthEntry       `json:"entries"`
}

func intParam(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, raw, ErrBadRequest)
	}
	return n, nil
}

// growthQuery reads ?grade=3&subject=math&top=3&weighting=math:0.5,reading:0.5.
func growthQuery(r *http.Request) (analyst.GrowthQuery, error) {
	grade, err := intParam(r, "grade")
	if err != nil {
		return analyst.GrowthQuery{}, err
	}
	top, err := intParam(r, "top")
	if err != nil {
		return analyst.GrowthQuery{}, err
	}
	opts := []analyst.GrowthOption{analyst.WithTop(top)}

	if raw := strings.TrimSpace(r.URL.Query().Get("subject")); raw != "" {
		subject, err := model.ParseSubject(raw)
		if err != nil {
			return analyst.GrowthQuery{}, err
		}
		opts = append(opts, analyst.WithSubject(subject))
	}
	weighting, err := analyst.ParseWeighting(r.URL.Query().Get("weighting"))
	if err != nil {
		return analyst.GrowthQuery{}, err
	}
	if weighting != nil {
		opts = append(opts, analyst.WithWeighting(weighting))
	}
	return analyst.NewGrowthQuery(model.Grade(grade), opts...)
}

// HandleGet handles GET /growth requests.
func (h *GrowthHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q, err := growthQuery(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	entries, err := h.deps.TopGrowth(q)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if entries == nil {
		entries = []types.GrowthEntry{}
	}
	writeJSON(w, http.StatusOK, growthResponse{
		Grade:     q.Grade,
		Subject:   q.Subject,
		Weighting: q.Weighting,
		Entries:   entries,
	})
}

type districtGrowthResponse struct {
	types.GrowthEntry
	Grade   model.Grade   `json:"grade"`
	Subject model.Subject `json:"subject,omitempty"`
	Ranked  int           `json:"ranked"`
}

// HandleDistrict handles GET /districts/:name/growth with the /growth selectors. It
// reports where one district sits in the full ranking; top is ignored.
func (h *GrowthHandler) HandleDistrict(w http.ResponseWriter, r *http.Request) {
	q, err := growthQuery(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	entry, ranked, err := h.deps.GrowthRank(q, param(r, "name"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, districtGrowthResponse{
		GrowthEntry: entry,
		Grade:       q.Grade,
		Subject:     q.Subject,
		Ranked:      ranked,
	})
}
