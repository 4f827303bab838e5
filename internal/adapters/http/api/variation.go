package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
)

// VariationHandler serves the kindergarten participation variations of a district.
type VariationHandler struct {
	deps VariationDependencies
}

// NewVariationHandler creates a new variation handler.
func NewVariationHandler(deps VariationDependencies) *VariationHandler {
	return &VariationHandler{deps: deps}
}

type variationResponse struct {
	District  string           `json:"district"`
	Against   string           `json:"against"`
	Variation float64          `json:"kindergarten_participation_rate_variation"`
	Trend     model.TimeSeries `json:"kindergarten_participation_rate_variation_trend"`
	// Ratios whose inputs are missing for the district are omitted.
	AgainstGraduation *float64 `json:"kindergarten_participation_against_high_school_graduation,omitempty"`
	AgainstIncome     *float64 `json:"kindergarten_participation_against_household_income,omitempty"`
}

// HandleGet handles GET /districts/:name/variation?against=NAME requests. against
// defaults to the statewide baseline.
func (h *VariationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := param(r, "name")
	against := strings.TrimSpace(r.URL.Query().Get("against"))
	if against == "" {
		against = h.deps.Baseline()
	}

	v, err := h.deps.KindergartenParticipationRateVariation(name, against)
	if err != nil {
		writeFailure(w, err)
		return
	}
	trend, err := h.deps.KindergartenParticipationRateVariationTrend(name, against)
	if err != nil {
		writeFailure(w, err)
		return
	}
	resp := variationResponse{
		District:  strings.ToUpper(strings.TrimSpace(name)),
		Against:   strings.ToUpper(against),
		Variation: v,
		Trend:     trend,
	}

	resp.AgainstGraduation, err = optional(h.deps.KindergartenParticipationAgainstHighSchoolGraduation(name))
	if err != nil {
		writeFailure(w, err)
		return
	}
	resp.AgainstIncome, err = optional(h.deps.KindergartenParticipationAgainstHouseholdIncome(name))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// optional drops ErrEmptyData so a missing ratio is omitted rather than failing the request.
func optional(v float64, err error) (*float64, error) {
	if errors.Is(err, analyst.ErrEmptyData) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
