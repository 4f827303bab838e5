package api

import (
	"net/http"

	"github.com/okian/headcount/internal/domain/types"
)

// ResultHandler serves the threshold result sets.
type ResultHandler struct {
	deps ResultDependencies
}

// NewResultHandler creates a new result set handler.
func NewResultHandler(deps ResultDependencies) *ResultHandler {
	return &ResultHandler{deps: deps}
}

func (h *ResultHandler) serve(w http.ResponseWriter, build func() (types.ResultSet, error)) {
	rs, err := build()
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

// HandleHighPovertyGraduation handles GET /results/high-poverty-graduation requests.
func (h *ResultHandler) HandleHighPovertyGraduation(w http.ResponseWriter, _ *http.Request) {
	h.serve(w, h.deps.HighPovertyAndHighSchoolGraduation)
}

// HandleIncomeDisparity handles GET /results/income-disparity requests.
func (h *ResultHandler) HandleIncomeDisparity(w http.ResponseWriter, _ *http.Request) {
	h.serve(w, h.deps.HighIncomeDisparity)
}
