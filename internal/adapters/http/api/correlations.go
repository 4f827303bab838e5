package api

import (
	"net/http"
	"strings"

	"github.com/okian/headcount/internal/domain/analyst"
)

// CorrelationHandler serves the correlation predicates.
type CorrelationHandler struct {
	deps CorrelationDependencies
}

// NewCorrelationHandler creates a new correlation handler.
func NewCorrelationHandler(deps CorrelationDependencies) *CorrelationHandler {
	return &CorrelationHandler{deps: deps}
}

type correlationResponse struct {
	Family     string   `json:"family"`
	Districts  []string `json:"districts"`
	Across     bool     `json:"across"`
	Correlates bool     `json:"correlates"`
}

type correlationCountResponse struct {
	Family string `json:"family"`
	Count  int    `json:"count"`
}

func family(r *http.Request) (analyst.Correlation, error) {
	return analyst.ParseCorrelation(param(r, "family"))
}

// target reads ?for=NAME or ?across=A,B. A present but empty across parameter selects
// the empty set.
func target(r *http.Request) (analyst.Target, error) {
	q := r.URL.Query()
	var across []string
	if q.Has("across") {
		across = []string{}
		for _, name := range strings.Split(q.Get("across"), ",") {
			if name = strings.TrimSpace(name); name != "" {
				across = append(across, name)
			}
		}
	}
	return analyst.NewTarget(strings.TrimSpace(q.Get("for")), across)
}

// HandleGet handles GET /correlations/:family requests.
func (h *CorrelationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := family(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	t, err := target(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	ok, err := h.deps.Correlates(c, t)
	if err != nil {
		writeFailure(w, err)
		return
	}
	names := t.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, correlationResponse{
		Family:     c.String(),
		Districts:  names,
		Across:     t.IsAcross(),
		Correlates: ok,
	})
}

// HandleCount handles GET /correlations/:family/count requests.
func (h *CorrelationHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	c, err := family(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	n, err := h.deps.CountAllCorrelations(c)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, correlationCountResponse{Family: c.String(), Count: n})
}
