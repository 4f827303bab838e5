// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DistrictDependencies
	VariationDependencies
	CorrelationDependencies
	GrowthDependencies
	ResultDependencies
}

// DistrictDependencies exposes the loaded districts.
type DistrictDependencies interface {
	Baseline() string
	Names() []string
	Find(name string) (*model.District, error)
}

// VariationDependencies exposes the variation calculators.
type VariationDependencies interface {
	Baseline() string
	KindergartenParticipationRateVariation(name, against string) (float64, error)
	KindergartenParticipationRateVariationTrend(name, against string) (model.TimeSeries, error)
	KindergartenParticipationAgainstHighSchoolGraduation(name string) (float64, error)
	KindergartenParticipationAgainstHouseholdIncome(name string) (float64, error)
}

// CorrelationDependencies exposes the correlation predicates.
type CorrelationDependencies interface {
	Correlates(c analyst.Correlation, t analyst.Target) (bool, error)
	CountAllCorrelations(c analyst.Correlation) (int, error)
}

// GrowthDependencies exposes the growth ranking.
type GrowthDependencies interface {
	TopGrowth(q analyst.GrowthQuery) ([]types.GrowthEntry, error)
	GrowthRank(q analyst.GrowthQuery, name string) (types.GrowthEntry, int, error)
}

// ResultDependencies exposes the threshold result sets.
type ResultDependencies interface {
	HighPovertyAndHighSchoolGraduation() (types.ResultSet, error)
	HighIncomeDisparity() (types.ResultSet, error)
}

// Server wires HTTP routes for the analytics API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	districtHandler    *DistrictHandler
	variationHandler   *VariationHandler
	correlationHandler *CorrelationHandler
	growthHandler      *GrowthHandler
	resultHandler      *ResultHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		districtHandler:    NewDistrictHandler(deps),
		variationHandler:   NewVariationHandler(deps),
		correlationHandler: NewCorrelationHandler(deps),
		growthHandler:      NewGrowthHandler(deps),
		resultHandler:      NewResultHandler(deps),
	}
}

// Register attaches all HTTP routes to router.
func (s *Server) Register(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/healthz", instrument("healthz", s.healthHandler.HandleHealth))
	router.HandlerFunc(http.MethodGet, "/stats", instrument("stats", s.statsHandler.HandleStats))
	router.HandlerFunc(http.MethodGet, "/districts", instrument("districts", s.districtHandler.HandleList))
	router.HandlerFunc(http.MethodGet, "/districts/:name", instrument("district", s.districtHandler.HandleGet))
	router.HandlerFunc(http.MethodGet, "/districts/:name/variation", instrument("variation", s.variationHandler.HandleGet))
	router.HandlerFunc(http.MethodGet, "/districts/:name/growth", instrument("district_growth", s.growthHandler.HandleDistrict))
	router.HandlerFunc(http.MethodGet, "/correlations/:family", instrument("correlation", s.correlationHandler.HandleGet))
	router.HandlerFunc(http.MethodGet, "/correlations/:family/count", instrument("correlation_count", s.correlationHandler.HandleCount))
	router.HandlerFunc(http.MethodGet, "/growth", instrument("growth", s.growthHandler.HandleGet))
	router.HandlerFunc(http.MethodGet, "/results/high-poverty-graduation", instrument("results_high_poverty_graduation", s.resultHandler.HandleHighPovertyGraduation))
	router.HandlerFunc(http.MethodGet, "/results/income-disparity", instrument("results_income_disparity", s.resultHandler.HandleIncomeDisparity))
}

// Handler returns a router with every API route registered.
func (s *Server) Handler() *httprouter.Router {
	router := httprouter.New()
	s.Register(router)
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", nil)
	})
	return router
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a query error onto its status and code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func param(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
