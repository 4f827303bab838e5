// Package service wires configuration, ingestion and the analyst into the
// dependencies required by the HTTP API, the report renderer and the CLI.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/headcount/internal/adapters/loader"
	"github.com/okian/headcount/internal/adapters/repository"
	"github.com/okian/headcount/internal/config"
	"github.com/okian/headcount/internal/domain/analyst"
	"github.com/okian/headcount/internal/domain/model"
	"github.com/okian/headcount/internal/domain/types"
	"github.com/okian/headcount/pkg/logger"
	"github.com/okian/headcount/pkg/metrics"
)

// Service owns the loaded repositories and the analyst built over them.
type Service struct {
	mu sync.RWMutex

	// Core components
	repo    *repository.DistrictRepository
	analyst *analyst.Analyst
	summary loader.Summary

	// Configuration
	dataDir         string
	sources         map[string]string
	baselineName    string
	baselineAliases []string
	thresholds      analyst.Thresholds

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataDir sets the directory the sources are read from.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithSources sets the category to file name mapping.
func WithSources(sources map[string]string) Option {
	return func(s *Service) {
		if len(sources) > 0 {
			s.sources = make(map[string]string, len(sources))
			for k, v := range sources {
				s.sources[k] = v
			}
		}
	}
}

// WithBaseline sets the statewide pseudo-district and the names that resolve to it.
func WithBaseline(name string, aliases ...string) Option {
	return func(s *Service) {
		if name != "" {
			s.baselineName = name
		}
		s.baselineAliases = append([]string(nil), aliases...)
	}
}

// WithThresholds sets the analyst calibration.
func WithThresholds(t analyst.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = t
	}
}

// WithConfig applies every setting a Config carries.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		WithDataDir(cfg.DataDir)(s)
		WithSources(cfg.Sources)(s)
		WithBaseline(cfg.BaselineName, cfg.BaselineAliases...)(s)
		WithThresholds(ThresholdsFromConfig(cfg))(s)
	}
}

// WithRepository serves an already populated repository; Start skips ingestion.
func WithRepository(repo *repository.DistrictRepository) Option {
	return func(s *Service) {
		s.repo = repo
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// ThresholdsFromConfig maps the configured bands and thresholds onto the analyst's.
func ThresholdsFromConfig(cfg *config.Config) analyst.Thresholds {
	return analyst.Thresholds{
		GraduationBand:  analyst.Band{Lower: cfg.GraduationBandLower, Upper: cfg.GraduationBandUpper},
		IncomeBand:      analyst.Band{Lower: cfg.IncomeBandLower, Upper: cfg.IncomeBandUpper},
		Poverty:         cfg.PovertyThreshold,
		Lunch:           cfg.LunchThreshold,
		Graduation:      cfg.GraduationThreshold,
		IncomeDisparity: cfg.IncomeDisparityThreshold,
		IncomePoverty:   cfg.IncomePovertyThreshold,
	}
}

// New constructs a Service with the default Colorado layout.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:         "./data",
		sources:         config.DefaultSources(),
		baselineName:    "COLORADO",
		baselineAliases: []string{"STATEWIDE"},
		thresholds:      analyst.DefaultThresholds(),
		logger:          nil, // replaced on Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the sources and builds the analyst. Calling it again is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting headcount service...")

	repo := s.repo
	if repo == nil {
		repo = repository.NewDistrictRepository(
			repository.WithBaseline(s.baselineName),
			repository.WithBaselineAliases(s.baselineAliases...),
		)
		sum, err := loader.New(repo, loader.WithLogger(s.logger.Named("loader"))).Load(ctx, s.dataDir, s.sources)
		if err != nil {
			metrics.RecordErrorByComponent("service", "load")
			return fmt.Errorf("load %s: %w", s.dataDir, err)
		}
		s.summary = sum
	} else {
		s.summary = loader.Summary{Districts: repo.Count()}
		metrics.UpdateDistrictsLoaded(s.summary.Districts)
	}

	if _, ok := repo.FindByName(repo.Baseline()); !ok {
		s.logger.Warn(ctx, "baseline district has no data", logger.String("baseline", repo.Baseline()))
	}

	s.repo = repo
	s.analyst = analyst.New(repo,
		analyst.WithThresholds(s.thresholds),
		analyst.WithLogger(s.logger.Named("analyst")),
	)
	s.started = true
	s.startedAt = time.Now()

	s.logger.Info(ctx, "headcount service started",
		logger.Int("districts", s.summary.Districts),
		logger.Int("records", s.summary.Total()),
		logger.String("baseline", repo.Baseline()),
	)

	return nil
}

// Stop releases the loaded data.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.analyst = nil
	s.started = false
	s.logger.Info(context.Background(), "headcount service stopped")
}

func (s *Service) current() (*analyst.Analyst, *repository.DistrictRepository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.analyst, s.repo, nil
}

// Analyst returns the analyst over the loaded data.
func (s *Service) Analyst() (*analyst.Analyst, error) {
	a, _, err := s.current()
	return a, err
}

// Repository returns the loaded repository.
func (s *Service) Repository() (*repository.DistrictRepository, error) {
	_, r, err := s.current()
	return r, err
}

// Summary returns what Start loaded.
func (s *Service) Summary() loader.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Baseline returns the canonical baseline name.
func (s *Service) Baseline() string {
	_, r, err := s.current()
	if err != nil {
		return s.baselineName
	}
	return r.Baseline()
}

// Names lists the known districts, or nothing before Start.
func (s *Service) Names() []string {
	_, r, err := s.current()
	if err != nil {
		return nil
	}
	return r.Names()
}

// Find returns the district handle for name.
func (s *Service) Find(name string) (*model.District, error) {
	_, r, err := s.current()
	if err != nil {
		return nil, err
	}
	return r.Find(name)
}

// KindergartenParticipationRateVariation delegates to the analyst.
func (s *Service) KindergartenParticipationRateVariation(name, against string) (float64, error) {
	a, _, err := s.current()
	if err != nil {
		return 0, err
	}
	return a.KindergartenParticipationRateVariation(name, against)
}

// KindergartenParticipationRateVariationTrend delegates to the analyst.
func (s *Service) KindergartenParticipationRateVariationTrend(name, against string) (model.TimeSeries, error) {
	a, _, err := s.current()
	if err != nil {
		return nil, err
	}
	return a.KindergartenParticipationRateVariationTrend(name, against)
}

// KindergartenParticipationAgainstHighSchoolGraduation delegates to the analyst.
func (s *Service) KindergartenParticipationAgainstHighSchoolGraduation(name string) (float64, error) {
	a, _, err := s.current()
	if err != nil {
		return 0, err
	}
	return a.KindergartenParticipationAgainstHighSchoolGraduation(name)
}

// KindergartenParticipationAgainstHouseholdIncome delegates to the analyst.
func (s *Service) KindergartenParticipationAgainstHouseholdIncome(name string) (float64, error) {
	a, _, err := s.current()
	if err != nil {
		return 0, err
	}
	return a.KindergartenParticipationAgainstHouseholdIncome(name)
}

// Correlates delegates to the analyst.
func (s *Service) Correlates(c analyst.Correlation, t analyst.Target) (bool, error) {
	a, _, err := s.current()
	if err != nil {
		return false, err
	}
	return a.Correlates(c, t)
}

// CountAllCorrelations delegates to the analyst.
func (s *Service) CountAllCorrelations(c analyst.Correlation) (int, error) {
	a, _, err := s.current()
	if err != nil {
		return 0, err
	}
	return a.CountAllCorrelations(c)
}

// TopGrowth delegates to the analyst.
func (s *Service) TopGrowth(q analyst.GrowthQuery) ([]types.GrowthEntry, error) {
	a, _, err := s.current()
	if err != nil {
		return nil, err
	}
	return a.TopGrowth(q)
}

// GrowthRank delegates to the analyst.
func (s *Service) GrowthRank(q analyst.GrowthQuery, name string) (types.GrowthEntry, int, error) {
	a, _, err := s.current()
	if err != nil {
		return types.GrowthEntry{}, 0, err
	}
	return a.GrowthRank(q, name)
}

// HighPovertyAndHighSchoolGraduation delegates to the analyst.
func (s *Service) HighPovertyAndHighSchoolGraduation() (types.ResultSet, error) {
	a, _, err := s.current()
	if err != nil {
		return types.ResultSet{}, err
	}
	return a.HighPovertyAndHighSchoolGraduation()
}

// HighIncomeDisparity delegates to the analyst.
func (s *Service) HighIncomeDisparity() (types.ResultSet, error) {
	a, _, err := s.current()
	if err != nil {
		return types.ResultSet{}, err
	}
	return a.HighIncomeDisparity()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":  s.started,
		"dataDir":  s.dataDir,
		"baseline": s.baselineName,
		"sources":  len(s.sources),
	}

	if s.started {
		stats["districts"] = s.summary.Districts
		stats["records"] = s.summary.Total()
		stats["rejected"] = s.summary.Rejected
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		metrics.UpdateDistrictsLoaded(s.summary.Districts)
		metrics.UpdateSystemMemoryUsage(mem.Alloc)
		metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	}

	return stats
}
