// Package config defines the headcount configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and HEADCOUNT_* env vars.
// - Validation errors wrap ErrInvalidConfig; provider errors wrap ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// Source categories understood by the loader.
const (
	SourceKindergarten            = "kindergarten"
	SourceHighSchoolGraduation    = "high_school_graduation"
	SourceThirdGrade              = "third_grade"
	SourceEighthGrade             = "eighth_grade"
	SourceMath                    = "math"
	SourceReading                 = "reading"
	SourceWriting                 = "writing"
	SourceMedianHouseholdIncome   = "median_household_income"
	SourceChildrenInPoverty       = "children_in_poverty"
	SourceFreeOrReducedPriceLunch = "free_or_reduced_price_lunch"
	SourceTitleI                  = "title_i"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir holds the source CSV files; Sources entries are relative to it.
	DataDir string `koanf:"data_dir"`
	// OutputDir receives the rendered report.
	OutputDir string `koanf:"output_dir"`
	// RenderWorkers bounds concurrent district page rendering.
	RenderWorkers int `koanf:"render_workers"`

	// BaselineName is the statewide pseudo-district; BaselineAliases resolve to it.
	BaselineName    string   `koanf:"baseline_name"`
	BaselineAliases []string `koanf:"baseline_aliases"`

	// Sources maps a category to its file name.
	Sources map[string]string `koanf:"sources"`

	// Correlation acceptance bands.
	GraduationBandLower float64 `koanf:"graduation_band_lower"`
	GraduationBandUpper float64 `koanf:"graduation_band_upper"`
	IncomeBandLower     float64 `koanf:"income_band_lower"`
	IncomeBandUpper     float64 `koanf:"income_band_upper"`

	// Result set thresholds, as variations against the baseline.
	PovertyThreshold         float64 `koanf:"poverty_threshold"`
	LunchThreshold           float64 `koanf:"lunch_threshold"`
	GraduationThreshold      float64 `koanf:"graduation_threshold"`
	IncomeDisparityThreshold float64 `koanf:"income_disparity_threshold"`
	IncomePovertyThreshold   float64 `koanf:"income_poverty_threshold"`
}

// DefaultSources returns the file names of the Colorado data set.
func DefaultSources() map[string]string {
	return map[string]string{
		SourceKindergarten:            "Kindergartners in full-day program.csv",
		SourceHighSchoolGraduation:    "High school graduation rates.csv",
		SourceThirdGrade:              "3rd grade students scoring proficient or above on the CSAP_TCAP.csv",
		SourceEighthGrade:             "8th grade students scoring proficient or above on the CSAP_TCAP.csv",
		SourceMath:                    "Average proficiency on the CSAP_TCAP by race_ethnicity_ Math.csv",
		SourceReading:                 "Average proficiency on the CSAP_TCAP by race_ethnicity_ Reading.csv",
		SourceWriting:                 "Average proficiency on the CSAP_TCAP by race_ethnicity_ Writing.csv",
		SourceMedianHouseholdIncome:   "Median household income.csv",
		SourceChildrenInPoverty:       "School-aged children in poverty.csv",
		SourceFreeOrReducedPriceLunch: "Students qualifying for free or reduced price lunch.csv",
		SourceTitleI:                  "Title I students.csv",
	}
}

// New creates a Config with defaults. Context is accepted first to satisfy the
// project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                 "info",
		LogFormat:                "text",
		Addr:                     ":9080",
		DataDir:                  "./data",
		OutputDir:                "./output",
		RenderWorkers:            runtime.NumCPU(),
		BaselineName:             "COLORADO",
		BaselineAliases:          []string{"STATEWIDE"},
		Sources:                  DefaultSources(),
		GraduationBandLower:      0.6,
		GraduationBandUpper:      1.5,
		IncomeBandLower:          0.6,
		IncomeBandUpper:          1.5,
		PovertyThreshold:         1.0,
		LunchThreshold:           1.0,
		GraduationThreshold:      1.0,
		IncomeDisparityThreshold: 1.0,
		IncomePovertyThreshold:   1.0,
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("data_dir must not be empty: %w", ErrInvalidConfig)
	case c.RenderWorkers < 1:
		return fmt.Errorf("render_workers must be positive, got %d: %w", c.RenderWorkers, ErrInvalidConfig)
	case strings.TrimSpace(c.BaselineName) == "":
		return fmt.Errorf("baseline_name must not be empty: %w", ErrInvalidConfig)
	case len(c.Sources) == 0:
		return fmt.Errorf("sources must not be empty: %w", ErrInvalidConfig)
	}
	if err := validateBand("graduation_band", c.GraduationBandLower, c.GraduationBandUpper); err != nil {
		return err
	}
	if err := validateBand("income_band", c.IncomeBandLower, c.IncomeBandUpper); err != nil {
		return err
	}
	for key, v := range map[string]float64{
		"poverty_threshold":          c.PovertyThreshold,
		"lunch_threshold":            c.LunchThreshold,
		"graduation_threshold":       c.GraduationThreshold,
		"income_disparity_threshold": c.IncomeDisparityThreshold,
		"income_poverty_threshold":   c.IncomePovertyThreshold,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %v: %w", key, v, ErrInvalidConfig)
		}
	}
	return nil
}

func validateBand(name string, lower, upper float64) error {
	if lower < 0 || upper < lower {
		return fmt.Errorf("%s [%v, %v] is not a valid interval: %w", name, lower, upper, ErrInvalidConfig)
	}
	return nil
}
