package smoke

import (
	"time"

	"github.com/okian/headcount/internal/domain/types"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL string        // Base URL of the service
	Workers int           // Number of concurrent district fetchers
	Grade   int           // Grade of the growth ranking checked
	Top     int           // Number of growth entries requested
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every district fetch
}

// districtList mirrors GET /districts.
type districtList struct {
	Baseline  string   `json:"baseline"`
	Count     int      `json:"count"`
	Districts []string `json:"districts"`
}

// districtView is the part of GET /districts/:name the run checks.
type districtView struct {
	Name string `json:"name"`
}

// growthRanking mirrors GET /growth.
type growthRanking struct {
	Grade   int                 `json:"grade"`
	Entries []types.GrowthEntry `json:"entries"`
}

// correlationCount mirrors GET /correlations/:family/count.
type correlationCount struct {
	Family string `json:"family"`
	Count  int    `json:"count"`
}

// Stats holds run statistics.
type Stats struct {
	Baseline          string         `json:"baseline"`
	DistrictsListed   int            `json:"districts_listed"`
	DistrictsFetched  int            `json:"districts_fetched"`
	DistrictsFailed   int            `json:"districts_failed"`
	GrowthEntries     int            `json:"growth_entries"`
	TopGrowth         string         `json:"top_growth,omitempty"`
	CorrelationCounts map[string]int `json:"correlation_counts"`
	StartTime         time.Time      `json:"start_time"`
	EndTime           time.Time      `json:"end_time"`
	Duration          time.Duration  `json:"duration_ns"`
}
