// Package smoke runs an end-to-end check against a running headcount API: it lists the
// districts, fetches each one concurrently, and verifies the growth ranking and
// correlation counts are consistent with the listing.
package smoke

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/headcount/pkg/logger"
)

// withDefaults fills zero fields.
func withDefaults(config Config) Config {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Workers < 1 {
		config.Workers = DefaultWorkers
	}
	if config.Grade == 0 {
		config.Grade = DefaultGrade
	}
	if config.Top == 0 {
		config.Top = DefaultTop
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return config
}

// Run executes the complete smoke check.
func Run(ctx context.Context, config Config) (Stats, error) {
	config = withDefaults(config)
	stats := Stats{
		StartTime:         time.Now(),
		CorrelationCounts: make(map[string]int, len(correlationFamilies)),
	}
	log := logger.Get()

	log.Info(ctx, "starting headcount smoke check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("workers", config.Workers),
		logger.Int("grade", config.Grade),
		logger.Int("top", config.Top),
		logger.Duration("timeout", config.Timeout))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: List districts
	var list districtList
	if err := client.GetJSON(ctx, "/districts", &list); err != nil {
		return stats, fmt.Errorf("district listing failed: %w", err)
	}
	if err := verifyDistrictList(list); err != nil {
		return stats, err
	}
	stats.Baseline = list.Baseline
	stats.DistrictsListed = len(list.Districts)

	// Step 3: Fetch every district concurrently
	stats.DistrictsFetched, stats.DistrictsFailed = fetchDistricts(ctx, &config, client, list.Districts)
	if stats.DistrictsFailed > 0 {
		return stats, fmt.Errorf("%d of %d district fetches failed: %w",
			stats.DistrictsFailed, stats.DistrictsListed, ErrVerification)
	}

	// Step 4: Verify the growth ranking
	var ranking growthRanking
	q := url.Values{}
	q.Set("grade", strconv.Itoa(config.Grade))
	q.Set("top", strconv.Itoa(config.Top))
	if err := client.GetJSON(ctx, "/growth?"+q.Encode(), &ranking); err != nil {
		return stats, fmt.Errorf("growth ranking failed: %w", err)
	}
	if err := verifyGrowthRanking(ranking.Entries, config.Top, list.Districts); err != nil {
		return stats, err
	}
	stats.GrowthEntries = len(ranking.Entries)
	if len(ranking.Entries) > 0 {
		stats.TopGrowth = ranking.Entries[0].Name
	}

	// Step 5: Correlation counts
	for _, family := range correlationFamilies {
		var count correlationCount
		if err := client.GetJSON(ctx, "/correlations/"+family+"/count", &count); err != nil {
			return stats, fmt.Errorf("correlation count failed: %w", err)
		}
		if err := verifyCorrelationCount(count, stats.DistrictsListed); err != nil {
			return stats, err
		}
		stats.CorrelationCounts[family] = count.Count
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "smoke check completed",
		logger.Int("districts", stats.DistrictsFetched),
		logger.Int("growthEntries", stats.GrowthEntries),
		logger.Duration("duration", stats.Duration))
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	status, _, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	// Any 200 is healthy; the body is the Prometheus exposition.
	if status != http.StatusOK {
		return fmt.Errorf("status %d: %w", status, ErrUnhealthy)
	}
	return nil
}
