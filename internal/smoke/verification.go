package smoke

import (
	"fmt"

	"github.com/okian/headcount/internal/domain/types"
)

// verifyDistrictList checks the listing is self-consistent.
func verifyDistrictList(list districtList) error {
	if list.Baseline == "" {
		return fmt.Errorf("empty baseline: %w", ErrVerification)
	}
	if list.Count != len(list.Districts) {
		return fmt.Errorf("count %d does not match %d listed districts: %w", list.Count, len(list.Districts), ErrVerification)
	}
	seen := make(map[string]struct{}, len(list.Districts))
	for _, name := range list.Districts {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("district %q listed twice: %w", name, ErrVerification)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// verifyGrowthRanking checks that the ranking is ordered by growth descending with
// ties broken by name, ranks are sequential, the length respects top and every entry
// is a listed district.
func verifyGrowthRanking(entries []types.GrowthEntry, top int, listed []string) error {
	limit := top
	if limit < 1 {
		limit = 1
	}
	if len(entries) > limit {
		return fmt.Errorf("%d entries for top %d: %w", len(entries), top, ErrVerification)
	}

	known := make(map[string]struct{}, len(listed))
	for _, name := range listed {
		known[name] = struct{}{}
	}

	for i, e := range entries {
		if e.Rank != i+1 {
			return fmt.Errorf("entry %d (%s) has rank %d: %w", i, e.Name, e.Rank, ErrVerification)
		}
		if _, ok := known[e.Name]; !ok {
			return fmt.Errorf("ranked district %q is not listed: %w", e.Name, ErrVerification)
		}
		if i == 0 {
			continue
		}
		prev := entries[i-1]
		if prev.Growth < e.Growth || (prev.Growth == e.Growth && prev.Name > e.Name) {
			return fmt.Errorf("%s (%.3f) ranked above %s (%.3f): %w",
				prev.Name, prev.Growth, e.Name, e.Growth, ErrVerification)
		}
	}
	return nil
}

// verifyCorrelationCount checks a count is within the number of districts.
func verifyCorrelationCount(c correlationCount, districts int) error {
	if c.Count < 0 || c.Count > districts {
		return fmt.Errorf("%s count %d outside [0, %d]: %w", c.Family, c.Count, districts, ErrVerification)
	}
	return nil
}
