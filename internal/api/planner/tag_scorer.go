package planner

import (
	"sort"
	"strings"

	"github.com/wanderday/daytrip/internal/types"
)

// scoreByTags counts, for each POI, how many preference tags appear as a
// case-insensitive substring of any configured classifier value. The result is
// sorted by score descending with distance ascending as the tie-break, so the
// proximity order survives among equally scored POIs. With no preference tags
// the input order is returned untouched.
func scoreByTags(pois []types.ScoredPOI, preferenceTags []string, classifierKeys []string) []types.ScoredPOI {
	if len(preferenceTags) == 0 {
		return pois
	}

	scored := make([]types.ScoredPOI, len(pois))
	copy(scored, pois)

	for i := range scored {
		var matched []string
		for _, tag := range preferenceTags {
			needle := strings.ToLower(tag)
			if needle == "" {
				continue
			}
			for _, key := range classifierKeys {
				value, ok := scored[i].Tags[key]
				if !ok {
					continue
				}
				if strings.Contains(strings.ToLower(value), needle) {
					matched = append(matched, tag)
					break
				}
			}
		}
		scored[i].MatchedTags = matched
		scored[i].MatchCount = len(matched)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchCount != scored[j].MatchCount {
			return scored[i].MatchCount > scored[j].MatchCount
		}
		return scored[i].DistanceKm < scored[j].DistanceKm
	})
	return scored
}
