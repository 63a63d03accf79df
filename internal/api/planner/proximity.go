package planner

import (
	"sort"

	"github.com/wanderday/daytrip/internal/types"
)

// filterByProximity keeps the POIs within radiusKm of the user and attaches the
// computed distance, sorted nearest first. Without a user location every POI is
// retained at distance 0 and the catalog order is preserved.
func filterByProximity(pois []types.POI, location *types.UserLocation, radiusKm float64) []types.ScoredPOI {
	scored := make([]types.ScoredPOI, 0, len(pois))

	if location == nil {
		for _, p := range pois {
			scored = append(scored, types.ScoredPOI{POI: p})
		}
		return scored
	}

	for _, p := range pois {
		d := calculateDistance(location.Lat, location.Lon, p.Lat, p.Lon)
		if d <= radiusKm {
			scored = append(scored, types.ScoredPOI{POI: p, DistanceKm: d})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].DistanceKm < scored[j].DistanceKm
	})
	return scored
}
