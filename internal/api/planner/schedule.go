package planner

import (
	"fmt"
	"math"
	"strings"

	"github.com/wanderday/daytrip/config"
	"github.com/wanderday/daytrip/internal/types"
)

// assignSchedule walks the optimized stop order and puts every stop on the
// clock: stay duration from its venue kind, travel time to the next stop from
// the haversine distance at the configured pace (with a floor), start/end
// times accumulated from the requested start. Order indices are 1-based.
func assignSchedule(pois []types.SelectedPOI, startTime string, cfg config.Planner) ([]types.ScheduledStop, int, int) {
	stops := make([]types.ScheduledStop, 0, len(pois))
	clock := parseClock(startTime)
	totalStay := 0
	totalTravel := 0

	for i, p := range pois {
		stay := estimateStayMinutes(p.Tags, cfg)
		travel := 0
		if i < len(pois)-1 {
			next := pois[i+1]
			km := calculateDistance(p.Lat, p.Lon, next.Lat, next.Lon)
			travel = travelMinutes(km, cfg)
		}

		stops = append(stops, types.ScheduledStop{
			ID:                  p.ID,
			Name:                p.Name(),
			Address:             p.Address(),
			OpeningHours:        p.OpeningHours(),
			Reason:              p.Reason,
			MatchScore:          p.MatchScore,
			Daypart:             p.Daypart,
			Lat:                 p.Lat,
			Lon:                 p.Lon,
			Tags:                p.Tags,
			Order:               i + 1,
			StartTime:           formatClock(clock),
			EndTime:             formatClock(clock + stay),
			StayMinutes:         stay,
			TravelToNextMinutes: travel,
		})

		totalStay += stay
		totalTravel += travel
		clock += stay + travel
	}

	return stops, totalStay, totalTravel
}

// estimateStayMinutes maps the POI's classifier values onto a stay duration:
// food and beverage venues get the shortest block, museums and attractions the
// longest, parks and viewpoints a quick visit, everything else the default.
func estimateStayMinutes(tags map[string]string, cfg config.Planner) int {
	var values []string
	for _, key := range cfg.ClassifierKeys {
		if v, ok := tags[key]; ok {
			values = append(values, strings.ToLower(v))
		}
	}

	if matchesAny(values, cfg.Durations.AttractionKeys) {
		return cfg.Durations.AttractionMinutes
	}
	if matchesAny(values, cfg.Durations.OutdoorKeywords) {
		return cfg.Durations.OutdoorMinutes
	}
	if matchesAny(values, cfg.Durations.FoodKeywords) {
		return cfg.Durations.FoodMinutes
	}
	return cfg.Durations.DefaultMinutes
}

func matchesAny(values, keywords []string) bool {
	for _, v := range values {
		for _, kw := range keywords {
			if strings.Contains(v, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

func travelMinutes(km float64, cfg config.Planner) int {
	minutes := int(math.Round(km * cfg.Travel.MinutesPerKm))
	if minutes < cfg.Travel.FloorMinutes {
		return cfg.Travel.FloorMinutes
	}
	return minutes
}

// parseClock converts "HH:MM" to minutes since midnight; malformed input
// resolves to 09:00 rather than failing the request.
func parseClock(value string) int {
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 9 * 60
	}
	return h*60 + m
}

func formatClock(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
