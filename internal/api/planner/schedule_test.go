package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderday/daytrip/config"
	"github.com/wanderday/daytrip/internal/types"
)

// testPlannerConfig mirrors the embedded config.yml defaults.
func testPlannerConfig() config.Planner {
	var cfg config.Planner
	cfg.DefaultRadiusKm = 15
	cfg.DefaultStartTime = "09:00"
	cfg.CandidateLimit = 30
	cfg.ClassifierKeys = []string{"amenity", "tourism", "leisure", "cuisine", "shop"}
	cfg.MorningKeywords = []string{"breakfast", "cafe", "coffee", "museum", "park"}
	cfg.EveningKeywords = []string{"dinner", "bar", "pub", "nightlife"}
	cfg.Durations.FoodMinutes = 60
	cfg.Durations.AttractionMinutes = 90
	cfg.Durations.OutdoorMinutes = 45
	cfg.Durations.DefaultMinutes = 60
	cfg.Durations.FoodKeywords = []string{"restaurant", "cafe", "bar", "pub", "fast_food"}
	cfg.Durations.AttractionKeys = []string{"museum", "gallery", "attraction", "zoo"}
	cfg.Durations.OutdoorKeywords = []string{"park", "garden", "viewpoint"}
	cfg.Travel.MinutesPerKm = 8
	cfg.Travel.FloorMinutes = 10
	cfg.Travel.TwoOptRounds = 2
	return cfg
}

func TestEstimateStayMinutes(t *testing.T) {
	cfg := testPlannerConfig()

	tests := []struct {
		name string
		tags map[string]string
		want int
	}{
		{"Restaurant", map[string]string{"amenity": "restaurant"}, 60},
		{"Museum", map[string]string{"tourism": "museum"}, 90},
		{"Park", map[string]string{"leisure": "park"}, 45},
		{"Unclassified", map[string]string{"shop": "books"}, 60},
		{"No tags", map[string]string{}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, estimateStayMinutes(tt.tags, cfg))
		})
	}
}

func TestTravelMinutes(t *testing.T) {
	cfg := testPlannerConfig()
	assert.Equal(t, 10, travelMinutes(0.2, cfg), "floor applies to short hops")
	assert.Equal(t, 16, travelMinutes(2, cfg))
	assert.Equal(t, 12, travelMinutes(1.5, cfg))
}

func TestAssignSchedule(t *testing.T) {
	cfg := testPlannerConfig()
	pois := []types.SelectedPOI{
		{ScoredPOI: types.ScoredPOI{POI: types.POI{ID: 1, Lat: 10.7769, Lon: 106.7009, Tags: map[string]string{"tourism": "museum", "name": "Museum"}}}},
		{ScoredPOI: types.ScoredPOI{POI: types.POI{ID: 2, Lat: 10.7850, Lon: 106.7009, Tags: map[string]string{"amenity": "restaurant", "name": "Lunch"}}}},
		{ScoredPOI: types.ScoredPOI{POI: types.POI{ID: 3, Lat: 10.7900, Lon: 106.7009, Tags: map[string]string{"leisure": "park", "name": "Park"}}}},
	}

	stops, totalStay, totalTravel := assignSchedule(pois, "09:00", cfg)
	require.Len(t, stops, 3)

	t.Run("Order indices are 1..N with no gaps", func(t *testing.T) {
		for i, stop := range stops {
			assert.Equal(t, i+1, stop.Order)
		}
	})

	t.Run("End equals start plus stay", func(t *testing.T) {
		for _, stop := range stops {
			assert.Equal(t, formatClock(parseClock(stop.StartTime)+stop.StayMinutes), stop.EndTime)
		}
	})

	t.Run("Next start equals end plus travel", func(t *testing.T) {
		for i := 0; i < len(stops)-1; i++ {
			expected := parseClock(stops[i].EndTime) + stops[i].TravelToNextMinutes
			assert.Equal(t, formatClock(expected), stops[i+1].StartTime)
		}
	})

	t.Run("Last stop has no onward travel", func(t *testing.T) {
		assert.Zero(t, stops[len(stops)-1].TravelToNextMinutes)
	})

	t.Run("Totals add up", func(t *testing.T) {
		assert.Equal(t, 90+60+45, totalStay)
		sum := 0
		for _, stop := range stops {
			sum += stop.TravelToNextMinutes
		}
		assert.Equal(t, sum, totalTravel)
	})

	t.Run("First stop starts at the requested time", func(t *testing.T) {
		assert.Equal(t, "09:00", stops[0].StartTime)
		assert.Equal(t, "10:30", stops[0].EndTime) // 90 minute museum stay
	})
}

func TestParseClock(t *testing.T) {
	assert.Equal(t, 9*60, parseClock("09:00"))
	assert.Equal(t, 14*60+30, parseClock("14:30"))
	assert.Equal(t, 9*60, parseClock("not a time"), "malformed input falls back to 09:00")
	assert.Equal(t, 9*60, parseClock("25:99"))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", formatClock(9*60+5))
	assert.Equal(t, "00:30", formatClock(24*60+30), "wraps past midnight")
}
