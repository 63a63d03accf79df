package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderday/daytrip/internal/types"
)

var (
	testMorningKeywords = []string{"breakfast", "cafe", "coffee", "museum", "park"}
	testEveningKeywords = []string{"dinner", "bar", "pub", "nightlife"}
)

func selectedWithTags(id int64, tags map[string]string) types.SelectedPOI {
	return types.SelectedPOI{ScoredPOI: types.ScoredPOI{POI: types.POI{ID: id, Tags: tags}}}
}

func TestCategorizeByTime(t *testing.T) {
	t.Run("Buckets by keyword with afternoon default", func(t *testing.T) {
		pois := []types.SelectedPOI{
			selectedWithTags(1, map[string]string{"amenity": "bar"}),
			selectedWithTags(2, map[string]string{"amenity": "cafe"}),
			selectedWithTags(3, map[string]string{"shop": "books"}),
		}
		out := categorizeByTime(pois, testMorningKeywords, testEveningKeywords)
		require.Len(t, out, 3)
		assert.Equal(t, types.DaypartMorning, out[0].Daypart)
		assert.Equal(t, int64(2), out[0].ID)
		assert.Equal(t, types.DaypartAfternoon, out[1].Daypart)
		assert.Equal(t, int64(3), out[1].ID)
		assert.Equal(t, types.DaypartEvening, out[2].Daypart)
		assert.Equal(t, int64(1), out[2].ID)
	})

	t.Run("Morning keywords win over evening", func(t *testing.T) {
		pois := []types.SelectedPOI{
			selectedWithTags(1, map[string]string{"amenity": "cafe", "description": "cocktail bar"}),
		}
		out := categorizeByTime(pois, testMorningKeywords, testEveningKeywords)
		assert.Equal(t, types.DaypartMorning, out[0].Daypart)
	})

	t.Run("Groups are contiguous and intra-group order is preserved", func(t *testing.T) {
		pois := []types.SelectedPOI{
			selectedWithTags(1, map[string]string{"amenity": "pub"}),
			selectedWithTags(2, map[string]string{"tourism": "museum"}),
			selectedWithTags(3, map[string]string{"amenity": "nightlife"}),
			selectedWithTags(4, map[string]string{"amenity": "coffee"}),
			selectedWithTags(5, map[string]string{"shop": "mall"}),
		}
		out := categorizeByTime(pois, testMorningKeywords, testEveningKeywords)

		var ids []int64
		for _, p := range out {
			ids = append(ids, p.ID)
		}
		// morning: 2, 4 (input order), afternoon: 5, evening: 1, 3 (input order)
		assert.Equal(t, []int64{2, 4, 5, 1, 3}, ids)

		lastRank := -1
		for _, p := range out {
			rank := daypartRank[p.Daypart]
			assert.GreaterOrEqual(t, rank, lastRank)
			lastRank = rank
		}
	})
}
