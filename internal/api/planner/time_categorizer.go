package planner

import (
	"sort"
	"strings"

	"github.com/wanderday/daytrip/internal/types"
)

var daypartRank = map[string]int{
	types.DaypartMorning:   0,
	types.DaypartAfternoon: 1,
	types.DaypartEvening:   2,
}

// categorizeByTime buckets each selected POI into a daypart by testing the
// configured keyword sets against its serialized tags. Morning keywords win
// over evening ones; anything matching neither is an afternoon stop. The
// result is stable-sorted morning, afternoon, evening so each POI keeps its
// relative position within its bucket.
func categorizeByTime(pois []types.SelectedPOI, morningKeywords, eveningKeywords []string) []types.SelectedPOI {
	categorized := make([]types.SelectedPOI, len(pois))
	copy(categorized, pois)

	for i := range categorized {
		categorized[i].Daypart = classifyDaypart(categorized[i].Tags, morningKeywords, eveningKeywords)
	}

	sort.SliceStable(categorized, func(i, j int) bool {
		return daypartRank[categorized[i].Daypart] < daypartRank[categorized[j].Daypart]
	})
	return categorized
}

func classifyDaypart(tags map[string]string, morningKeywords, eveningKeywords []string) string {
	serialized := serializeTags(tags)
	for _, kw := range morningKeywords {
		if strings.Contains(serialized, strings.ToLower(kw)) {
			return types.DaypartMorning
		}
	}
	for _, kw := range eveningKeywords {
		if strings.Contains(serialized, strings.ToLower(kw)) {
			return types.DaypartEvening
		}
	}
	return types.DaypartAfternoon
}

func serializeTags(tags map[string]string) string {
	var b strings.Builder
	for k, v := range tags {
		b.WriteString(strings.ToLower(k))
		b.WriteByte('=')
		b.WriteString(strings.ToLower(v))
		b.WriteByte(' ')
	}
	return b.String()
}
