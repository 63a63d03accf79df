package types

// POI is a single entry of the immutable place catalog. Tags carry the raw
// OSM-style key/value pairs (name, amenity, tourism, cuisine, opening_hours...)
// exactly as loaded; the pipeline never mutates them.
type POI struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// Name resolves a display name with the catalog's language fallbacks.
func (p POI) Name() string {
	for _, key := range []string{"name", "name:vi", "name:en"} {
		if v, ok := p.Tags[key]; ok && v != "" {
			return v
		}
	}
	return "Unnamed place"
}

func (p POI) Address() string {
	if v, ok := p.Tags["address"]; ok && v != "" {
		return v
	}
	return "Address not available"
}

func (p POI) OpeningHours() string {
	if v, ok := p.Tags["opening_hours"]; ok && v != "" {
		return v
	}
	return "Opening hours not available"
}

// ScoredPOI is a catalog POI with the per-request fields attached by the
// proximity filter and tag scorer. Never persisted.
type ScoredPOI struct {
	POI
	DistanceKm  float64  `json:"distance_km"`
	MatchedTags []string `json:"matched_tags,omitempty"`
	MatchCount  int      `json:"match_count"`
}

// Daypart buckets used by the time categorizer, in visiting order.
const (
	DaypartMorning   = "morning"
	DaypartAfternoon = "afternoon"
	DaypartEvening   = "evening"
)

// SelectedPOI is a ScoredPOI the candidate selector picked, carrying its
// relevance score (0-100), the selector's justification and a daypart bucket.
type SelectedPOI struct {
	ScoredPOI
	MatchScore int    `json:"match_score"`
	Reason     string `json:"reason"`
	Daypart    string `json:"daypart"`
}

// UserLocation is the optional starting point of a plan request.
type UserLocation struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}
