package types

import "github.com/google/uuid"

// ScheduledStop is a selected POI placed on the day's clock.
type ScheduledStop struct {
	ID                  int64             `json:"id"`
	Name                string            `json:"name"`
	Address             string            `json:"address"`
	OpeningHours        string            `json:"opening_hours"`
	Reason              string            `json:"reason"`
	MatchScore          int               `json:"match_score"`
	Daypart             string            `json:"daypart"`
	Lat                 float64           `json:"lat"`
	Lon                 float64           `json:"lon"`
	Tags                map[string]string `json:"tags,omitempty"`
	Order               int               `json:"order"`
	StartTime           string            `json:"start_time"`
	EndTime             string            `json:"end_time"`
	StayMinutes         int               `json:"stay_minutes"`
	TravelToNextMinutes int               `json:"travel_to_next_minutes"`
}

// Itinerary is the assembled plan for one request. An empty Stops slice is a
// valid outcome, not an error.
type Itinerary struct {
	ID                 uuid.UUID       `json:"id"`
	Intent             string          `json:"intent"`
	Stops              []ScheduledStop `json:"stops"`
	RouteCoordinates   [][2]float64    `json:"route_coordinates"`
	TotalStayMinutes   int             `json:"total_stay_minutes"`
	TotalTravelMinutes int             `json:"total_travel_minutes"`
	StartTime          string          `json:"start_time"`
	EndTime            string          `json:"end_time"`
}

// PlanItineraryRequest is the POST body of the planning endpoint.
type PlanItineraryRequest struct {
	Intent         string        `json:"intent"`
	Location       *UserLocation `json:"location,omitempty"`
	PreferenceTags []string      `json:"preference_tags,omitempty"`
	RadiusKm       float64       `json:"radius_km,omitempty"`
	StartTime      string        `json:"start_time,omitempty"`
}

// HealthResponse reports the readiness of the service.
type HealthResponse struct {
	Status      string `json:"status"`
	CatalogSize int    `json:"catalog_size"`
}
