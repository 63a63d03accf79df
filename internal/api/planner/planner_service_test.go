package planner

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanderday/daytrip/app/observability/metrics"
	"github.com/wanderday/daytrip/internal/api/catalog"
	"github.com/wanderday/daytrip/internal/api/selector"
	"github.com/wanderday/daytrip/internal/types"
)

// MockCandidateSelector is a mock implementation of selector.CandidateSelector
type MockCandidateSelector struct {
	mock.Mock
}

func (m *MockCandidateSelector) SelectCandidates(ctx context.Context, intent, locationLabel string, candidates []selector.Candidate) ([]selector.Selection, error) {
	args := m.Called(ctx, intent, locationLabel, candidates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]selector.Selection), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func init() {
	// Instruments resolve against the no-op meter provider in tests.
	metrics.InitAppMetrics()
}

// Five POIs around central Ho Chi Minh City, all within 1 km of the test user.
func nearbyCatalog() *catalog.Catalog {
	return catalog.New([]types.POI{
		{ID: 1, Lat: 10.7769, Lon: 106.7009, Tags: map[string]string{"name": "Morning Cafe", "amenity": "cafe"}},
		{ID: 2, Lat: 10.7775, Lon: 106.7015, Tags: map[string]string{"name": "City Museum", "tourism": "museum"}},
		{ID: 3, Lat: 10.7780, Lon: 106.7000, Tags: map[string]string{"name": "Central Park", "leisure": "park"}},
		{ID: 4, Lat: 10.7760, Lon: 106.7020, Tags: map[string]string{"name": "Pho Corner", "amenity": "restaurant"}},
		{ID: 5, Lat: 10.7755, Lon: 106.7005, Tags: map[string]string{"name": "Night Bar", "amenity": "bar"}},
	})
}

func allSelections() []selector.Selection {
	return []selector.Selection{
		{ID: 1, MatchScore: 90, Reason: "Great coffee"},
		{ID: 2, MatchScore: 85, Reason: "Local history"},
		{ID: 3, MatchScore: 80, Reason: "Green escape"},
		{ID: 4, MatchScore: 88, Reason: "Famous pho"},
		{ID: 5, MatchScore: 75, Reason: "Evening drinks"},
	}
}

func TestPlanItinerary_FullDay(t *testing.T) {
	// Scenario: every catalog POI is close, preferred and selected.
	mockSel := new(MockCandidateSelector)
	mockSel.On("SelectCandidates", mock.Anything, "a relaxed day downtown", "", mock.Anything).
		Return(allSelections(), nil).Once()

	svc := NewServiceImpl(nearbyCatalog(), mockSel, testPlannerConfig(), testLogger())
	itinerary, err := svc.PlanItinerary(context.Background(), types.PlanItineraryRequest{
		Intent:   "a relaxed day downtown",
		Location: &types.UserLocation{Lat: 10.7769, Lon: 106.7009},
		RadiusKm: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, itinerary)
	require.Len(t, itinerary.Stops, 5)

	// Stops are a permutation of the selected POIs.
	ids := make(map[int64]bool)
	for _, stop := range itinerary.Stops {
		ids[stop.ID] = true
	}
	assert.Len(t, ids, 5)

	// Total stay is the sum of the category-derived durations:
	// cafe 60 + museum 90 + park 45 + restaurant 60 + bar 60.
	assert.Equal(t, 315, itinerary.TotalStayMinutes)

	assert.Equal(t, itinerary.Stops[0].StartTime, itinerary.StartTime)
	assert.Equal(t, itinerary.Stops[4].EndTime, itinerary.EndTime)
	// User point plus one coordinate per stop.
	assert.Len(t, itinerary.RouteCoordinates, 6)

	mockSel.AssertExpectations(t)
}

func TestPlanItinerary_ProximityNarrowsCandidates(t *testing.T) {
	// Only POIs 1-2 sit within 1 km of the user; the rest are across town.
	cat := catalog.New([]types.POI{
		{ID: 1, Lat: 10.7769, Lon: 106.7009, Tags: map[string]string{"amenity": "cafe"}},
		{ID: 2, Lat: 10.7775, Lon: 106.7015, Tags: map[string]string{"tourism": "museum"}},
		{ID: 3, Lat: 10.8500, Lon: 106.6200, Tags: map[string]string{"amenity": "bar"}},
		{ID: 4, Lat: 10.8600, Lon: 106.6300, Tags: map[string]string{"leisure": "park"}},
		{ID: 5, Lat: 10.8700, Lon: 106.6400, Tags: map[string]string{"amenity": "restaurant"}},
		{ID: 6, Lat: 10.8800, Lon: 106.6500, Tags: map[string]string{"shop": "mall"}},
		{ID: 7, Lat: 10.8900, Lon: 106.6600, Tags: map[string]string{"tourism": "gallery"}},
		{ID: 8, Lat: 10.9000, Lon: 106.6700, Tags: map[string]string{"amenity": "pub"}},
		{ID: 9, Lat: 10.9100, Lon: 106.6800, Tags: map[string]string{"leisure": "garden"}},
		{ID: 10, Lat: 10.9200, Lon: 106.6900, Tags: map[string]string{"amenity": "fast_food"}},
	})

	var offered []selector.Candidate
	mockSel := new(MockCandidateSelector)
	mockSel.On("SelectCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			offered = args.Get(3).([]selector.Candidate)
		}).
		Return([]selector.Selection{{ID: 1, MatchScore: 80, Reason: "Close by"}}, nil).Once()

	svc := NewServiceImpl(cat, mockSel, testPlannerConfig(), testLogger())
	itinerary, err := svc.PlanItinerary(context.Background(), types.PlanItineraryRequest{
		Intent:   "coffee",
		Location: &types.UserLocation{Lat: 10.7769, Lon: 106.7009},
		RadiusKm: 1,
	})
	require.NoError(t, err)
	assert.Len(t, offered, 2, "only POIs inside the radius are offered to the selector")
	assert.Len(t, itinerary.Stops, 1)
}

func TestPlanItinerary_EmptySelection(t *testing.T) {
	mockSel := new(MockCandidateSelector)
	mockSel.On("SelectCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]selector.Selection{}, nil).Once()

	svc := NewServiceImpl(nearbyCatalog(), mockSel, testPlannerConfig(), testLogger())
	itinerary, err := svc.PlanItinerary(context.Background(), types.PlanItineraryRequest{
		Intent:    "something impossible",
		StartTime: "10:30",
	})
	require.NoError(t, err)
	require.NotNil(t, itinerary)
	assert.Empty(t, itinerary.Stops)
	assert.Zero(t, itinerary.TotalStayMinutes)
	assert.Zero(t, itinerary.TotalTravelMinutes)
	assert.Equal(t, "10:30", itinerary.StartTime)
	assert.Equal(t, "10:30", itinerary.EndTime)
}

func TestPlanItinerary_SelectorFailure(t *testing.T) {
	mockSel := new(MockCandidateSelector)
	mockSel.On("SelectCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("deadline exceeded")).Once()

	svc := NewServiceImpl(nearbyCatalog(), mockSel, testPlannerConfig(), testLogger())
	itinerary, err := svc.PlanItinerary(context.Background(), types.PlanItineraryRequest{
		Intent:    "anything",
		StartTime: "10:30",
	})
	require.NoError(t, err, "selector faults are recovered, not propagated")
	require.NotNil(t, itinerary)
	assert.Empty(t, itinerary.Stops)
	assert.Equal(t, "10:30", itinerary.StartTime)
	assert.Equal(t, "10:30", itinerary.EndTime)
}

func TestPlanItinerary_EmptyCatalog(t *testing.T) {
	mockSel := new(MockCandidateSelector)
	svc := NewServiceImpl(catalog.New(nil), mockSel, testPlannerConfig(), testLogger())

	itinerary, err := svc.PlanItinerary(context.Background(), types.PlanItineraryRequest{Intent: "anything"})
	assert.Nil(t, itinerary)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
	mockSel.AssertNotCalled(t, "SelectCandidates")
}

func TestPlanItinerary_DropsUnknownAndDuplicateIDs(t *testing.T) {
	mockSel := new(MockCandidateSelector)
	mockSel.On("SelectCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]selector.Selection{
			{ID: 2, MatchScore: 90, Reason: "Museum first"},
			{ID: 999, MatchScore: 90, Reason: "Hallucinated place"},
			{ID: 2, MatchScore: 50, Reason: "Repeated"},
			{ID: 4, MatchScore: 70, Reason: "Lunch"},
		}, nil).Once()

	svc := NewServiceImpl(nearbyCatalog(), mockSel, testPlannerConfig(), testLogger())
	itinerary, err := svc.PlanItinerary(context.Background(), types.PlanItineraryRequest{
		Intent:   "history and food",
		Location: &types.UserLocation{Lat: 10.7769, Lon: 106.7009},
	})
	require.NoError(t, err)
	require.Len(t, itinerary.Stops, 2)
	ids := []int64{itinerary.Stops[0].ID, itinerary.Stops[1].ID}
	assert.ElementsMatch(t, []int64{2, 4}, ids)
}

func TestPlanItinerary_NoUserLocation(t *testing.T) {
	mockSel := new(MockCandidateSelector)
	mockSel.On("SelectCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(allSelections(), nil).Once()

	svc := NewServiceImpl(nearbyCatalog(), mockSel, testPlannerConfig(), testLogger())
	itinerary, err := svc.PlanItinerary(context.Background(), types.PlanItineraryRequest{Intent: "see it all"})
	require.NoError(t, err)
	require.Len(t, itinerary.Stops, 5)
	// Without a user point the polyline has one coordinate per stop.
	assert.Len(t, itinerary.RouteCoordinates, 5)
}
