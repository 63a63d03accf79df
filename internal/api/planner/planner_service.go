package planner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wanderday/daytrip/app/observability/metrics"
	"github.com/wanderday/daytrip/config"
	"github.com/wanderday/daytrip/internal/api/catalog"
	"github.com/wanderday/daytrip/internal/api/selector"
	"github.com/wanderday/daytrip/internal/types"
)

// ErrEmptyCatalog marks the server-misconfiguration failure domain: the
// catalog never loaded, so no request can be planned. Distinct from the
// normal "no itinerary could be planned" outcome, which is an empty itinerary.
var ErrEmptyCatalog = errors.New("poi catalog is empty")

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary planning.
type Service interface {
	PlanItinerary(ctx context.Context, req types.PlanItineraryRequest) (*types.Itinerary, error)
	CatalogSize() int
}

type ServiceImpl struct {
	logger     *slog.Logger
	catalog    *catalog.Catalog
	selector   selector.CandidateSelector
	plannerCfg config.Planner
}

func NewServiceImpl(cat *catalog.Catalog, sel selector.CandidateSelector, plannerCfg config.Planner, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		catalog:    cat,
		selector:   sel,
		plannerCfg: plannerCfg,
	}
}

func (s *ServiceImpl) CatalogSize() int {
	return s.catalog.Size()
}

// PlanItinerary runs the planning pipeline: proximity filter, tag scoring,
// candidate selection, daypart categorization, route optimization and
// schedule assignment. Selector failures and zero-candidate outcomes resolve
// to a well-formed empty itinerary; only the empty catalog is an error.
func (s *ServiceImpl) PlanItinerary(ctx context.Context, req types.PlanItineraryRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "PlanItinerary")
	defer span.End()

	start := time.Now()
	m := metrics.Get()
	defer func() {
		m.PlanRequestsTotal.Add(ctx, 1)
		m.PlanDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	if s.catalog.Size() == 0 {
		span.SetStatus(codes.Error, "Empty catalog")
		return nil, ErrEmptyCatalog
	}

	radius := req.RadiusKm
	if radius == 0 {
		radius = s.plannerCfg.DefaultRadiusKm
	}
	startTime := req.StartTime
	if startTime == "" {
		startTime = s.plannerCfg.DefaultStartTime
	}

	scored := filterByProximity(s.catalog.POIs(), req.Location, radius)
	scored = scoreByTags(scored, req.PreferenceTags, s.plannerCfg.ClassifierKeys)
	span.SetAttributes(attribute.Int("candidates.filtered", len(scored)))

	if len(scored) == 0 {
		s.logger.InfoContext(ctx, "No POIs within radius, returning empty itinerary",
			slog.Float64("radius_km", radius))
		return s.emptyItinerary(ctx, req.Intent, startTime), nil
	}

	offered := scored
	if limit := s.plannerCfg.CandidateLimit; limit > 0 && len(offered) > limit {
		offered = offered[:limit]
	}

	label := ""
	if req.Location != nil {
		label = req.Location.Label
	}

	selectorStart := time.Now()
	selections, err := s.selector.SelectCandidates(ctx, req.Intent, label, toCandidates(offered))
	m.SelectorDurationSeconds.Record(ctx, time.Since(selectorStart).Seconds())
	if err != nil {
		// External-service fault: recover into the empty-itinerary outcome so
		// the caller always receives a valid response.
		m.SelectorErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "Candidate selector failed, returning empty itinerary", slog.Any("error", err))
		return s.emptyItinerary(ctx, req.Intent, startTime), nil
	}

	selected := mapSelections(selections, offered)
	span.SetAttributes(attribute.Int("candidates.selected", len(selected)))
	if len(selected) == 0 {
		s.logger.InfoContext(ctx, "Selector returned no usable candidates, returning empty itinerary")
		return s.emptyItinerary(ctx, req.Intent, startTime), nil
	}

	selected = categorizeByTime(selected, s.plannerCfg.MorningKeywords, s.plannerCfg.EveningKeywords)

	startLat, startLon := selected[0].Lat, selected[0].Lon
	if req.Location != nil {
		startLat, startLon = req.Location.Lat, req.Location.Lon
	}
	order := optimizeRoute(startLat, startLon, selected, s.plannerCfg.Travel.TwoOptRounds)

	ordered := make([]types.SelectedPOI, len(selected))
	for i, idx := range order {
		ordered[i] = selected[idx]
	}

	stops, totalStay, totalTravel := assignSchedule(ordered, startTime, s.plannerCfg)

	route := make([][2]float64, 0, len(stops)+1)
	if req.Location != nil {
		route = append(route, [2]float64{req.Location.Lat, req.Location.Lon})
	}
	for _, stop := range stops {
		route = append(route, [2]float64{stop.Lat, stop.Lon})
	}

	itinerary := &types.Itinerary{
		ID:                 uuid.New(),
		Intent:             req.Intent,
		Stops:              stops,
		RouteCoordinates:   route,
		TotalStayMinutes:   totalStay,
		TotalTravelMinutes: totalTravel,
		StartTime:          stops[0].StartTime,
		EndTime:            stops[len(stops)-1].EndTime,
	}

	span.SetStatus(codes.Ok, "Itinerary planned")
	s.logger.InfoContext(ctx, "Itinerary planned",
		slog.String("itinerary_id", itinerary.ID.String()),
		slog.Int("stops", len(stops)),
		slog.Int("total_stay_minutes", totalStay),
		slog.Int("total_travel_minutes", totalTravel))
	return itinerary, nil
}

// emptyItinerary is the explicit no-results outcome: a valid itinerary with no
// stops whose start and end both equal the requested start time.
func (s *ServiceImpl) emptyItinerary(ctx context.Context, intent, startTime string) *types.Itinerary {
	metrics.Get().EmptyItinerariesTotal.Add(ctx, 1)
	clock := formatClock(parseClock(startTime))
	return &types.Itinerary{
		ID:               uuid.New(),
		Intent:           intent,
		Stops:            []types.ScheduledStop{},
		RouteCoordinates: [][2]float64{},
		StartTime:        clock,
		EndTime:          clock,
	}
}

func toCandidates(offered []types.ScoredPOI) []selector.Candidate {
	candidates := make([]selector.Candidate, len(offered))
	for i, p := range offered {
		candidates[i] = selector.Candidate{
			ID:         p.ID,
			Name:       p.Name(),
			Lat:        p.Lat,
			Lon:        p.Lon,
			Tags:       p.Tags,
			DistanceKm: p.DistanceKm,
			MatchCount: p.MatchCount,
		}
	}
	return candidates
}

// mapSelections resolves selector ids against the candidate set that was
// actually offered, never the full catalog: an id outside it is dropped so the
// selection stays consistent with what the selector saw. Selector order is
// preserved; it is overwritten by the route optimizer later.
func mapSelections(selections []selector.Selection, offered []types.ScoredPOI) []types.SelectedPOI {
	byID := make(map[int64]types.ScoredPOI, len(offered))
	for _, p := range offered {
		byID[p.ID] = p
	}

	selected := make([]types.SelectedPOI, 0, len(selections))
	seen := make(map[int64]bool, len(selections))
	for _, sel := range selections {
		poi, ok := byID[sel.ID]
		if !ok || seen[sel.ID] {
			continue
		}
		seen[sel.ID] = true
		selected = append(selected, types.SelectedPOI{
			ScoredPOI:  poi,
			MatchScore: sel.MatchScore,
			Reason:     sel.Reason,
		})
	}
	return selected
}
