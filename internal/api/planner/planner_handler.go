package planner

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderday/daytrip/internal/api"
	"github.com/wanderday/daytrip/internal/types"
)

type Handler struct {
	plannerService Service
	logger         *slog.Logger
}

func NewHandler(plannerService Service, logger *slog.Logger) *Handler {
	return &Handler{
		plannerService: plannerService,
		logger:         logger,
	}
}

// PlanItinerary handles the planning endpoint.
func (h *Handler) PlanItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlanItinerary").Start(r.Context(), "PlanItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PlanItinerary"))
	l.DebugContext(ctx, "Plan itinerary handler invoked")

	var req types.PlanItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Intent == "" {
		l.ErrorContext(ctx, "Intent is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Intent is required")
		return
	}

	itinerary, err := h.plannerService.PlanItinerary(ctx, req)
	if err != nil {
		if errors.Is(err, ErrEmptyCatalog) {
			l.ErrorContext(ctx, "POI catalog is empty, service not ready")
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "POI catalog is not loaded")
			return
		}
		l.ErrorContext(ctx, "Failed to plan itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to plan itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

// Health reports readiness and the loaded catalog size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.plannerService.CatalogSize() == 0 {
		status = "degraded"
	}
	api.WriteJSONResponse(w, r, http.StatusOK, types.HealthResponse{
		Status:      status,
		CatalogSize: h.plannerService.CatalogSize(),
	})
}
