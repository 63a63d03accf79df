package catalog

import (
	"context"
	"log/slog"

	"github.com/wanderday/daytrip/internal/types"
)

// Catalog is the read-only POI set shared by every planning request. It is
// built once at startup and safe for unsynchronized concurrent reads.
type Catalog struct {
	pois []types.POI
}

func New(pois []types.POI) *Catalog {
	return &Catalog{pois: pois}
}

// Load builds the catalog from the repository. A load failure leaves the
// service running with an empty catalog; planning requests then fail fast
// with a descriptive error instead of a silent empty itinerary.
func Load(ctx context.Context, repo Repository, logger *slog.Logger) *Catalog {
	pois, err := repo.GetAll(ctx)
	if err != nil {
		logger.Error("Failed to load POI catalog, continuing with empty catalog", slog.Any("error", err))
		return &Catalog{}
	}
	return &Catalog{pois: pois}
}

func (c *Catalog) POIs() []types.POI {
	return c.pois
}

func (c *Catalog) Size() int {
	return len(c.pois)
}
