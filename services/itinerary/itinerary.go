// Package itinerary computes aggregate trip metrics from an ordered stop
// list. Totals are always recomputed in full; nothing is patched
// incrementally, so the result can never drift from the stop list.
package itinerary

import (
	"context"
	"math"

	"go.uber.org/zap"

	"voyago/models"
	"voyago/utils"
)

const (
	// FallbackLegDistanceKm is charged for a leg with no routing data:
	// either endpoint is a custom pin, or the lookup failed.
	FallbackLegDistanceKm = 50
	// FallbackLegDurationHours accompanies the fallback distance.
	FallbackLegDurationHours = 1.25
	// TravelHoursPerDay converts total driving hours into trip days.
	TravelHoursPerDay = 8
	// RatePerKm converts total distance into the estimated cost.
	RatePerKm = 50
)

// LegEstimate is the routed distance and duration between two catalogue
// destinations.
type LegEstimate struct {
	DistanceKm    float64
	DurationHours float64
}

// DistanceLookup resolves routing data between two catalogue destinations.
// A nil estimate with nil error means the provider had no route.
type DistanceLookup interface {
	Distance(ctx context.Context, fromID, toID string) (*LegEstimate, error)
}

// Calculate sums pairwise legs over the ordered destination IDs. A
// single-stop list has no pairs and yields all-zero totals. Lookup
// failures degrade to the fallback estimate instead of failing the trip.
func Calculate(ctx context.Context, lookup DistanceLookup, stopIDs []string) models.ItineraryTotals {
	var totals models.ItineraryTotals
	if len(stopIDs) < 2 {
		return totals
	}

	for i := 0; i < len(stopIDs)-1; i++ {
		from, to := stopIDs[i], stopIDs[i+1]
		leg := resolveLeg(ctx, lookup, from, to)
		totals.DistanceKm += leg.DistanceKm
		totals.DurationHours += leg.DurationHours
	}

	totals.Days = int(math.Ceil(totals.DurationHours / TravelHoursPerDay))
	totals.EstimatedCost = totals.DistanceKm * RatePerKm
	return totals
}

func resolveLeg(ctx context.Context, lookup DistanceLookup, from, to string) LegEstimate {
	fallback := LegEstimate{DistanceKm: FallbackLegDistanceKm, DurationHours: FallbackLegDurationHours}

	// Custom pins have no routing data; don't bother the provider.
	if models.IsCustomDestination(from) || models.IsCustomDestination(to) {
		return fallback
	}
	if lookup == nil {
		return fallback
	}

	leg, err := lookup.Distance(ctx, from, to)
	if err != nil {
		utils.GetLogger().Warn("distance lookup failed, using fallback estimate",
			zap.String("from", from), zap.String("to", to), zap.Error(err))
		return fallback
	}
	if leg == nil {
		return fallback
	}
	return *leg
}
