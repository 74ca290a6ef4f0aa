package itinerary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeLookup struct {
	legs     map[string]LegEstimate
	err      error
	failKeys map[string]bool // per-pair failures; err fails every call
	calls    int
}

func legKey(from, to string) string { return from + "->" + to }

func (f *fakeLookup) Distance(ctx context.Context, fromID, toID string) (*LegEstimate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.failKeys[legKey(fromID, toID)] {
		return nil, errors.New("routing unavailable")
	}
	leg, ok := f.legs[legKey(fromID, toID)]
	if !ok {
		return nil, nil
	}
	return &leg, nil
}

func TestCalculateTooFewStops(t *testing.T) {
	lookup := &fakeLookup{}

	totals := Calculate(context.Background(), lookup, nil)
	assert.Zero(t, totals.DistanceKm)
	assert.Zero(t, totals.EstimatedCost)

	totals = Calculate(context.Background(), lookup, []string{"galle-fort"})
	assert.Zero(t, totals.DistanceKm)
	assert.Zero(t, totals.Days)
	assert.Equal(t, 0, lookup.calls)
}

func TestCalculateSumsRoutedLegs(t *testing.T) {
	lookup := &fakeLookup{legs: map[string]LegEstimate{
		legKey("colombo", "galle-fort"): {DistanceKm: 120, DurationHours: 2.5},
		legKey("galle-fort", "mirissa"): {DistanceKm: 50, DurationHours: 1},
	}}

	totals := Calculate(context.Background(), lookup, []string{"colombo", "galle-fort", "mirissa"})

	assert.InDelta(t, 170, totals.DistanceKm, 1e-9)
	assert.InDelta(t, 3.5, totals.DurationHours, 1e-9)
	assert.Equal(t, 1, totals.Days)
	assert.InDelta(t, 170*RatePerKm, totals.EstimatedCost, 1e-9)
	assert.Equal(t, 2, lookup.calls)
}

func TestCalculateMixedRoutedAndFallbackLegs(t *testing.T) {
	lookup := &fakeLookup{
		legs: map[string]LegEstimate{
			legKey("colombo", "galle-fort"): {DistanceKm: 120, DurationHours: 3},
		},
		failKeys: map[string]bool{
			legKey("galle-fort", "mirissa"): true,
		},
	}

	totals := Calculate(context.Background(), lookup, []string{"colombo", "galle-fort", "mirissa"})

	// Routed 120 km / 3 h plus one fallback leg of 50 km / 1.25 h.
	assert.InDelta(t, 170, totals.DistanceKm, 1e-9)
	assert.InDelta(t, 4.25, totals.DurationHours, 1e-9)
	assert.Equal(t, 1, totals.Days)
	assert.InDelta(t, 8500, totals.EstimatedCost, 1e-9)
	assert.Equal(t, 2, lookup.calls)
}

func TestCalculateCustomPinUsesFallbackWithoutLookup(t *testing.T) {
	lookup := &fakeLookup{legs: map[string]LegEstimate{
		legKey("colombo", "galle-fort"): {DistanceKm: 120, DurationHours: 2.5},
	}}

	totals := Calculate(context.Background(), lookup, []string{"colombo", "custom-abc123"})

	assert.InDelta(t, FallbackLegDistanceKm, totals.DistanceKm, 1e-9)
	assert.InDelta(t, FallbackLegDurationHours, totals.DurationHours, 1e-9)
	assert.Equal(t, 0, lookup.calls, "custom pins must not hit the provider")
}

func TestCalculateLookupFailureDegradesToFallback(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("upstream down")}

	totals := Calculate(context.Background(), lookup, []string{"colombo", "galle-fort"})

	assert.InDelta(t, FallbackLegDistanceKm, totals.DistanceKm, 1e-9)
	assert.InDelta(t, FallbackLegDistanceKm*RatePerKm, totals.EstimatedCost, 1e-9)
}

func TestCalculateNoRouteDegradesToFallback(t *testing.T) {
	// A nil estimate with nil error means the provider had no route.
	lookup := &fakeLookup{legs: map[string]LegEstimate{}}

	totals := Calculate(context.Background(), lookup, []string{"colombo", "jaffna"})

	assert.InDelta(t, FallbackLegDistanceKm, totals.DistanceKm, 1e-9)
}

func TestCalculateNilLookup(t *testing.T) {
	totals := Calculate(context.Background(), nil, []string{"colombo", "galle-fort", "mirissa"})

	assert.InDelta(t, 2*FallbackLegDistanceKm, totals.DistanceKm, 1e-9)
	assert.InDelta(t, 2*FallbackLegDurationHours, totals.DurationHours, 1e-9)
}

func TestCalculateDaysRoundUp(t *testing.T) {
	lookup := &fakeLookup{legs: map[string]LegEstimate{
		legKey("a", "b"): {DistanceKm: 300, DurationHours: 9},
		legKey("b", "c"): {DistanceKm: 280, DurationHours: 8},
	}}

	totals := Calculate(context.Background(), lookup, []string{"a", "b", "c"})

	// 17 driving hours at 8 per day is a 3-day trip.
	assert.Equal(t, 3, totals.Days)
}
