package maps

import (
	"context"
	"fmt"

	destinationRepo "voyago/database/repository/destination"
	"voyago/services/itinerary"
)

// RepoDistanceLookup routes legs between catalogue destinations: it
// resolves both IDs to coordinates and asks the directions API for the
// leg. It implements itinerary.DistanceLookup; the itinerary calculator
// handles any error here with its fallback estimate.
type RepoDistanceLookup struct {
	Dest destinationRepo.DestinationRepository
	Maps *Client
}

func NewRepoDistanceLookup(dest destinationRepo.DestinationRepository, client *Client) *RepoDistanceLookup {
	return &RepoDistanceLookup{Dest: dest, Maps: client}
}

func (l *RepoDistanceLookup) Distance(ctx context.Context, fromID, toID string) (*itinerary.LegEstimate, error) {
	from, err := l.Dest.GetByID(fromID)
	if err != nil {
		return nil, err
	}
	to, err := l.Dest.GetByID(toID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, fmt.Errorf("destination missing from catalogue")
	}

	route, err := l.Maps.Directions(ctx, from.Coordinates, to.Coordinates)
	if err != nil {
		return nil, err
	}
	return &itinerary.LegEstimate{
		DistanceKm:    route.DistanceKm,
		DurationHours: route.DurationHours,
	}, nil
}
