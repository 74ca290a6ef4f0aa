package wizard

import (
	"context"

	"voyago/models"
	"voyago/services/itinerary"
	"voyago/utils"
)

// resolveStopRef turns a stop payload into a destination reference. Catalogue
// IDs are verified against the destination store; custom pins pass through
// with the name the traveler gave them.
func (s *DefaultWizardService) resolveStopRef(ctx context.Context, destinationID, name string) (id, resolvedName string, err error) {
	if models.IsCustomDestination(destinationID) {
		if name == "" {
			name = "Custom location"
		}
		return destinationID, name, nil
	}
	dest, err := s.DestRepo.GetByID(destinationID)
	if err != nil {
		return "", "", err
	}
	if dest == nil {
		return "", "", utils.NewNotFoundError("destination " + destinationID + " not found")
	}
	return dest.ID, dest.Name, nil
}

func (s *DefaultWizardService) recomputeTotals(ctx context.Context, session *models.WizardSession) {
	totals := itinerary.Calculate(ctx, s.Lookup, session.StopIDs())
	session.Totals = &totals
}

// AddStop appends a destination to the itinerary on a new day after the
// current last one, then recomputes the running totals.
func (s *DefaultWizardService) AddStop(ctx context.Context, sessionID string, stop models.Stop) (*models.WizardSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepErr := requireTripDetails(session); stepErr != nil {
		return nil, stepErr
	}
	if !session.TripDetails.MultiStop {
		return nil, utils.NewValidationError(map[string]string{
			"multi_stop": "stops can only be added to a multi-stop trip",
		})
	}

	id, name, err := s.resolveStopRef(ctx, stop.DestinationID, stop.DestinationName)
	if err != nil {
		return nil, err
	}
	stop.DestinationID = id
	stop.DestinationName = name

	maxDay := 0
	for _, existing := range session.Stops {
		if existing.Day > maxDay {
			maxDay = existing.Day
		}
	}
	stop.Day = maxDay + 1

	session.Stops = append(session.Stops, stop)
	session.Step = models.StepStops
	s.recomputeTotals(ctx, session)

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RemoveStop deletes the stop at the given index and renumbers the rest so
// day numbers stay contiguous from 1. An itinerary always keeps at least
// one stop.
func (s *DefaultWizardService) RemoveStop(ctx context.Context, sessionID string, index int) (*models.WizardSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepErr := requireStops(session); stepErr != nil {
		return nil, stepErr
	}

	if index < 0 || index >= len(session.Stops) {
		return nil, utils.NewValidationError(map[string]string{"index": "stop index out of range"})
	}
	if len(session.Stops) == 1 {
		return nil, utils.NewValidationError(map[string]string{
			"stops": "an itinerary must keep at least one stop",
		})
	}

	session.Stops = append(session.Stops[:index], session.Stops[index+1:]...)
	for i := range session.Stops {
		session.Stops[i].Day = i + 1
	}
	session.Step = models.StepStops
	s.recomputeTotals(ctx, session)

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateStop applies the non-nil fields of the update to the stop at the
// given index. Day edits are taken as given; no renumbering happens here.
func (s *DefaultWizardService) UpdateStop(ctx context.Context, sessionID string, index int, update StopUpdate) (*models.WizardSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepErr := requireStops(session); stepErr != nil {
		return nil, stepErr
	}

	if index < 0 || index >= len(session.Stops) {
		return nil, utils.NewValidationError(map[string]string{"index": "stop index out of range"})
	}

	stop := &session.Stops[index]
	if update.DestinationID != nil {
		name := stop.DestinationName
		if update.DestinationName != nil {
			name = *update.DestinationName
		}
		id, resolved, err := s.resolveStopRef(ctx, *update.DestinationID, name)
		if err != nil {
			return nil, err
		}
		stop.DestinationID = id
		stop.DestinationName = resolved
	} else if update.DestinationName != nil {
		stop.DestinationName = *update.DestinationName
	}
	if update.Day != nil {
		if *update.Day < 1 {
			return nil, utils.NewValidationError(map[string]string{"day": "day must be at least 1"})
		}
		stop.Day = *update.Day
	}
	if update.Overnight != nil {
		stop.Overnight = *update.Overnight
	}
	if update.Notes != nil {
		stop.Notes = *update.Notes
	}

	session.Step = models.StepStops
	s.recomputeTotals(ctx, session)

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
