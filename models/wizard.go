package models

import "time"

// WizardStep identifies how far a booking wizard session has progressed.
// Steps only ever advance; an operation attempted ahead of its
// preconditions is answered with the earliest step able to supply them.
type WizardStep string

const (
	StepDestination WizardStep = "destination"
	StepTripDetails WizardStep = "trip_details"
	StepStops       WizardStep = "stops"
	StepPreferences WizardStep = "preferences"
	StepVehicle     WizardStep = "vehicle"
	StepPayment     WizardStep = "payment"
	StepConfirmed   WizardStep = "confirmed"
)

// WizardSession holds all state accumulated across one booking wizard run.
// It lives in Redis for the duration of the run and is deleted on
// confirmation or explicit cancellation; it is never shared across users.
type WizardSession struct {
	SessionID   string            `json:"sessionId"`
	UserID      string            `json:"userId"`
	Step        WizardStep        `json:"step"`
	Destination *DestinationRef   `json:"destination,omitempty"`
	TripDetails *TripDetails      `json:"tripDetails,omitempty"`
	Stops       []Stop            `json:"stops,omitempty"`
	Preferences *TripPreferences  `json:"preferences,omitempty"`
	Candidates  []Vehicle         `json:"candidates,omitempty"`
	VehicleID   string            `json:"vehicleId,omitempty"`
	Payment     *PaymentSelection `json:"payment,omitempty"`
	Invoice     *Invoice          `json:"invoice,omitempty"` // set once the payment is captured
	Totals      *ItineraryTotals  `json:"totals,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// SelectedVehicle returns the chosen vehicle from the candidate list.
func (s *WizardSession) SelectedVehicle() *Vehicle {
	for i := range s.Candidates {
		if s.Candidates[i].ID == s.VehicleID {
			return &s.Candidates[i]
		}
	}
	return nil
}

// StopIDs returns the ordered destination identifiers of the stop list.
func (s *WizardSession) StopIDs() []string {
	ids := make([]string, len(s.Stops))
	for i, st := range s.Stops {
		ids[i] = st.DestinationID
	}
	return ids
}
