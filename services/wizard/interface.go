package wizard

import (
	"context"

	"go.uber.org/zap"

	bookingRepo "voyago/database/repository/booking"
	destinationRepo "voyago/database/repository/destination"
	tripRepo "voyago/database/repository/trip"
	vehicleRepo "voyago/database/repository/vehicle"
	"voyago/models"
	"voyago/services/itinerary"
	"voyago/services/notification"
	"voyago/services/payment"
)

// StopUpdate carries a partial update for one stop; nil fields are left
// untouched. Updates never renumber days.
type StopUpdate struct {
	DestinationID   *string `json:"destination_id,omitempty"`
	DestinationName *string `json:"destination_name,omitempty"`
	Day             *int    `json:"day,omitempty"`
	Overnight       *bool   `json:"overnight,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// WizardService drives the booking wizard: ordered progression through the
// flow, with each operation gated on the preconditions of its step.
type WizardService interface {
	InitiateSession(ctx context.Context, userID string, dest models.DestinationRef) (*models.WizardSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error)
	SetTripDetails(ctx context.Context, sessionID string, details models.TripDetails) (*models.WizardSession, error)
	AddStop(ctx context.Context, sessionID string, stop models.Stop) (*models.WizardSession, error)
	RemoveStop(ctx context.Context, sessionID string, index int) (*models.WizardSession, error)
	UpdateStop(ctx context.Context, sessionID string, index int, update StopUpdate) (*models.WizardSession, error)
	SetPreferences(ctx context.Context, sessionID string, prefs models.TripPreferences) (*models.WizardSession, error)
	VehicleOptions(ctx context.Context, sessionID string) ([]models.Vehicle, error)
	SelectVehicle(ctx context.Context, sessionID, vehicleID string) (*models.WizardSession, error)
	SetPaymentMethod(ctx context.Context, sessionID, method string, card *models.CardDetails) (*models.WizardSession, error)
	ConfirmBooking(ctx context.Context, sessionID string) (*models.Booking, error)
	CancelSession(ctx context.Context, sessionID string) error
}

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Store       SessionStore
	DestRepo    destinationRepo.DestinationRepository
	VehicleRepo vehicleRepo.VehicleRepository
	TripRepo    tripRepo.TripRepository
	BookingRepo bookingRepo.BookingRepository
	Lookup      itinerary.DistanceLookup
	Payments    payment.Processor
	Notifier    notification.NotificationService
	Logger      *zap.Logger
	Currency    string
}
