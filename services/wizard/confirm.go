package wizard

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyago/models"
)

const bookingReferencePrefix = "VG-"

// newBookingReference generates the short code printed on the traveler's
// confirmation: VG- followed by eight characters from [A-Z2-7].
func newBookingReference() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to a uuid-derived code rather than crash mid-booking.
		return bookingReferencePrefix + base32.StdEncoding.EncodeToString([]byte(uuid.New().String()))[:8]
	}
	return bookingReferencePrefix + base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
}

// ConfirmBooking finalizes a wizard run: it recomputes the itinerary
// totals, charges via the payment processor, persists the trip and the
// booking, and only then deletes the session. Any failure before deletion
// leaves the session intact so the traveler can retry; a successful charge
// is recorded on the session first, so the retry settles against the
// existing invoice instead of paying again.
func (s *DefaultWizardService) ConfirmBooking(ctx context.Context, sessionID string) (*models.Booking, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepErr := requirePayment(session); stepErr != nil {
		return nil, stepErr
	}

	vehicle := session.SelectedVehicle()
	if vehicle == nil {
		record, err := s.VehicleRepo.GetByID(session.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("failed to load selected vehicle: %w", err)
		}
		if record == nil {
			return nil, missingStep(models.StepVehicle, "selected vehicle no longer available")
		}
		vehicle = record
	}

	// Totals are always recomputed from the stop list at confirmation so a
	// stale cached figure can never be billed.
	s.recomputeTotals(ctx, session)
	totals := *session.Totals

	days := totals.Days
	if days < 1 {
		days = 1
	}
	amount := totals.EstimatedCost + vehicle.PricePerDay*float64(days)
	amount = math.Round(amount*100) / 100

	// A session that already carries a captured invoice is a retry after a
	// persistence failure; the charge must not be made again.
	invoice := session.Invoice
	if invoice == nil {
		invoice, err = s.Payments.Process(ctx, models.PaymentRequest{
			UserID:          session.UserID,
			Amount:          amount,
			Currency:        s.Currency,
			Method:          session.Payment.Method,
			PaymentMethodID: session.Payment.PaymentMethodID,
		})
		if err != nil {
			s.Logger.Warn("payment failed at confirmation",
				zap.String("sessionID", sessionID), zap.Error(err))
			return nil, err
		}
		session.Invoice = invoice
		if err := s.save(ctx, session); err != nil {
			s.Logger.Warn("failed to record captured invoice on session",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}

	now := time.Now()
	trip := &models.Trip{
		ID:            uuid.New().String(),
		UserID:        session.UserID,
		DestinationID: session.Destination.ID,
		Date:          session.TripDetails.Date,
		Time:          session.TripDetails.Time,
		Travelers:     session.TripDetails.Travelers,
		Pickup:        session.TripDetails.Pickup,
		Dropoff:       session.TripDetails.Dropoff,
		Notes:         session.TripDetails.Notes,
		MultiStop:     session.TripDetails.MultiStop,
		Stops:         session.Stops,
		Preferences:   *session.Preferences,
		Totals:        totals,
		CreatedAt:     now,
	}
	if err := s.TripRepo.Create(trip); err != nil {
		return nil, fmt.Errorf("failed to persist trip: %w", err)
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		Reference:     newBookingReference(),
		UserID:        session.UserID,
		DriverID:      vehicle.DriverID,
		VehicleID:     vehicle.ID,
		TripID:        trip.ID,
		StartDate:     session.TripDetails.Date,
		Days:          days,
		Amount:        invoice.Amount,
		Currency:      s.Currency,
		PaymentMethod: invoice.Method,
		PaymentStatus: invoice.Status,
		Status:        models.BookingStatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.BookingRepo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	// The booking exists; losing the session delete only means the TTL
	// cleans it up later.
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		s.Logger.Warn("failed to clear confirmed session",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyBookingConfirmed(ctx, booking); err != nil {
			s.Logger.Warn("booking confirmation notification failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
		if err := s.Notifier.ScheduleTripReminder(ctx, booking); err != nil {
			s.Logger.Warn("trip reminder scheduling failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	s.Logger.Info("booking confirmed",
		zap.String("reference", booking.Reference),
		zap.String("userID", booking.UserID),
		zap.Float64("amount", amount))

	return booking, nil
}
