package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	vehicleRepo "voyago/database/repository/vehicle"
	"voyago/models"
	"voyago/utils"
)

// Precondition checks. Each returns the earliest step that can supply the
// missing data, which the client uses as a redirect target.

func requireDestination(s *models.WizardSession) *StepError {
	if s.Destination == nil {
		return missingStep(models.StepDestination, "no destination selected")
	}
	return nil
}

func requireTripDetails(s *models.WizardSession) *StepError {
	if err := requireDestination(s); err != nil {
		return err
	}
	if s.TripDetails == nil {
		return missingStep(models.StepTripDetails, "trip details not entered")
	}
	return nil
}

func requireStops(s *models.WizardSession) *StepError {
	if err := requireTripDetails(s); err != nil {
		return err
	}
	if s.TripDetails.MultiStop && len(s.Stops) == 0 {
		return missingStep(models.StepStops, "itinerary has no stops")
	}
	return nil
}

func requirePreferences(s *models.WizardSession) *StepError {
	if err := requireStops(s); err != nil {
		return err
	}
	if s.Preferences == nil {
		return missingStep(models.StepPreferences, "preferences not set")
	}
	return nil
}

func requireVehicle(s *models.WizardSession) *StepError {
	if err := requirePreferences(s); err != nil {
		return err
	}
	if s.VehicleID == "" {
		return missingStep(models.StepVehicle, "no vehicle selected")
	}
	return nil
}

func requirePayment(s *models.WizardSession) *StepError {
	if err := requireVehicle(s); err != nil {
		return err
	}
	if s.Payment == nil {
		return missingStep(models.StepPayment, "payment method not chosen")
	}
	return nil
}

func validateTripDetails(details models.TripDetails) utils.FieldErrors {
	errs := utils.FieldErrors{}

	date, ok := utils.ParseDate(details.Date)
	if !ok {
		errs["date"] = "date must be a valid calendar date (YYYY-MM-DD)"
	} else if details.MultiStop {
		// Multi-stop trips need lead time to arrange a driver; the start
		// date may not be in the past.
		today := time.Now().Truncate(24 * time.Hour)
		if date.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)) {
			errs["date"] = "start date must be today or later"
		}
	}

	if !utils.IsValidTimeOfDay(details.Time) {
		errs["time"] = "time must be HH:MM"
	}
	if details.Travelers < 1 {
		errs["travelers"] = "at least one traveler is required"
	}
	return errs
}

// SetTripDetails records the trip basics. The session is not touched until
// every field passes validation. Enabling multi-stop seeds the itinerary
// with the selected destination as the day-1 stop. Changing the traveler
// count or start date drops any fetched vehicle candidates along with the
// selection made from them.
func (s *DefaultWizardService) SetTripDetails(ctx context.Context, sessionID string, details models.TripDetails) (*models.WizardSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepErr := requireDestination(session); stepErr != nil {
		return nil, stepErr
	}

	if errs := validateTripDetails(details); errs.Any() {
		return nil, utils.NewValidationError(errs)
	}

	prev := session.TripDetails
	session.TripDetails = &details
	if prev != nil && (prev.Travelers != details.Travelers || prev.Date != details.Date) {
		// The candidate list was computed for the old head count and date.
		session.Candidates = nil
		session.VehicleID = ""
	}
	if details.MultiStop && len(session.Stops) == 0 {
		session.Stops = []models.Stop{{
			DestinationID:   session.Destination.ID,
			DestinationName: session.Destination.Name,
			Day:             1,
		}}
	}
	if !details.MultiStop {
		session.Stops = nil
	}
	session.Step = models.StepTripDetails
	session.Totals = nil

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetPreferences records vehicle-type and budget-tier choices. Both come
// from closed sets; the optional guide/accommodation flags and notes pass
// through unchecked.
func (s *DefaultWizardService) SetPreferences(ctx context.Context, sessionID string, prefs models.TripPreferences) (*models.WizardSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepErr := requireStops(session); stepErr != nil {
		return nil, stepErr
	}

	errs := utils.FieldErrors{}
	if !models.VehicleTypes[prefs.VehicleType] {
		errs["vehicle_type"] = "unknown vehicle type"
	}
	if !models.BudgetTiers[prefs.BudgetTier] {
		errs["budget_tier"] = "unknown budget tier"
	}
	if errs.Any() {
		return nil, utils.NewValidationError(errs)
	}

	session.Preferences = &prefs
	// A new vehicle-type preference invalidates the old candidate list.
	session.Candidates = nil
	session.VehicleID = ""
	session.Step = models.StepPreferences

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// VehicleOptions returns the candidate vehicles for the session: active,
// matching the preferred type, with capacity for every traveler, and free
// on the trip dates. The list is cached on the session so a later
// selection can be verified against it.
func (s *DefaultWizardService) VehicleOptions(ctx context.Context, sessionID string) ([]models.Vehicle, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepErr := requirePreferences(session); stepErr != nil {
		return nil, stepErr
	}

	days := 1
	if session.Totals != nil && session.Totals.Days > 1 {
		days = session.Totals.Days
	}
	candidates, err := s.VehicleRepo.FindAvailable(vehicleRepo.AvailabilityQuery{
		Type:        session.Preferences.VehicleType,
		MinCapacity: session.TripDetails.Travelers,
		StartDate:   session.TripDetails.Date,
		Days:        days,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle options: %w", err)
	}

	session.Candidates = candidates
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return candidates, nil
}

// SelectVehicle picks one vehicle from the candidate list. Selection is
// exclusive; choosing again replaces the previous choice.
func (s *DefaultWizardService) SelectVehicle(ctx context.Context, sessionID, vehicleID string) (*models.WizardSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepErr := requirePreferences(session); stepErr != nil {
		return nil, stepErr
	}

	if len(session.Candidates) == 0 {
		return nil, missingStep(models.StepVehicle, "no vehicle options fetched")
	}
	found := false
	for _, v := range session.Candidates {
		if v.ID == vehicleID {
			found = true
			break
		}
	}
	if !found {
		return nil, utils.NewValidationError(map[string]string{
			"vehicle": fmt.Sprintf("vehicle %s is not in the offered list", vehicleID),
		})
	}

	session.VehicleID = vehicleID
	session.Step = models.StepVehicle

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Debug("vehicle selected",
		zap.String("sessionID", sessionID), zap.String("vehicleID", vehicleID))
	return session, nil
}

func validateCard(card *models.CardDetails) utils.FieldErrors {
	errs := utils.FieldErrors{}
	if card == nil {
		errs["card"] = "card details are required"
		return errs
	}
	if !utils.IsValidCardNumber(card.Number) {
		errs["number"] = "card number must be 16 digits"
	}
	if strings.TrimSpace(card.HolderName) == "" {
		errs["holder_name"] = "cardholder name is required"
	}
	if !utils.IsValidExpiry(card.Expiry, time.Now()) {
		errs["expiry"] = "expiry must be MM/YY and in the future"
	}
	if !utils.IsValidCVV(card.CVV) {
		errs["cvv"] = "CVV must be 3 or 4 digits"
	}
	return errs
}

// SetPaymentMethod records the payment choice. Card payments gate on the
// card validators; cash bypasses them entirely. Raw card fields are never
// stored, only the last four digits.
func (s *DefaultWizardService) SetPaymentMethod(ctx context.Context, sessionID, method string, card *models.CardDetails) (*models.WizardSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepErr := requireVehicle(session); stepErr != nil {
		return nil, stepErr
	}

	if !models.PaymentMethods[method] {
		return nil, utils.NewValidationError(map[string]string{"method": "unknown payment method"})
	}

	selection := &models.PaymentSelection{Method: method}
	if method == models.PaymentMethodCard {
		if errs := validateCard(card); errs.Any() {
			return nil, utils.NewValidationError(errs)
		}
		token, err := s.Payments.Tokenize(ctx, *card)
		if err != nil {
			return nil, err
		}
		digits := strings.Join(strings.Fields(card.Number), "")
		selection.CardLast4 = digits[len(digits)-4:]
		selection.PaymentMethodID = token
	}

	session.Payment = selection
	session.Step = models.StepPayment

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
