package wizard

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingRepo "voyago/database/repository/booking"
	vehicleRepo "voyago/database/repository/vehicle"
	"voyago/models"
	"voyago/services/itinerary"
	"voyago/utils"
)

// memoryStore is an in-memory SessionStore for tests.
type memoryStore struct {
	sessions map[string]models.WizardSession
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]models.WizardSession)}
}

func (m *memoryStore) Save(ctx context.Context, session *models.WizardSession) error {
	m.sessions[session.SessionID] = *session
	return nil
}

func (m *memoryStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (m *memoryStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

type fakeDestRepo struct {
	destinations map[string]models.Destination
}

func (f *fakeDestRepo) GetByID(id string) (*models.Destination, error) {
	d, ok := f.destinations[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}
func (f *fakeDestRepo) GetAll(category string) ([]models.Destination, error) { return nil, nil }
func (f *fakeDestRepo) Search(query string) ([]models.Destination, error)    { return nil, nil }
func (f *fakeDestRepo) Create(dest *models.Destination) error                { return nil }
func (f *fakeDestRepo) Update(dest *models.Destination) error                { return nil }
func (f *fakeDestRepo) Delete(id string) error                               { return nil }

type fakeVehicleRepo struct {
	available []models.Vehicle
}

func (f *fakeVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	for _, v := range f.available {
		if v.ID == id {
			copied := v
			return &copied, nil
		}
	}
	return nil, nil
}
func (f *fakeVehicleRepo) GetByDriver(driverID string) ([]models.Vehicle, error) { return nil, nil }
func (f *fakeVehicleRepo) FindAvailable(q vehicleRepo.AvailabilityQuery) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for _, v := range f.available {
		if q.Type != "" && v.Type != q.Type {
			continue
		}
		if v.Capacity < q.MinCapacity {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
func (f *fakeVehicleRepo) Create(vehicle *models.Vehicle) error { return nil }
func (f *fakeVehicleRepo) Update(vehicle *models.Vehicle) error { return nil }
func (f *fakeVehicleRepo) Delete(id string) error               { return nil }

type fakeTripRepo struct {
	created []models.Trip
	failing bool
}

func (f *fakeTripRepo) GetByID(id string) (*models.Trip, error)          { return nil, nil }
func (f *fakeTripRepo) GetByUser(userID string) ([]models.Trip, error)   { return nil, nil }
func (f *fakeTripRepo) Update(trip *models.Trip) error                   { return nil }
func (f *fakeTripRepo) Delete(id string) error                           { return nil }
func (f *fakeTripRepo) Create(trip *models.Trip) error {
	if f.failing {
		return errors.New("trip store down")
	}
	f.created = append(f.created, *trip)
	return nil
}

type fakeBookingRepo struct {
	created []models.Booking
	failing bool
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error)               { return nil, nil }
func (f *fakeBookingRepo) GetByReference(reference string) (*models.Booking, error) { return nil, nil }
func (f *fakeBookingRepo) GetByUser(userID string) ([]models.Booking, error)        { return nil, nil }
func (f *fakeBookingRepo) GetByDriver(driverID string) ([]models.Booking, error)    { return nil, nil }
func (f *fakeBookingRepo) UpdateStatus(id, status string) error                     { return nil }
func (f *fakeBookingRepo) Report(period bookingRepo.ReportPeriod) (*bookingRepo.BookingReport, error) {
	return nil, nil
}
func (f *fakeBookingRepo) Create(booking *models.Booking) error {
	if f.failing {
		return errors.New("booking store down")
	}
	f.created = append(f.created, *booking)
	return nil
}

type fakeProcessor struct {
	failing  bool
	requests []models.PaymentRequest
}

func (f *fakeProcessor) Tokenize(ctx context.Context, card models.CardDetails) (string, error) {
	return "pm_test_123", nil
}

func (f *fakeProcessor) Process(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	f.requests = append(f.requests, req)
	if f.failing {
		return nil, errors.New("card declined")
	}
	status := models.InvoiceStatusPaid
	if req.Method == models.PaymentMethodCash {
		status = models.InvoiceStatusDueOnArrival
	}
	return &models.Invoice{
		InvoiceID: "inv-1",
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    status,
	}, nil
}

type fixedLookup struct {
	leg itinerary.LegEstimate
}

func (f *fixedLookup) Distance(ctx context.Context, fromID, toID string) (*itinerary.LegEstimate, error) {
	leg := f.leg
	return &leg, nil
}

type testEnv struct {
	svc      *DefaultWizardService
	store    *memoryStore
	trips    *fakeTripRepo
	bookings *fakeBookingRepo
	payments *fakeProcessor
}

func newTestEnv() *testEnv {
	store := newMemoryStore()
	trips := &fakeTripRepo{}
	bookings := &fakeBookingRepo{}
	payments := &fakeProcessor{}

	destRepo := &fakeDestRepo{destinations: map[string]models.Destination{
		"galle-fort": {ID: "galle-fort", Name: "Galle Fort", Location: "Galle", Category: "heritage"},
		"mirissa":    {ID: "mirissa", Name: "Mirissa Beach", Location: "Mirissa", Category: "beach"},
		"ella":       {ID: "ella", Name: "Ella", Location: "Ella", Category: "scenic"},
	}}
	vehicles := &fakeVehicleRepo{available: []models.Vehicle{
		{ID: "veh-1", DriverID: "drv-1", Type: models.VehicleTypeVan, Capacity: 6, PricePerDay: 12000, Active: true},
		{ID: "veh-2", DriverID: "drv-2", Type: models.VehicleTypeVan, Capacity: 8, PricePerDay: 15000, Active: true},
	}}

	svc := &DefaultWizardService{
		Store:       store,
		DestRepo:    destRepo,
		VehicleRepo: vehicles,
		TripRepo:    trips,
		BookingRepo: bookings,
		Lookup:      &fixedLookup{leg: itinerary.LegEstimate{DistanceKm: 120, DurationHours: 2.5}},
		Payments:    payments,
		Logger:      zap.NewNop(),
		Currency:    "lkr",
	}
	return &testEnv{svc: svc, store: store, trips: trips, bookings: bookings, payments: payments}
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

// advance walks a session to the payment step.
func (e *testEnv) advanceToPayment(t *testing.T) *models.WizardSession {
	t.Helper()
	ctx := context.Background()

	session, err := e.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)

	session, err = e.svc.SetTripDetails(ctx, session.SessionID, models.TripDetails{
		Date: tomorrow(), Time: "08:00", Travelers: 4, Pickup: "Colombo Airport", MultiStop: true,
	})
	require.NoError(t, err)

	session, err = e.svc.AddStop(ctx, session.SessionID, models.Stop{DestinationID: "mirissa"})
	require.NoError(t, err)

	session, err = e.svc.SetPreferences(ctx, session.SessionID, models.TripPreferences{
		VehicleType: models.VehicleTypeVan, BudgetTier: models.BudgetTierStandard,
	})
	require.NoError(t, err)

	_, err = e.svc.VehicleOptions(ctx, session.SessionID)
	require.NoError(t, err)

	session, err = e.svc.SelectVehicle(ctx, session.SessionID, "veh-1")
	require.NoError(t, err)
	return session
}

func TestInitiateSessionVerifiesCatalogueDestination(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)
	assert.Equal(t, models.StepDestination, session.Step)
	assert.Equal(t, "Galle Fort", session.Destination.Name)

	_, err = env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "atlantis"})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.CodeNotFound, svcErr.Code)
}

func TestInitiateSessionAcceptsCustomPin(t *testing.T) {
	env := newTestEnv()

	dest := NewCustomDestinationRef("Secret Beach", "Somewhere south", models.GeoPoint{Lat: 5.9, Lng: 80.4})
	session, err := env.svc.InitiateSession(context.Background(), "user-1", dest)
	require.NoError(t, err)
	assert.True(t, models.IsCustomDestination(session.Destination.ID))
	assert.Equal(t, "Secret Beach", session.Destination.Name)
}

func TestOperationsRedirectToEarliestMissingStep(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)

	// Preferences before trip details must point back at trip_details.
	_, err = env.svc.SetPreferences(ctx, session.SessionID, models.TripPreferences{
		VehicleType: models.VehicleTypeVan, BudgetTier: models.BudgetTierBudget,
	})
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, models.StepTripDetails, stepErr.Redirect)

	// Confirmation on a fresh session points at the first missing step.
	_, err = env.svc.ConfirmBooking(ctx, session.SessionID)
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, models.StepTripDetails, stepErr.Redirect)

	// An unknown session redirects to the start of the flow.
	_, err = env.svc.SetTripDetails(ctx, "", models.TripDetails{})
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, models.StepDestination, stepErr.Redirect)
}

func TestSetTripDetailsValidationLeavesSessionUntouched(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)

	_, err = env.svc.SetTripDetails(ctx, session.SessionID, models.TripDetails{
		Date: "not-a-date", Time: "08:00", Travelers: 0,
	})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.CodeValidation, svcErr.Code)
	assert.Contains(t, svcErr.Fields, "date")
	assert.Contains(t, svcErr.Fields, "travelers")

	stored, err := env.svc.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, stored.TripDetails, "failed validation must not mutate the session")
	assert.Equal(t, models.StepDestination, stored.Step)
}

func TestMultiStopSeedsDestinationAsFirstStop(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)

	session, err = env.svc.SetTripDetails(ctx, session.SessionID, models.TripDetails{
		Date: tomorrow(), Time: "08:00", Travelers: 2, MultiStop: true,
	})
	require.NoError(t, err)

	require.Len(t, session.Stops, 1)
	assert.Equal(t, "galle-fort", session.Stops[0].DestinationID)
	assert.Equal(t, 1, session.Stops[0].Day)
}

func TestAddStopAssignsNextDayAndRecomputesTotals(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)
	session, err = env.svc.SetTripDetails(ctx, session.SessionID, models.TripDetails{
		Date: tomorrow(), Time: "08:00", Travelers: 2, MultiStop: true,
	})
	require.NoError(t, err)

	session, err = env.svc.AddStop(ctx, session.SessionID, models.Stop{DestinationID: "mirissa"})
	require.NoError(t, err)
	session, err = env.svc.AddStop(ctx, session.SessionID, models.Stop{DestinationID: "ella"})
	require.NoError(t, err)

	require.Len(t, session.Stops, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{session.Stops[0].Day, session.Stops[1].Day, session.Stops[2].Day})

	require.NotNil(t, session.Totals)
	assert.InDelta(t, 240, session.Totals.DistanceKm, 1e-9)
	assert.InDelta(t, 240*itinerary.RatePerKm, session.Totals.EstimatedCost, 1e-9)
}

func TestRemoveStopRenumbersAndKeepsAtLeastOne(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)
	session, err = env.svc.SetTripDetails(ctx, session.SessionID, models.TripDetails{
		Date: tomorrow(), Time: "08:00", Travelers: 2, MultiStop: true,
	})
	require.NoError(t, err)
	session, err = env.svc.AddStop(ctx, session.SessionID, models.Stop{DestinationID: "mirissa"})
	require.NoError(t, err)
	session, err = env.svc.AddStop(ctx, session.SessionID, models.Stop{DestinationID: "ella"})
	require.NoError(t, err)

	session, err = env.svc.RemoveStop(ctx, session.SessionID, 1)
	require.NoError(t, err)
	require.Len(t, session.Stops, 2)
	assert.Equal(t, "galle-fort", session.Stops[0].DestinationID)
	assert.Equal(t, "ella", session.Stops[1].DestinationID)
	assert.Equal(t, 1, session.Stops[0].Day)
	assert.Equal(t, 2, session.Stops[1].Day, "days renumber contiguously after removal")

	session, err = env.svc.RemoveStop(ctx, session.SessionID, 1)
	require.NoError(t, err)

	_, err = env.svc.RemoveStop(ctx, session.SessionID, 0)
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.CodeValidation, svcErr.Code, "the last stop cannot be removed")
}

func TestUpdateStopAppliesPartialFields(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)
	session, err = env.svc.SetTripDetails(ctx, session.SessionID, models.TripDetails{
		Date: tomorrow(), Time: "08:00", Travelers: 2, MultiStop: true,
	})
	require.NoError(t, err)
	session, err = env.svc.AddStop(ctx, session.SessionID, models.Stop{DestinationID: "mirissa"})
	require.NoError(t, err)

	overnight := true
	notes := "whale watching at dawn"
	session, err = env.svc.UpdateStop(ctx, session.SessionID, 1, StopUpdate{
		Overnight: &overnight,
		Notes:     &notes,
	})
	require.NoError(t, err)

	assert.True(t, session.Stops[1].Overnight)
	assert.Equal(t, notes, session.Stops[1].Notes)
	assert.Equal(t, "mirissa", session.Stops[1].DestinationID, "untouched fields stay put")
	assert.Equal(t, 2, session.Stops[1].Day)
}

func TestSetPreferencesRejectsUnknownEnums(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)
	session, err = env.svc.SetTripDetails(ctx, session.SessionID, models.TripDetails{
		Date: tomorrow(), Time: "08:00", Travelers: 2,
	})
	require.NoError(t, err)

	_, err = env.svc.SetPreferences(ctx, session.SessionID, models.TripPreferences{
		VehicleType: "spaceship", BudgetTier: "imperial",
	})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Contains(t, svcErr.Fields, "vehicle_type")
	assert.Contains(t, svcErr.Fields, "budget_tier")
}

func TestSelectVehicleRequiresOfferedCandidate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)
	session, err = env.svc.SetTripDetails(ctx, session.SessionID, models.TripDetails{
		Date: tomorrow(), Time: "08:00", Travelers: 4,
	})
	require.NoError(t, err)
	session, err = env.svc.SetPreferences(ctx, session.SessionID, models.TripPreferences{
		VehicleType: models.VehicleTypeVan, BudgetTier: models.BudgetTierStandard,
	})
	require.NoError(t, err)

	// Selecting before fetching options is premature.
	_, err = env.svc.SelectVehicle(ctx, session.SessionID, "veh-1")
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, models.StepVehicle, stepErr.Redirect)

	options, err := env.svc.VehicleOptions(ctx, session.SessionID)
	require.NoError(t, err)
	require.Len(t, options, 2)

	_, err = env.svc.SelectVehicle(ctx, session.SessionID, "veh-99")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.CodeValidation, svcErr.Code)

	session, err = env.svc.SelectVehicle(ctx, session.SessionID, "veh-2")
	require.NoError(t, err)
	assert.Equal(t, "veh-2", session.VehicleID)

	// Selection is exclusive; choosing again replaces the earlier pick.
	session, err = env.svc.SelectVehicle(ctx, session.SessionID, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, "veh-1", session.VehicleID)
}

func TestSetTripDetailsChangeInvalidatesVehicleSelection(t *testing.T) {
	env := newTestEnv()
	session := env.advanceToPayment(t)
	ctx := context.Background()

	require.Equal(t, "veh-1", session.VehicleID)

	// Bumping the head count past the chosen vehicle's capacity must drop
	// the selection along with the candidate list it came from.
	session, err := env.svc.SetTripDetails(ctx, session.SessionID, models.TripDetails{
		Date: tomorrow(), Time: "08:00", Travelers: 10, Pickup: "Colombo Airport", MultiStop: true,
	})
	require.NoError(t, err)
	assert.Empty(t, session.VehicleID)
	assert.Empty(t, session.Candidates)

	_, err = env.svc.SelectVehicle(ctx, session.SessionID, "veh-1")
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, models.StepVehicle, stepErr.Redirect)
}

func TestSetTripDetailsUnchangedBasicsKeepVehicleSelection(t *testing.T) {
	env := newTestEnv()
	session := env.advanceToPayment(t)

	// Same travelers and date; only the pickup note changes.
	session, err := env.svc.SetTripDetails(context.Background(), session.SessionID, models.TripDetails{
		Date: tomorrow(), Time: "08:00", Travelers: 4, Pickup: "Negombo", MultiStop: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "veh-1", session.VehicleID)
	assert.NotEmpty(t, session.Candidates)
}

func TestSetPaymentMethodCardGate(t *testing.T) {
	env := newTestEnv()
	session := env.advanceToPayment(t)
	ctx := context.Background()

	_, err := env.svc.SetPaymentMethod(ctx, session.SessionID, models.PaymentMethodCard, &models.CardDetails{
		Number: "1234", HolderName: "A Perera", Expiry: "13/20", CVV: "12",
	})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Contains(t, svcErr.Fields, "number")
	assert.Contains(t, svcErr.Fields, "expiry")
	assert.Contains(t, svcErr.Fields, "cvv")

	session, err = env.svc.SetPaymentMethod(ctx, session.SessionID, models.PaymentMethodCard, &models.CardDetails{
		Number: "4111 1111 1111 1111", HolderName: "A Perera", Expiry: "12/30", CVV: "123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCard, session.Payment.Method)
	assert.Equal(t, "1111", session.Payment.CardLast4)
	assert.Equal(t, "pm_test_123", session.Payment.PaymentMethodID)
}

func TestSetPaymentMethodCashBypassesCardValidation(t *testing.T) {
	env := newTestEnv()
	session := env.advanceToPayment(t)

	session, err := env.svc.SetPaymentMethod(context.Background(), session.SessionID, models.PaymentMethodCash, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCash, session.Payment.Method)
	assert.Empty(t, session.Payment.CardLast4)
}

func TestSetPaymentMethodRejectsUnknownMethod(t *testing.T) {
	env := newTestEnv()
	session := env.advanceToPayment(t)

	_, err := env.svc.SetPaymentMethod(context.Background(), session.SessionID, "barter", nil)
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.CodeValidation, svcErr.Code)
}

func TestConfirmBookingHappyPath(t *testing.T) {
	env := newTestEnv()
	session := env.advanceToPayment(t)
	ctx := context.Background()

	session, err := env.svc.SetPaymentMethod(ctx, session.SessionID, models.PaymentMethodCash, nil)
	require.NoError(t, err)

	booking, err := env.svc.ConfirmBooking(ctx, session.SessionID)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^VG-[A-Z2-7]{8}$`), booking.Reference)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "veh-1", booking.VehicleID)
	assert.Equal(t, "drv-1", booking.DriverID)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, models.InvoiceStatusDueOnArrival, booking.PaymentStatus)
	assert.Equal(t, "lkr", booking.Currency)

	// One 120 km leg: estimate 6000, one billable day of the van at 12000.
	assert.InDelta(t, 120*itinerary.RatePerKm+12000, booking.Amount, 1e-9)
	assert.Equal(t, 1, booking.Days)

	require.Len(t, env.trips.created, 1)
	assert.Equal(t, booking.TripID, env.trips.created[0].ID)
	require.Len(t, env.bookings.created, 1)

	// Confirmation consumes the session.
	_, err = env.svc.GetSession(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfirmBookingPaymentFailureLeavesSessionIntact(t *testing.T) {
	env := newTestEnv()
	session := env.advanceToPayment(t)
	ctx := context.Background()

	_, err := env.svc.SetPaymentMethod(ctx, session.SessionID, models.PaymentMethodCash, nil)
	require.NoError(t, err)

	env.payments.failing = true
	_, err = env.svc.ConfirmBooking(ctx, session.SessionID)
	require.Error(t, err)

	stored, err := env.svc.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.NotNil(t, stored.Payment, "a failed confirmation must not lose wizard state")
	assert.Empty(t, env.bookings.created)
	assert.Empty(t, env.trips.created)
}

func TestConfirmBookingPersistenceFailureLeavesSessionIntact(t *testing.T) {
	env := newTestEnv()
	session := env.advanceToPayment(t)
	ctx := context.Background()

	_, err := env.svc.SetPaymentMethod(ctx, session.SessionID, models.PaymentMethodCash, nil)
	require.NoError(t, err)

	env.bookings.failing = true
	_, err = env.svc.ConfirmBooking(ctx, session.SessionID)
	require.Error(t, err)

	_, err = env.svc.GetSession(ctx, session.SessionID)
	require.NoError(t, err, "session survives a storage failure so the traveler can retry")
}

func TestConfirmBookingRetryAfterPersistenceFailureChargesOnce(t *testing.T) {
	env := newTestEnv()
	session := env.advanceToPayment(t)
	ctx := context.Background()

	_, err := env.svc.SetPaymentMethod(ctx, session.SessionID, models.PaymentMethodCash, nil)
	require.NoError(t, err)

	env.trips.failing = true
	_, err = env.svc.ConfirmBooking(ctx, session.SessionID)
	require.Error(t, err)
	require.Len(t, env.payments.requests, 1)

	stored, err := env.svc.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, stored.Invoice, "the captured charge is recorded on the session")

	env.trips.failing = false
	booking, err := env.svc.ConfirmBooking(ctx, session.SessionID)
	require.NoError(t, err)

	assert.Len(t, env.payments.requests, 1, "a retry settles against the recorded invoice")
	assert.InDelta(t, stored.Invoice.Amount, booking.Amount, 1e-9)
	require.Len(t, env.bookings.created, 1)

	_, err = env.svc.GetSession(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCancelSessionDropsState(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	session, err := env.svc.InitiateSession(ctx, "user-1", models.DestinationRef{ID: "galle-fort"})
	require.NoError(t, err)

	require.NoError(t, env.svc.CancelSession(ctx, session.SessionID))

	_, err = env.svc.GetSession(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBookingReferencesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := newBookingReference()
		require.Regexp(t, regexp.MustCompile(`^VG-[A-Z2-7]{8}$`), ref, fmt.Sprintf("iteration %d", i))
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
