package driver

import (
	"context"

	userRepo "voyago/database/repository/user"
	vehicleRepo "voyago/database/repository/vehicle"
	"voyago/models"
	"voyago/services/user"
)

// DriverService runs the multi-step driver onboarding flow and day-to-day
// driver account operations. Registration state lives in the auth cache
// until the final step creates the account and vehicle.
type DriverService interface {
	InitiateRegistration(ctx context.Context, basic models.DriverBasicData) (string, error)
	VerifyRegistrationOTP(ctx context.Context, tempID, providedOTP string) (*models.DriverRegistrationSession, error)
	SubmitDocuments(ctx context.Context, tempID string, docs models.DriverDocuments) (*models.DriverRegistrationSession, error)
	FinalizeRegistration(ctx context.Context, tempID string, vehicle models.Vehicle) (*user.AuthResponse, error)
	CancelRegistration(ctx context.Context, tempID string) error

	GetDriverVehicles(driverID string) ([]models.Vehicle, error)
	AddVehicle(ctx context.Context, driverID string, vehicle models.Vehicle) (*models.Vehicle, error)
	SetVehicleActive(ctx context.Context, driverID, vehicleID string, active bool) error
}

// DefaultDriverService is the production implementation.
type DefaultDriverService struct {
	Users    userRepo.UserRepository
	Vehicles vehicleRepo.VehicleRepository
}
