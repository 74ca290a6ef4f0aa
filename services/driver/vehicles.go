package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"voyago/models"
	"voyago/utils"
)

func (s *DefaultDriverService) GetDriverVehicles(driverID string) ([]models.Vehicle, error) {
	return s.Vehicles.GetByDriver(driverID)
}

// AddVehicle registers an additional vehicle under an existing driver. New
// vehicles start inactive until the driver activates them.
func (s *DefaultDriverService) AddVehicle(ctx context.Context, driverID string, vehicle models.Vehicle) (*models.Vehicle, error) {
	if errs := validateVehicle(vehicle); errs.Any() {
		return nil, utils.NewValidationError(errs)
	}

	now := time.Now()
	vehicle.ID = uuid.New().String()
	vehicle.DriverID = driverID
	vehicle.Active = false
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	if err := s.Vehicles.Create(&vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return &vehicle, nil
}

// SetVehicleActive toggles whether a vehicle appears in wizard candidate
// lists. Only the owning driver may change it.
func (s *DefaultDriverService) SetVehicleActive(ctx context.Context, driverID, vehicleID string, active bool) error {
	vehicle, err := s.Vehicles.GetByID(vehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return utils.NewNotFoundError("vehicle not found")
	}
	if vehicle.DriverID != driverID {
		return utils.NewUnauthorizedError("vehicle belongs to another driver")
	}

	vehicle.Active = active
	vehicle.UpdatedAt = time.Now()
	return s.Vehicles.Update(vehicle)
}
