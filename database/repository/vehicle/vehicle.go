package vehicleRepo

import "voyago/models"

// AvailabilityQuery describes the vehicle search used by the wizard's
// vehicle-selection step.
type AvailabilityQuery struct {
	Type        string // optional; one of models.VehicleTypes
	MinCapacity int    // at least the traveler count
	StartDate   string // YYYY-MM-DD; excludes vehicles with overlapping bookings
	Days        int
}

// VehicleRepository defines methods for vehicle data access.
type VehicleRepository interface {
	GetByID(id string) (*models.Vehicle, error)
	GetByDriver(driverID string) ([]models.Vehicle, error)
	// FindAvailable returns active vehicles matching the query.
	FindAvailable(q AvailabilityQuery) ([]models.Vehicle, error)
	Create(vehicle *models.Vehicle) error
	Update(vehicle *models.Vehicle) error
	Delete(id string) error
}
