package tripRepo

import "voyago/models"

// TripRepository defines methods for trip data access.
type TripRepository interface {
	GetByID(id string) (*models.Trip, error)
	GetByUser(userID string) ([]models.Trip, error)
	Create(trip *models.Trip) error
	Update(trip *models.Trip) error
	Delete(id string) error
}
