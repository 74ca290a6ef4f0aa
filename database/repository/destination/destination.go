package destinationRepo

import "voyago/models"

// DestinationRepository defines methods for destination catalogue access.
type DestinationRepository interface {
	// GetByID retrieves a destination by its unique ID.
	GetByID(id string) (*models.Destination, error)
	// GetAll retrieves all destinations, optionally filtered by category.
	GetAll(category string) ([]models.Destination, error)
	// Search retrieves destinations whose name matches the query.
	Search(query string) ([]models.Destination, error)
	// Create inserts a new destination record.
	Create(dest *models.Destination) error
	// Update modifies an existing destination record.
	Update(dest *models.Destination) error
	// Delete removes a destination record by its ID.
	Delete(id string) error
}
