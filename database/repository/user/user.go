package userRepo

import (
	"go.mongodb.org/mongo-driver/bson"

	"voyago/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, or nil when absent.
	GetByEmail(email string) (*models.User, error)
	// GetAll retrieves all users, optionally filtered by role.
	GetAll(role string) ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// SetFields applies a partial update to one user document.
	SetFields(id string, fields bson.M) error
}
