package user

import (
	"context"

	userRepo "voyago/database/repository/user"
	"voyago/models"
)

// RegistrationRequest carries the signup form.
type RegistrationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
}

// AuthResponse contains the account's ID, token, and profile details.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// UserService manages tourist accounts and authentication.
type UserService interface {
	// Registration and email verification.
	RegisterUser(ctx context.Context, req RegistrationRequest) (*AuthResponse, error)
	VerifyEmailOTP(ctx context.Context, userID, providedOTP string) error
	ResendEmailOTP(ctx context.Context, userID string) error

	// Authentication.
	AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error)
	SignOut(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	// Account management.
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, updates ProfileUpdate) (*models.User, error)
	RegisterFCMToken(ctx context.Context, userID, token string) error
	DeleteUser(ctx context.Context, userID string) error

	// Admin.
	GetAllUsers(role string) ([]models.User, error)
}

// ProfileUpdate carries a partial profile edit; nil fields are left alone.
type ProfileUpdate struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
