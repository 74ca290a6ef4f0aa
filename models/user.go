// models/user.go
package models

import "time"

// Account roles.
const (
	RoleTourist = "tourist"
	RoleDriver  = "driver"
	RoleAdmin   = "admin"
)

// User represents a platform account: tourist, driver or admin.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	PasswordHash  string    `bson:"password_hash" json:"-"`
	Phone         string    `bson:"phone" json:"phone"`
	Role          string    `bson:"role" json:"role"`
	DateOfBirth   string    `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"` // YYYY-MM-DD
	ProfileImage  string    `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	EmailVerified bool      `bson:"email_verified" json:"email_verified"`
	TokenHash     string    `bson:"token_hash,omitempty" json:"-"`
	FCMToken      string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`

	// Driver-only fields, populated once driver registration completes.
	LicenseImage string `bson:"license_image,omitempty" json:"license_image,omitempty"`
	NICImage     string `bson:"nic_image,omitempty" json:"nic_image,omitempty"`
	Verified     bool   `bson:"verified,omitempty" json:"verified,omitempty"`
}
