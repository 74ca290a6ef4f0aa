package models

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking represents a confirmed booking record.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	Reference     string    `bson:"reference" json:"reference"` // short code shown to the user
	UserID        string    `bson:"user_id" json:"user_id"`
	DriverID      string    `bson:"driver_id" json:"driver_id"`
	VehicleID     string    `bson:"vehicle_id" json:"vehicle_id"`
	TripID        string    `bson:"trip_id" json:"trip_id"`
	StartDate     string    `bson:"start_date" json:"start_date"` // YYYY-MM-DD
	Days          int       `bson:"days" json:"days"`
	Amount        float64   `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency" json:"currency"`
	PaymentMethod string    `bson:"payment_method" json:"payment_method"`
	PaymentStatus string    `bson:"payment_status" json:"payment_status"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
