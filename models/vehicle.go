package models

import "time"

// Vehicle types offered on the platform.
const (
	VehicleTypeCar    = "car"
	VehicleTypeVan    = "van"
	VehicleTypeSUV    = "suv"
	VehicleTypeBus    = "bus"
	VehicleTypeTuktuk = "tuktuk"
)

// VehicleTypes is the closed set of accepted vehicle types.
var VehicleTypes = map[string]bool{
	VehicleTypeCar:    true,
	VehicleTypeVan:    true,
	VehicleTypeSUV:    true,
	VehicleTypeBus:    true,
	VehicleTypeTuktuk: true,
}

// Vehicle is a driver-owned vehicle available for trip bookings.
type Vehicle struct {
	ID          string    `bson:"id" json:"id"`
	DriverID    string    `bson:"driver_id" json:"driver_id"`
	Type        string    `bson:"type" json:"type"`
	Make        string    `bson:"make" json:"make"`
	Model       string    `bson:"model" json:"model"`
	PlateNumber string    `bson:"plate_number" json:"plate_number"`
	Capacity    int       `bson:"capacity" json:"capacity"` // passenger seats
	PricePerDay float64   `bson:"price_per_day" json:"price_per_day"`
	Images      []string  `bson:"images,omitempty" json:"images,omitempty"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
