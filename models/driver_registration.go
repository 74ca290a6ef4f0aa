package models

import "time"

// Driver registration steps.
const (
	DriverRegStepBasic     = "basic"
	DriverRegStepOTP       = "otp_pending"
	DriverRegStepDocuments = "documents"
	DriverRegStepVehicle   = "vehicle"
	DriverRegStepComplete  = "complete"
)

// DriverBasicData is the first page of driver registration.
type DriverBasicData struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD, drivers must be 18+
}

// DriverDocuments carries the storage IDs of the uploaded verification
// documents.
type DriverDocuments struct {
	LicenseImage string `json:"license_image"`
	NICImage     string `json:"nic_image"`
}

// DriverRegistrationSession threads state across the multi-step driver
// signup flow. Stored in the auth cache with a 30-minute TTL.
type DriverRegistrationSession struct {
	TempID        string           `json:"tempId"`
	Step          string           `json:"step"`
	BasicData     *DriverBasicData `json:"basicData,omitempty"`
	Documents     *DriverDocuments `json:"documents,omitempty"`
	Vehicle       *Vehicle         `json:"vehicle,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}
