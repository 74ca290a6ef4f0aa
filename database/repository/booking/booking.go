package bookingRepo

import "voyago/models"

// ReportPeriod bounds an admin booking report. Dates are YYYY-MM-DD;
// empty strings mean unbounded.
type ReportPeriod struct {
	From string
	To   string
}

// BookingReport aggregates bookings for the admin dashboard.
type BookingReport struct {
	Total     int     `json:"total"`
	Confirmed int     `json:"confirmed"`
	Cancelled int     `json:"cancelled"`
	Completed int     `json:"completed"`
	Revenue   float64 `json:"revenue"`
}

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	GetByID(id string) (*models.Booking, error)
	GetByReference(reference string) (*models.Booking, error)
	GetByUser(userID string) ([]models.Booking, error)
	GetByDriver(driverID string) ([]models.Booking, error)
	Create(booking *models.Booking) error
	UpdateStatus(id, status string) error
	// Report aggregates booking counts and confirmed revenue per period.
	Report(period ReportPeriod) (*BookingReport, error)
}
