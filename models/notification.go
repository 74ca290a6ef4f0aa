package models

// TripReminderPayload is the asynq task body for trip-start reminders.
type TripReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Reference string `json:"reference"`
	StartDate string `json:"startDate"`
}
