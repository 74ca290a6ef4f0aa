package models

import "time"

// Budget tiers selectable in trip preferences.
const (
	BudgetTierBudget   = "budget"
	BudgetTierStandard = "standard"
	BudgetTierLuxury   = "luxury"
)

// BudgetTiers is the closed set of accepted budget tiers.
var BudgetTiers = map[string]bool{
	BudgetTierBudget:   true,
	BudgetTierStandard: true,
	BudgetTierLuxury:   true,
}

// Stop is one destination visit within a multi-destination itinerary.
// Day numbers are kept contiguous starting at 1; they are renumbered on
// removal, never on field updates.
type Stop struct {
	DestinationID   string `bson:"destination_id" json:"destination_id"`
	DestinationName string `bson:"destination_name" json:"destination_name"`
	Day             int    `bson:"day" json:"day"`
	Overnight       bool   `bson:"overnight" json:"overnight"`
	Notes           string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ItineraryTotals are derived trip metrics. They are always recomputed in
// full from the stop list, never patched incrementally.
type ItineraryTotals struct {
	DistanceKm    float64 `bson:"distance_km" json:"distance_km"`
	DurationHours float64 `bson:"duration_hours" json:"duration_hours"`
	Days          int     `bson:"days" json:"days"`
	EstimatedCost float64 `bson:"estimated_cost" json:"estimated_cost"`
}

// TripDetails are the user-entered basics of a trip.
type TripDetails struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
	Travelers int    `json:"travelers"`
	Pickup    string `json:"pickup"`
	Dropoff   string `json:"dropoff"`
	Notes     string `json:"notes,omitempty"`
	MultiStop bool   `json:"multi_stop"`
}

// TripPreferences captures vehicle and budget choices plus optional extras.
type TripPreferences struct {
	VehicleType       string `bson:"vehicle_type" json:"vehicle_type"`
	BudgetTier        string `bson:"budget_tier" json:"budget_tier"`
	WithGuide         bool   `bson:"with_guide" json:"with_guide"`
	AccommodationHelp bool   `bson:"accommodation_help" json:"accommodation_help"`
	Notes             string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Trip is a persisted trip record, created when a wizard run confirms.
type Trip struct {
	ID            string          `bson:"id" json:"id"`
	UserID        string          `bson:"user_id" json:"user_id"`
	DestinationID string          `bson:"destination_id" json:"destination_id"`
	Date          string          `bson:"date" json:"date"`
	Time          string          `bson:"time" json:"time"`
	Travelers     int             `bson:"travelers" json:"travelers"`
	Pickup        string          `bson:"pickup" json:"pickup"`
	Dropoff       string          `bson:"dropoff" json:"dropoff"`
	Notes         string          `bson:"notes,omitempty" json:"notes,omitempty"`
	MultiStop     bool            `bson:"multi_stop" json:"multi_stop"`
	Stops         []Stop          `bson:"stops,omitempty" json:"stops,omitempty"`
	Preferences   TripPreferences `bson:"preferences" json:"preferences"`
	Totals        ItineraryTotals `bson:"totals" json:"totals"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
}
