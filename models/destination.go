package models

import (
	"strings"
	"time"
)

// CustomDestinationPrefix marks ad hoc destinations pinned on the map rather
// than chosen from the catalogue. They are never persisted, and no
// authoritative routing data exists for them.
const CustomDestinationPrefix = "custom-"

// IsCustomDestination reports whether id names an ad hoc pinned location.
func IsCustomDestination(id string) bool {
	return strings.HasPrefix(id, CustomDestinationPrefix)
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Destination is a catalogue entry tourists can add to a trip.
type Destination struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Location    string    `bson:"location" json:"location"` // formatted address
	Province    string    `bson:"province" json:"province"`
	Category    string    `bson:"category" json:"category"` // e.g. "beach", "heritage", "wildlife"
	Coordinates GeoPoint  `bson:"coordinates" json:"coordinates"`
	Images      []string  `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// DestinationRef is the slice of a destination the wizard carries around.
type DestinationRef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Coordinates GeoPoint `json:"coordinates"`
}

// Ref returns the wizard-facing reference for a catalogue destination.
func (d Destination) Ref() DestinationRef {
	return DestinationRef{ID: d.ID, Name: d.Name, Location: d.Location, Coordinates: d.Coordinates}
}
