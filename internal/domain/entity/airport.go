package entity

import "time"

const (
	DefaultAirportCountry  = "Unknown"
	DefaultAirportTimezone = "UTC"
)

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Airport represents an airport entity. IATACode is the lookup key and is always set.
type Airport struct {
	ID          string       `bson:"_id,omitempty" json:"id"`
	Name        string       `bson:"name" json:"name"`
	City        string       `bson:"city" json:"city"`
	Country     string       `bson:"country" json:"country"`
	IATACode    string       `bson:"iataCode" json:"iataCode"`
	ICAOCode    string       `bson:"icaoCode,omitempty" json:"icaoCode,omitempty"`
	Timezone    string       `bson:"timezone" json:"timezone"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	CodeSource  CodeSource   `bson:"codeSource" json:"codeSource"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// AirportInfo is the metadata returned by an airport info provider. Empty fields are unknown.
type AirportInfo struct {
	CodeIATA    string
	CodeICAO    string
	Name        string
	City        string
	Country     string
	Timezone    string
	Coordinates *Coordinates
}
