package entity

import (
	"time"
)

// TimePair holds a departure and arrival instant; either may be unknown.
type TimePair struct {
	Departure *time.Time `bson:"departure,omitempty" json:"departure,omitempty"`
	Arrival   *time.Time `bson:"arrival,omitempty" json:"arrival,omitempty"`
}

// IsZero reports whether neither time is known.
func (p TimePair) IsZero() bool {
	return p.Departure == nil && p.Arrival == nil
}

// FlightTimes groups the schedule with the optional estimated and actual times.
type FlightTimes struct {
	Scheduled TimePair  `bson:"scheduled" json:"scheduled"`
	Estimated *TimePair `bson:"estimated,omitempty" json:"estimated,omitempty"`
	Actual    *TimePair `bson:"actual,omitempty" json:"actual,omitempty"`
}

// Flight is a flight logged by a user into their hangar.
// (UserID, AirlineID, FlightNumber, DateKey) is unique.
type Flight struct {
	ID                   string      `bson:"_id,omitempty" json:"id"`
	UserID               string      `bson:"userId" json:"userId"`
	Ident                string      `bson:"ident" json:"ident"`
	FlightNumber         string      `bson:"flightNumber" json:"flightNumber"`
	AirlineID            string      `bson:"airlineId" json:"airlineId"`
	Date                 time.Time   `bson:"date" json:"date"`
	DateKey              string      `bson:"dateKey" json:"-"`
	OriginAirportID      string      `bson:"originAirportId" json:"originAirportId"`
	DestinationAirportID string      `bson:"destinationAirportId" json:"destinationAirportId"`
	AircraftID           string      `bson:"aircraftId" json:"aircraftId"`
	Times                FlightTimes `bson:"times" json:"times"`
	Notes                *string     `bson:"notes,omitempty" json:"notes,omitempty"`
	Seat                 *string     `bson:"seat,omitempty" json:"seat,omitempty"`
	RawSourceData        string      `bson:"rawSourceData,omitempty" json:"-"`
	CreatedAt            time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// FlightDetails is a flight with its references resolved, as returned to its owner.
type FlightDetails struct {
	Flight
	Airline     *Airline  `json:"airline,omitempty"`
	Origin      *Airport  `json:"origin,omitempty"`
	Destination *Airport  `json:"destination,omitempty"`
	Aircraft    *Aircraft `json:"aircraft,omitempty"`
}

// FlightUpdate carries the user-editable fields of a flight. Nil fields are left untouched.
type FlightUpdate struct {
	Notes *string
	Seat  *string
}

// DateKeyFor returns the UTC calendar day of t as YYYY-MM-DD.
func DateKeyFor(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
