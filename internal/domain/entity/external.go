package entity

import (
	"strings"
	"time"
)

// AircraftRef is the aircraft portion of a provider payload.
type AircraftRef struct {
	Registration string `json:"registration,omitempty"`
	Type         string `json:"type,omitempty"`
}

// IsEmpty reports whether the reference carries neither registration nor type.
func (a *AircraftRef) IsEmpty() bool {
	return a == nil || (strings.TrimSpace(a.Registration) == "" && strings.TrimSpace(a.Type) == "")
}

// AirportRef is an airport reference in mixed IATA/ICAO form as sent by providers.
type AirportRef struct {
	Code     string `json:"code,omitempty"`
	CodeICAO string `json:"codeIcao,omitempty"`
	CodeIATA string `json:"codeIata,omitempty"`
	Name     string `json:"name,omitempty"`
	City     string `json:"city,omitempty"`
}

// HasCode reports whether any code field is set.
func (a *AirportRef) HasCode() bool {
	return a != nil && (strings.TrimSpace(a.Code) != "" || strings.TrimSpace(a.CodeICAO) != "" || strings.TrimSpace(a.CodeIATA) != "")
}

// ExternalFlightPayload is one flight candidate returned by the flight data provider.
// Only Ident is guaranteed to be present.
type ExternalFlightPayload struct {
	Ident              string       `json:"ident"`
	Aircraft           *AircraftRef `json:"aircraft,omitempty"`
	Origin             *AirportRef  `json:"origin,omitempty"`
	Destination        *AirportRef  `json:"destination,omitempty"`
	ScheduledDeparture *time.Time   `json:"scheduledDeparture,omitempty"`
	ScheduledArrival   *time.Time   `json:"scheduledArrival,omitempty"`
	EstimatedDeparture *time.Time   `json:"estimatedDeparture,omitempty"`
	EstimatedArrival   *time.Time   `json:"estimatedArrival,omitempty"`
	ActualDeparture    *time.Time   `json:"actualDeparture,omitempty"`
	ActualArrival      *time.Time   `json:"actualArrival,omitempty"`

	// Raw is the provider document exactly as received.
	Raw []byte `json:"-"`
}
