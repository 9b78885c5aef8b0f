package aeroapi

import (
	"time"

	"github.com/goccy/go-json"
)

// AirportRef is a reference to an airport in flight data.
type AirportRef struct {
	Code     *string `json:"code"`
	CodeICAO *string `json:"code_icao"`
	CodeIATA *string `json:"code_iata"`
	Timezone *string `json:"timezone"`
	Name     *string `json:"name"`
	City     *string `json:"city"`
}

// Flight is the subset of the AeroAPI BaseFlight schema the hangar uses.
type Flight struct {
	Ident        string      `json:"ident"`
	IdentICAO    *string     `json:"ident_icao"`
	IdentIATA    *string     `json:"ident_iata"`
	FAFlightID   string      `json:"fa_flight_id"`
	OperatorIATA *string     `json:"operator_iata"`
	FlightNumber *string     `json:"flight_number"`
	Registration *string     `json:"registration"`
	Cancelled    bool        `json:"cancelled"`
	Origin       *AirportRef `json:"origin"`
	Destination  *AirportRef `json:"destination"`
	Status       string      `json:"status"`
	AircraftType *string     `json:"aircraft_type"`
	ScheduledOut *time.Time  `json:"scheduled_out"`
	EstimatedOut *time.Time  `json:"estimated_out"`
	ActualOut    *time.Time  `json:"actual_out"`
	ScheduledIn  *time.Time  `json:"scheduled_in"`
	EstimatedIn  *time.Time  `json:"estimated_in"`
	ActualIn     *time.Time  `json:"actual_in"`
}

// DisplayIdent returns the best flight identifier (prefers IATA).
func (f *Flight) DisplayIdent() string {
	if s := deref(f.IdentIATA); s != "" {
		return s
	}
	if s := deref(f.IdentICAO); s != "" {
		return s
	}
	return f.Ident
}

// FlightsResponse is the body of GET /flights/{ident}. Flights are kept raw so the
// hangar can store each document exactly as received.
type FlightsResponse struct {
	Flights  []json.RawMessage `json:"flights"`
	NumPages int               `json:"num_pages"`
}

// Airport is the body of GET /airports/{code}.
type Airport struct {
	AirportCode string   `json:"airport_code"`
	CodeICAO    *string  `json:"code_icao"`
	CodeIATA    *string  `json:"code_iata"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	CountryCode string   `json:"country_code"`
	Timezone    string   `json:"timezone"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
