package aeroapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/repository"
)

var _ repository.FlightDataProvider = (*Client)(nil)

// LookupFlights returns the flights AeroAPI knows for ident. When date is set the search is
// bounded to that UTC calendar day. An unknown ident yields an empty result.
func (c *Client) LookupFlights(ctx context.Context, ident string, date *time.Time) ([]*entity.ExternalFlightPayload, error) {
	ident = strings.ToUpper(strings.TrimSpace(ident))
	if ident == "" {
		return nil, fmt.Errorf("aeroapi: empty ident")
	}

	params := url.Values{}
	if date != nil {
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		params.Set("start", start.Format(time.RFC3339))
		params.Set("end", start.Add(24*time.Hour).Format(time.RFC3339))
	}

	var resp FlightsResponse
	err := c.doRequest(ctx, "/flights/"+url.PathEscape(ident), params, &resp)
	if errors.Is(err, errNotFound) {
		return []*entity.ExternalFlightPayload{}, nil
	}
	if err != nil {
		return nil, err
	}

	payloads := make([]*entity.ExternalFlightPayload, 0, len(resp.Flights))
	for _, raw := range resp.Flights {
		var f Flight
		if err := json.Unmarshal(raw, &f); err != nil {
			c.logger.Warn("Skipping undecodable AeroAPI flight", "ident", ident, "error", err)
			continue
		}
		if f.Cancelled {
			continue
		}
		payloads = append(payloads, toPayload(&f, raw))
	}
	return payloads, nil
}

func toPayload(f *Flight, raw []byte) *entity.ExternalFlightPayload {
	p := &entity.ExternalFlightPayload{
		Ident:              f.DisplayIdent(),
		Origin:             toAirportRef(f.Origin),
		Destination:        toAirportRef(f.Destination),
		ScheduledDeparture: f.ScheduledOut,
		ScheduledArrival:   f.ScheduledIn,
		EstimatedDeparture: f.EstimatedOut,
		EstimatedArrival:   f.EstimatedIn,
		ActualDeparture:    f.ActualOut,
		ActualArrival:      f.ActualIn,
		Raw:                append([]byte(nil), raw...),
	}
	if reg, typ := deref(f.Registration), deref(f.AircraftType); reg != "" || typ != "" {
		p.Aircraft = &entity.AircraftRef{Registration: reg, Type: typ}
	}
	return p
}

func toAirportRef(a *AirportRef) *entity.AirportRef {
	if a == nil {
		return nil
	}
	ref := &entity.AirportRef{
		Code:     deref(a.Code),
		CodeICAO: deref(a.CodeICAO),
		CodeIATA: deref(a.CodeIATA),
		Name:     deref(a.Name),
		City:     deref(a.City),
	}
	if !ref.HasCode() {
		return nil
	}
	return ref
}
