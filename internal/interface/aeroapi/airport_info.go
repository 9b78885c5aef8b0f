package aeroapi

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/repository"
)

var _ repository.AirportInfoProvider = (*Client)(nil)

// LookupAirport fetches airport metadata for an IATA or ICAO code. Unknown codes return (nil, nil).
func (c *Client) LookupAirport(ctx context.Context, code string) (*entity.AirportInfo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	var a Airport
	err := c.doRequest(ctx, "/airports/"+url.PathEscape(code), nil, &a)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	info := &entity.AirportInfo{
		CodeIATA: deref(a.CodeIATA),
		CodeICAO: deref(a.CodeICAO),
		Name:     a.Name,
		City:     a.City,
		Country:  a.CountryCode,
		Timezone: a.Timezone,
	}
	if a.Latitude != nil && a.Longitude != nil {
		info.Coordinates = &entity.Coordinates{Latitude: *a.Latitude, Longitude: *a.Longitude}
	}
	return info, nil
}
