package usecase

import (
	"time"

	"hangar-service/internal/domain/entity"
)

// NormalizeTimes groups the payload's instants into scheduled, estimated and actual pairs.
// Estimated and Actual stay nil when the payload has neither of their times.
func NormalizeTimes(p *entity.ExternalFlightPayload) entity.FlightTimes {
	times := entity.FlightTimes{
		Scheduled: entity.TimePair{Departure: utcPtr(p.ScheduledDeparture), Arrival: utcPtr(p.ScheduledArrival)},
	}
	if estimated := (entity.TimePair{Departure: utcPtr(p.EstimatedDeparture), Arrival: utcPtr(p.EstimatedArrival)}); !estimated.IsZero() {
		times.Estimated = &estimated
	}
	if actual := (entity.TimePair{Departure: utcPtr(p.ActualDeparture), Arrival: utcPtr(p.ActualArrival)}); !actual.IsZero() {
		times.Actual = &actual
	}
	return times
}

// FlightDate picks the first known departure among scheduled, estimated and actual.
func FlightDate(times entity.FlightTimes) (time.Time, bool) {
	if times.Scheduled.Departure != nil {
		return *times.Scheduled.Departure, true
	}
	if times.Estimated != nil && times.Estimated.Departure != nil {
		return *times.Estimated.Departure, true
	}
	if times.Actual != nil && times.Actual.Departure != nil {
		return *times.Actual.Departure, true
	}
	return time.Time{}, false
}

// dayBounds returns the UTC calendar day containing t as [start, start+24h).
func dayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
