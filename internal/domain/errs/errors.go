// Package errs contains the sentinel and typed errors shared by repositories, usecases and the API,
// plus the mapping from those errors to user-facing outcomes.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNotFound indicates the requested entity does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique index violation in the store.
	ErrAlreadyExists = errors.New("already exists")

	// ErrEntityCreationRace is raised when an insert lost a unique-key race but the winning
	// record could not be re-fetched afterwards.
	ErrEntityCreationRace = errors.New("entity creation race")

	// ErrLookupFailed wraps failures of the primary flight data provider.
	ErrLookupFailed = errors.New("flight lookup failed")

	// ErrFlightNotFound indicates the flight data provider had no candidate for an ident.
	ErrFlightNotFound = errors.New("flight not found")
)

// ParseError reports a flight ident that matched none of the accepted formats.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse flight ident %q", e.Input)
}

// InsufficientDataError reports a payload that lacks the fields needed to resolve an entity.
type InsufficientDataError struct {
	Entity string // "aircraft", "airport", "flight"
	Detail string
}

func (e *InsufficientDataError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("insufficient %s data", e.Entity)
	}
	return fmt.Sprintf("insufficient %s data: %s", e.Entity, e.Detail)
}

// DuplicateFlightError reports that the user already logged the same flight on the same day.
type DuplicateFlightError struct {
	ExistingID string
	Date       time.Time
}

func (e *DuplicateFlightError) Error() string {
	return fmt.Sprintf("flight already in hangar for %s", e.Date.UTC().Format("2006-01-02"))
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	var (
		parseErr *ParseError
		dataErr  *InsufficientDataError
		dupErr   *DuplicateFlightError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &parseErr), errors.As(err, &dataErr):
		return http.StatusBadRequest
	case errors.As(err, &dupErr):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrFlightNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrLookupFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns a message that is safe to show to end users.
// Internal and provider error details are never included.
func UserMessage(err error) string {
	var (
		parseErr *ParseError
		dataErr  *InsufficientDataError
		dupErr   *DuplicateFlightError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Could not understand flight number %q. Try a format like EK221.", parseErr.Input)
	case errors.As(err, &dataErr):
		return fmt.Sprintf("The flight data is missing %s information.", dataErr.Entity)
	case errors.As(err, &dupErr):
		return fmt.Sprintf("This flight is already in your hangar for %s.", dupErr.Date.UTC().Format("2006-01-02"))
	case errors.Is(err, ErrFlightNotFound):
		return "No matching flight was found."
	case errors.Is(err, ErrNotFound):
		return "Not found."
	case errors.Is(err, ErrLookupFailed):
		return "Flight data is temporarily unavailable. Please try again later."
	default:
		return "Something went wrong."
	}
}
