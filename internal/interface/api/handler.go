// Package api is the HTTP surface of the hangar. Authentication happens upstream;
// the caller's user id arrives in the X-User-ID header.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/usecase"
	"hangar-service/pkg/logger"
)

const (
	UserIDHeader = "X-User-ID"

	dateLayout   = "2006-01-02"
	maxBodyBytes = 1 << 20
)

// HangarService is the usecase surface the handlers depend on.
type HangarService interface {
	AddToHangar(ctx context.Context, userID string, req usecase.AddFlightRequest) (*entity.Flight, error)
	CreateFlight(ctx context.Context, userID string, payload *entity.ExternalFlightPayload, opts usecase.FlightOptions) (*entity.Flight, error)
	SearchFlights(ctx context.Context, ident string, date *time.Time, departureTime string) ([]*entity.ExternalFlightPayload, error)
	ListFlights(ctx context.Context, userID string, limit int) ([]*entity.Flight, error)
	GetFlight(ctx context.Context, userID, id string) (*entity.FlightDetails, error)
	UpdateFlight(ctx context.Context, userID, id string, update entity.FlightUpdate) (*entity.Flight, error)
	DeleteFlight(ctx context.Context, userID, id string) error
	RefreshAircraftPhotos(ctx context.Context, tail string) (*entity.Aircraft, error)
}

type addFlightBody struct {
	Ident string  `json:"ident" validate:"required,max=16"`
	Date  string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time  string  `json:"time" validate:"omitempty,datetime=15:04"`
	Seat  *string `json:"seat" validate:"omitempty,max=8"`
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

type importFlightBody struct {
	Flight json.RawMessage `json:"flight" validate:"required"`
	Seat   *string         `json:"seat" validate:"omitempty,max=8"`
	Notes  *string         `json:"notes" validate:"omitempty,max=2000"`
}

type updateFlightBody struct {
	Seat  *string `json:"seat" validate:"omitempty,max=8"`
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

type searchParams struct {
	Ident string `validate:"required,max=16"`
	Date  string `validate:"omitempty,datetime=2006-01-02"`
	Time  string `validate:"omitempty,datetime=15:04"`
}

// Handler serves the hangar endpoints.
type Handler struct {
	service  HangarService
	validate *validator.Validate
	logger   logger.Logger
}

// NewHandler creates a handler over service.
func NewHandler(service HangarService, log logger.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log,
	}
}

// AddFlight looks a flight up by ident and adds the best match to the caller's hangar.
func (h *Handler) AddFlight(w http.ResponseWriter, r *http.Request) {
	var body addFlightBody
	if !h.decode(w, r, &body) {
		return
	}

	req := usecase.AddFlightRequest{
		Ident: body.Ident,
		Time:  body.Time,
		Seat:  body.Seat,
		Notes: body.Notes,
	}
	if body.Date != "" {
		date, _ := time.Parse(dateLayout, body.Date)
		req.Date = &date
	}

	flight, err := h.service.AddToHangar(r.Context(), userID(r.Context()), req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondData(w, h.logger, http.StatusCreated, flight)
}

// ImportFlight adds a flight from a provider payload supplied by the client.
func (h *Handler) ImportFlight(w http.ResponseWriter, r *http.Request) {
	var body importFlightBody
	if !h.decode(w, r, &body) {
		return
	}

	var payload entity.ExternalFlightPayload
	if err := json.Unmarshal(body.Flight, &payload); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "bad_request", "The flight payload is not valid.")
		return
	}
	payload.Raw = []byte(body.Flight)

	flight, err := h.service.CreateFlight(r.Context(), userID(r.Context()), &payload, usecase.FlightOptions{
		Seat:  body.Seat,
		Notes: body.Notes,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondData(w, h.logger, http.StatusCreated, flight)
}

// SearchFlights returns provider candidates for an ident without storing anything.
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := searchParams{Ident: q.Get("ident"), Date: q.Get("date"), Time: q.Get("time")}
	if err := h.validate.Struct(params); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "bad_request", validationMessage(err))
		return
	}

	var date *time.Time
	if params.Date != "" {
		d, _ := time.Parse(dateLayout, params.Date)
		date = &d
	}

	flights, err := h.service.SearchFlights(r.Context(), params.Ident, date, params.Time)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondData(w, h.logger, http.StatusOK, flights)
}

// ListFlights returns the caller's flights, newest first.
func (h *Handler) ListFlights(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, h.logger, http.StatusBadRequest, "bad_request", "limit must be a positive number.")
			return
		}
		limit = n
	}

	flights, err := h.service.ListFlights(r.Context(), userID(r.Context()), limit)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondData(w, h.logger, http.StatusOK, flights)
}

// GetFlight returns one of the caller's flights with its airline, airports and aircraft.
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.GetFlight(r.Context(), userID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondData(w, h.logger, http.StatusOK, details)
}

// UpdateFlight edits the seat and notes of one of the caller's flights.
func (h *Handler) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	var body updateFlightBody
	if !h.decode(w, r, &body) {
		return
	}

	flight, err := h.service.UpdateFlight(r.Context(), userID(r.Context()), chi.URLParam(r, "id"), entity.FlightUpdate{
		Seat:  body.Seat,
		Notes: body.Notes,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondData(w, h.logger, http.StatusOK, flight)
}

// DeleteFlight removes one of the caller's flights.
func (h *Handler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFlight(r.Context(), userID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RefreshPhotos forces a new photo search for an aircraft.
func (h *Handler) RefreshPhotos(w http.ResponseWriter, r *http.Request) {
	aircraft, err := h.service.RefreshAircraftPhotos(r.Context(), chi.URLParam(r, "tail"))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondData(w, h.logger, http.StatusOK, aircraft)
}

// decode reads and validates a JSON body. It writes the error response itself and
// reports whether the handler should continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "bad_request", "Request body must be valid JSON.")
		return false
	}
	if err := h.validate.Struct(dest); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "bad_request", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Invalid request."
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "Invalid fields: " + strings.Join(fields, ", ")
}
