package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"TRIPPLANNER_BACK-END/internal/dto"
	"TRIPPLANNER_BACK-END/internal/itinerary"
	"TRIPPLANNER_BACK-END/internal/models"
	"TRIPPLANNER_BACK-END/internal/storage"
	"TRIPPLANNER_BACK-END/internal/utils"
)

// TripsHandler manages trip CRUD and the cost summary read
type TripsHandler struct {
	trips storage.TripStore
}

// NewTripsHandler creates a new TripsHandler
func NewTripsHandler(trips storage.TripStore) *TripsHandler {
	return &TripsHandler{trips: trips}
}

// Trips dispatches by HTTP method for /trips
func (h *TripsHandler) Trips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateTrip(w, r)
	case http.MethodGet:
		h.ListTrips(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// TripByID dispatches by HTTP method for /trips/{id}
func (h *TripsHandler) TripByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetTrip(w, r)
	case http.MethodPut:
		h.UpdateTrip(w, r)
	case http.MethodDelete:
		h.DeleteTrip(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CreateTrip handles POST /trips
// @Summary Create a trip with its itinerary skeleton
// @Tags trips
// @Accept json
// @Produce json
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.TripEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Router /trips [post]
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.TripName == "" || req.Destination == "" || req.StartDate == "" ||
		req.EndDate == "" || req.Travelers == 0 || req.Username == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "All fields are required, including username", "")
		return
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "startDate must be ISO 8601 format (YYYY-MM-DD or RFC3339)", "")
		return
	}
	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "endDate must be ISO 8601 format (YYYY-MM-DD or RFC3339)", "")
		return
	}

	// An inverted range is not rejected; the skeleton clamps to one day.
	trip := models.Trip{
		ID:          uuid.New(),
		TripName:    req.TripName,
		Destination: req.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Travelers:   req.Travelers,
		Username:    req.Username,
		Itinerary:   itinerary.Skeleton(startDate, endDate),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.trips.Create(r.Context(), trip); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.TripEnvelope{
		Message: "Trip created successfully",
		Trip:    tripToResponse(trip),
	})
}

// ListTrips handles GET /trips?username=
// @Summary List a user's trips, newest first, without itineraries
// @Tags trips
// @Produce json
// @Param username query string true "Owner username"
// @Success 200 {object} dto.TripListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /trips [get]
func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Username is required", "")
		return
	}

	trips, err := h.trips.ListByUsername(r.Context(), username)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	items := make([]dto.TripListItem, 0, len(trips))
	for _, t := range trips {
		items = append(items, dto.TripListItem{
			ID:          t.ID.String(),
			TripName:    t.TripName,
			Destination: t.Destination,
			StartDate:   utils.FormatTimestamp(t.StartDate),
			EndDate:     utils.FormatTimestamp(t.EndDate),
			Travelers:   t.Travelers,
			Username:    t.Username,
			CreatedAt:   utils.FormatTimestamp(t.CreatedAt),
		})
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TripListResponse{Trips: items})
}

// GetTrip handles GET /trips/{id}
// @Summary Fetch one trip, itinerary included
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripEnvelope
// @Failure 404 {object} dto.ErrorResponse
// @Router /trips/{id} [get]
func (h *TripsHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TripEnvelope{Trip: tripToResponse(trip)})
}

// UpdateTrip handles PUT /trips/{id}
// Metadata fields update individually: only fields present in the request
// change. A provided itinerary array replaces the stored document wholesale
// after normalization; an explicit null (or any non-array) clears it, and
// partial itinerary edits are not supported.
// @Summary Update trip metadata and/or replace the itinerary
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param payload body dto.UpdateTripRequest true "Update payload"
// @Success 200 {object} dto.TripEnvelope
// @Failure 404 {object} dto.ErrorResponse
// @Router /trips/{id} [put]
func (h *TripsHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.TripName != nil {
		trip.TripName = *req.TripName
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.StartDate != nil {
		t, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "startDate must be ISO 8601 format (YYYY-MM-DD or RFC3339)", "")
			return
		}
		trip.StartDate = t
	}
	if req.EndDate != nil {
		t, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "endDate must be ISO 8601 format (YYYY-MM-DD or RFC3339)", "")
			return
		}
		trip.EndDate = t
	}
	if req.Travelers != nil {
		trip.Travelers = *req.Travelers
	}
	if len(req.Itinerary) > 0 {
		var days []itinerary.DayInput
		if err := json.Unmarshal(req.Itinerary, &days); err != nil || days == nil {
			// An explicit non-array itinerary (null included) clears the
			// stored document rather than preserving it.
			trip.Itinerary = []models.ItineraryDay{}
		} else {
			trip.Itinerary = itinerary.Normalize(days)
		}
	}

	// Read-modify-write with no version check: concurrent updates race with
	// last-write-wins semantics.
	if err := h.trips.Update(r.Context(), trip); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found", "")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to save trip", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripEnvelope{
		Message: "Trip updated successfully",
		Trip:    tripToResponse(trip),
	})
}

// DeleteTrip handles DELETE /trips/{id}
// @Summary Delete a trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /trips/{id} [delete]
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}

	if err := h.trips.Delete(r.Context(), tripID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found", "")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Trip deleted successfully"})
}

// CostSummary handles GET /trips/{id}/cost-summary
// The roll-up is computed fresh from the stored itinerary on every call and
// never cached.
// @Summary Compute total, per-traveler, and per-day costs for a trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.CostSummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /trips/{id}/cost-summary [get]
func (h *TripsHandler) CostSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	sum := itinerary.Cost(trip.Itinerary, trip.Travelers)
	utils.WriteJSONResponse(w, http.StatusOK, dto.CostSummaryResponse{
		TripID:      trip.ID.String(),
		Total:       sum.Total,
		PerTraveler: sum.PerTraveler,
		PerDay:      sum.PerDay,
	})
}

// loadTrip parses the trip ID from the path and fetches the trip, writing
// the 404 response itself when either step fails.
func (h *TripsHandler) loadTrip(w http.ResponseWriter, r *http.Request) (models.Trip, bool) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return models.Trip{}, false
	}
	trip, err := h.trips.GetByID(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found", "")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Server error", err.Error())
		}
		return models.Trip{}, false
	}
	return trip, true
}

// parseTripID extracts the trip ID from the path. Malformed IDs cannot
// reference any stored trip, so they report 404 rather than a separate
// validation error.
func parseTripID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	tripID, err := tripIDFromPath(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found", "")
		return uuid.UUID{}, false
	}
	return tripID, true
}

// tripIDFromPath extracts the {id} segment from /trips/{id}[/...] and
// /api/trips/{id}[/...] paths.
func tripIDFromPath(r *http.Request) (uuid.UUID, error) {
	rest := strings.TrimPrefix(r.URL.Path, "/api")
	rest = strings.TrimPrefix(rest, "/trips/")
	idStr, _, _ := strings.Cut(rest, "/")
	return uuid.Parse(idStr)
}

// tripToResponse converts a stored trip into its wire form.
func tripToResponse(t models.Trip) dto.TripResponse {
	it := t.Itinerary
	if it == nil {
		it = []models.ItineraryDay{}
	}
	return dto.TripResponse{
		ID:          t.ID.String(),
		TripName:    t.TripName,
		Destination: t.Destination,
		StartDate:   utils.FormatTimestamp(t.StartDate),
		EndDate:     utils.FormatTimestamp(t.EndDate),
		Travelers:   t.Travelers,
		Username:    t.Username,
		Itinerary:   it,
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt),
	}
}
