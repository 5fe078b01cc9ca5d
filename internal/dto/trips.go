package dto

import (
	"encoding/json"

	"TRIPPLANNER_BACK-END/internal/models"
)

// CreateTripRequest represents the payload to create a trip.
// Every field is required, including the owning username.
type CreateTripRequest struct {
	TripName    string `json:"tripName"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"` // ISO 8601: YYYY-MM-DD or RFC3339
	EndDate     string `json:"endDate"`   // ISO 8601: YYYY-MM-DD or RFC3339
	Travelers   int    `json:"travelers"`
	Username    string `json:"username"`
}

// UpdateTripRequest represents fields allowed to update a trip.
// All fields are optional; only provided ones will be updated. Pointers
// distinguish an omitted field from one explicitly set to its zero value.
// The itinerary stays raw JSON so the handler can tell an omitted key from
// an explicit null: a provided array replaces the stored itinerary
// wholesale, anything else provided clears it.
type UpdateTripRequest struct {
	TripName    *string         `json:"tripName"`
	Destination *string         `json:"destination"`
	StartDate   *string         `json:"startDate"`
	EndDate     *string         `json:"endDate"`
	Travelers   *int            `json:"travelers"`
	Itinerary   json.RawMessage `json:"itinerary"`
}

// TripResponse represents a full trip object in responses
type TripResponse struct {
	ID          string                `json:"id"`
	TripName    string                `json:"tripName"`
	Destination string                `json:"destination"`
	StartDate   string                `json:"startDate"`
	EndDate     string                `json:"endDate"`
	Travelers   int                   `json:"travelers"`
	Username    string                `json:"username"`
	Itinerary   []models.ItineraryDay `json:"itinerary"`
	CreatedAt   string                `json:"createdAt"`
}

// TripListItem is the dashboard list view of a trip; the itinerary is omitted
type TripListItem struct {
	ID          string `json:"id"`
	TripName    string `json:"tripName"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Travelers   int    `json:"travelers"`
	Username    string `json:"username"`
	CreatedAt   string `json:"createdAt"`
}

// TripListResponse envelope
type TripListResponse struct {
	Trips []TripListItem `json:"trips"`
}

// TripEnvelope wraps a single trip, with an optional operation message
type TripEnvelope struct {
	Message string       `json:"message,omitempty"`
	Trip    TripResponse `json:"trip"`
}

// MessageResponse carries a bare confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// CostSummaryResponse is the computed cost roll-up for one trip
type CostSummaryResponse struct {
	TripID      string    `json:"tripId"`
	Total       float64   `json:"total"`
	PerTraveler float64   `json:"perTraveler"`
	PerDay      []float64 `json:"perDay"`
}
