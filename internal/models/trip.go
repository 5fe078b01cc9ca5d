package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned trip owned by a single user.
// The itinerary is stored as one JSON document per trip: an ordered array
// of days, each holding an ordered list of activities.
type Trip struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	TripName    string         `json:"tripName" db:"trip_name"`
	Destination string         `json:"destination" db:"destination"`
	StartDate   time.Time      `json:"startDate" db:"start_date"`
	EndDate     time.Time      `json:"endDate" db:"end_date"`
	Travelers   int            `json:"travelers" db:"travelers"`
	Username    string         `json:"username" db:"username"`
	Itinerary   []ItineraryDay `json:"itinerary" db:"itinerary"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}

// ItineraryDay is a single calendar day of a trip's itinerary.
// Day is a display label ("Day 1", ...); after client edits it is not
// guaranteed to match the positional index.
type ItineraryDay struct {
	Day        string     `json:"day"`
	Activities []Activity `json:"activities"`
}

// Activity is one planned event within a day.
// Cost is nil when no cost was entered; nil and 0 are distinct values and
// stay distinct through storage and aggregation.
type Activity struct {
	StartTime string   `json:"startTime"`
	Activity  string   `json:"activity"`
	Cost      *float64 `json:"cost"`
	Notes     string   `json:"notes"`
}
