package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"TRIPPLANNER_BACK-END/internal/models"
)

// TripStore defines the persistence operations for trips.
// The itinerary is stored as a single jsonb document per trip; updates
// replace the whole document (last-write-wins, no version check).
type TripStore interface {
	// Create inserts a new trip with its server-built itinerary skeleton.
	Create(ctx context.Context, trip models.Trip) error

	// GetByID retrieves a trip by primary key, itinerary included.
	// Returns ErrNotFound when no such trip exists.
	GetByID(ctx context.Context, id uuid.UUID) (models.Trip, error)

	// ListByUsername returns a user's trips, newest first. The itinerary
	// is not loaded; list views never need it.
	ListByUsername(ctx context.Context, username string) ([]models.Trip, error)

	// Update overwrites a trip's mutable fields and itinerary document.
	// Returns ErrNotFound when no such trip exists.
	Update(ctx context.Context, trip models.Trip) error

	// Delete removes a trip by primary key. Returns ErrNotFound when no
	// such trip exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGTripStore is the Postgres implementation of TripStore.
type PGTripStore struct {
	db db
}

// NewTripStore constructs a TripStore backed by the provided handle.
func NewTripStore(db db) *PGTripStore {
	return &PGTripStore{db: db}
}

// Create inserts a new trip row.
func (s *PGTripStore) Create(ctx context.Context, trip models.Trip) error {
	doc, err := json.Marshal(trip.Itinerary)
	if err != nil {
		return fmt.Errorf("storage.TripStore.Create: marshal itinerary: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO trips (id, trip_name, destination, start_date, end_date, travelers, username, itinerary, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		trip.ID, trip.TripName, trip.Destination, trip.StartDate, trip.EndDate,
		trip.Travelers, trip.Username, doc, trip.CreatedAt)
	if err != nil {
		return fmt.Errorf("storage.TripStore.Create: %w", err)
	}
	return nil
}

// GetByID retrieves a trip by primary key.
func (s *PGTripStore) GetByID(ctx context.Context, id uuid.UUID) (models.Trip, error) {
	var (
		t   models.Trip
		doc []byte
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, trip_name, destination, start_date, end_date, travelers, username, itinerary, created_at
           FROM trips WHERE id = $1`, id).Scan(
		&t.ID, &t.TripName, &t.Destination, &t.StartDate, &t.EndDate,
		&t.Travelers, &t.Username, &doc, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Trip{}, ErrNotFound
		}
		return models.Trip{}, fmt.Errorf("storage.TripStore.GetByID: %w", err)
	}
	if err := json.Unmarshal(doc, &t.Itinerary); err != nil {
		return models.Trip{}, fmt.Errorf("storage.TripStore.GetByID: unmarshal itinerary: %w", err)
	}
	return t, nil
}

// ListByUsername returns a user's trips ordered by creation time, newest
// first, without itineraries.
func (s *PGTripStore) ListByUsername(ctx context.Context, username string) ([]models.Trip, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, trip_name, destination, start_date, end_date, travelers, username, created_at
           FROM trips WHERE username = $1
          ORDER BY created_at DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("storage.TripStore.ListByUsername: %w", err)
	}
	defer rows.Close()

	trips := make([]models.Trip, 0)
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.TripName, &t.Destination, &t.StartDate, &t.EndDate,
			&t.Travelers, &t.Username, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage.TripStore.ListByUsername: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.TripStore.ListByUsername: rows: %w", err)
	}
	return trips, nil
}

// Update overwrites a trip's mutable fields and itinerary document.
// created_at is never touched.
func (s *PGTripStore) Update(ctx context.Context, trip models.Trip) error {
	doc, err := json.Marshal(trip.Itinerary)
	if err != nil {
		return fmt.Errorf("storage.TripStore.Update: marshal itinerary: %w", err)
	}
	tag, err := s.db.Exec(ctx,
		`UPDATE trips
            SET trip_name = $1,
                destination = $2,
                start_date = $3,
                end_date = $4,
                travelers = $5,
                itinerary = $6
          WHERE id = $7`,
		trip.TripName, trip.Destination, trip.StartDate, trip.EndDate,
		trip.Travelers, doc, trip.ID)
	if err != nil {
		return fmt.Errorf("storage.TripStore.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a trip by primary key.
func (s *PGTripStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("storage.TripStore.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
