package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"

	"TRIPPLANNER_BACK-END/internal/dto"
	"TRIPPLANNER_BACK-END/internal/models"
	"TRIPPLANNER_BACK-END/internal/storage"
)

// fakeUserStore implements storage.UserStore with overridable funcs so each
// test wires up only the calls it expects.
type fakeUserStore struct {
	createFn         func(ctx context.Context, user models.User) error
	getByUsernameFn  func(ctx context.Context, username string) (models.User, error)
	getByIDFn        func(ctx context.Context, id uuid.UUID) (models.User, error)
	usernameExistsFn func(ctx context.Context, username string) (bool, error)
}

func (f *fakeUserStore) Create(ctx context.Context, user models.User) error {
	if f.createFn == nil {
		return errors.New("unexpected Create call")
	}
	return f.createFn(ctx, user)
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if f.getByUsernameFn == nil {
		return models.User{}, errors.New("unexpected GetByUsername call")
	}
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	if f.getByIDFn == nil {
		return models.User{}, errors.New("unexpected GetByID call")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	if f.usernameExistsFn == nil {
		return false, errors.New("unexpected UsernameExists call")
	}
	return f.usernameExistsFn(ctx, username)
}

// fakeTripStore implements storage.TripStore the same way.
type fakeTripStore struct {
	createFn         func(ctx context.Context, trip models.Trip) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (models.Trip, error)
	listByUsernameFn func(ctx context.Context, username string) ([]models.Trip, error)
	updateFn         func(ctx context.Context, trip models.Trip) error
	deleteFn         func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeTripStore) Create(ctx context.Context, trip models.Trip) error {
	if f.createFn == nil {
		return errors.New("unexpected Create call")
	}
	return f.createFn(ctx, trip)
}

func (f *fakeTripStore) GetByID(ctx context.Context, id uuid.UUID) (models.Trip, error) {
	if f.getByIDFn == nil {
		return models.Trip{}, errors.New("unexpected GetByID call")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeTripStore) ListByUsername(ctx context.Context, username string) ([]models.Trip, error) {
	if f.listByUsernameFn == nil {
		return nil, errors.New("unexpected ListByUsername call")
	}
	return f.listByUsernameFn(ctx, username)
}

func (f *fakeTripStore) Update(ctx context.Context, trip models.Trip) error {
	if f.updateFn == nil {
		return errors.New("unexpected Update call")
	}
	return f.updateFn(ctx, trip)
}

func (f *fakeTripStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn == nil {
		return errors.New("unexpected Delete call")
	}
	return f.deleteFn(ctx, id)
}

var _ storage.UserStore = (*fakeUserStore)(nil)
var _ storage.TripStore = (*fakeTripStore)(nil)

// fakeUpstream implements UpstreamClient for the proxy handler tests.
type fakeUpstream struct {
	safetyTipsFn           func(ctx context.Context, req dto.TripAdviceRequest) (json.RawMessage, error)
	itinerarySuggestionsFn func(ctx context.Context, req dto.TripAdviceRequest) (json.RawMessage, error)
	translatePhrasesFn     func(ctx context.Context, req dto.TranslatePhrasesRequest) (json.RawMessage, error)
	exportTripFn           func(ctx context.Context, payload dto.ExportPayload) (io.ReadCloser, error)
}

func (f *fakeUpstream) SafetyTips(ctx context.Context, req dto.TripAdviceRequest) (json.RawMessage, error) {
	if f.safetyTipsFn == nil {
		return nil, errors.New("unexpected SafetyTips call")
	}
	return f.safetyTipsFn(ctx, req)
}

func (f *fakeUpstream) ItinerarySuggestions(ctx context.Context, req dto.TripAdviceRequest) (json.RawMessage, error) {
	if f.itinerarySuggestionsFn == nil {
		return nil, errors.New("unexpected ItinerarySuggestions call")
	}
	return f.itinerarySuggestionsFn(ctx, req)
}

func (f *fakeUpstream) TranslatePhrases(ctx context.Context, req dto.TranslatePhrasesRequest) (json.RawMessage, error) {
	if f.translatePhrasesFn == nil {
		return nil, errors.New("unexpected TranslatePhrases call")
	}
	return f.translatePhrasesFn(ctx, req)
}

func (f *fakeUpstream) ExportTrip(ctx context.Context, payload dto.ExportPayload) (io.ReadCloser, error) {
	if f.exportTripFn == nil {
		return nil, errors.New("unexpected ExportTrip call")
	}
	return f.exportTripFn(ctx, payload)
}

var _ UpstreamClient = (*fakeUpstream)(nil)
