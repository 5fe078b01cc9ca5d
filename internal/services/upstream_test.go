package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRIPPLANNER_BACK-END/internal/config"
	"TRIPPLANNER_BACK-END/internal/dto"
)

func clientFor(url string) *Client {
	return NewClient(config.UpstreamConfig{
		SafetyURL:    url,
		PhraseURL:    url,
		ItineraryURL: url,
		ExportURL:    url,
		Timeout:      2 * time.Second,
	})
}

func TestSafetyTipsRelaysPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/safety-tips", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.TripAdviceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Paris", req.Location)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tips":["Stay hydrated"]}`))
	}))
	defer srv.Close()

	raw, err := clientFor(srv.URL).SafetyTips(context.Background(), dto.TripAdviceRequest{
		Location:          "Paris",
		NumberOfTravelers: 2,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tips":["Stay hydrated"]}`, string(raw))
}

func TestUpstreamErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"Unsupported language"}`))
	}))
	defer srv.Close()

	_, err := clientFor(srv.URL).TranslatePhrases(context.Background(), dto.TranslatePhrasesRequest{
		LanguageOrCountry: "Atlantis",
		PhraseType:        "greetings",
	})

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusUnprocessableEntity, upErr.Status)
	assert.Equal(t, "Unsupported language", upErr.Message())
}

func TestUpstreamErrorMessageFallsBack(t *testing.T) {
	err := &UpstreamError{Status: http.StatusBadGateway, Body: []byte("not json")}
	assert.Equal(t, "upstream responded with status 502", err.Message())
}

func TestUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := clientFor(srv.URL).ItinerarySuggestions(context.Background(), dto.TripAdviceRequest{})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestTimeoutMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(config.UpstreamConfig{
		SafetyURL: srv.URL,
		Timeout:   20 * time.Millisecond,
	})
	_, err := c.SafetyTips(context.Background(), dto.TripAdviceRequest{})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestExportTripStreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export", r.URL.Path)

		var payload dto.ExportPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 55.5, payload.CostSummary.Total)

		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	doc, err := clientFor(srv.URL).ExportTrip(context.Background(), dto.ExportPayload{
		CostSummary: dto.ExportCostSummary{Total: 55.5, PerTraveler: 27.75},
	})
	require.NoError(t, err)
	defer doc.Close()

	body, err := io.ReadAll(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(body))
}

func TestExportTripNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"PDF generation failed"}`))
	}))
	defer srv.Close()

	_, err := clientFor(srv.URL).ExportTrip(context.Background(), dto.ExportPayload{})

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "PDF generation failed", upErr.Message())
}
