package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"TRIPPLANNER_BACK-END/internal/dto"
	"TRIPPLANNER_BACK-END/internal/itinerary"
	"TRIPPLANNER_BACK-END/internal/models"
	"TRIPPLANNER_BACK-END/internal/services"
	"TRIPPLANNER_BACK-END/internal/storage"
	"TRIPPLANNER_BACK-END/internal/utils"
)

// UpstreamClient defines the microservice calls the proxy handlers depend
// on. Defining the interface here, in the consumer package, lets tests
// inject a fake without any network access.
type UpstreamClient interface {
	SafetyTips(ctx context.Context, req dto.TripAdviceRequest) (json.RawMessage, error)
	ItinerarySuggestions(ctx context.Context, req dto.TripAdviceRequest) (json.RawMessage, error)
	TranslatePhrases(ctx context.Context, req dto.TranslatePhrasesRequest) (json.RawMessage, error)
	ExportTrip(ctx context.Context, payload dto.ExportPayload) (io.ReadCloser, error)
}

// Compile-time check: the production client satisfies the interface.
var _ UpstreamClient = (*services.Client)(nil)

// ProxyHandler implements the pass-through endpoints backed by the external
// microservices. It shapes the request from stored trip data and relays the
// upstream's payload or failure.
type ProxyHandler struct {
	trips    storage.TripStore
	upstream UpstreamClient
}

// NewProxyHandler creates a new ProxyHandler
func NewProxyHandler(trips storage.TripStore, upstream UpstreamClient) *ProxyHandler {
	return &ProxyHandler{trips: trips, upstream: upstream}
}

// SafetyTips handles POST /trips/{id}/safety-tips
// @Summary Fetch safety tips for a trip's destination
// @Tags advice
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.SafetyTipsResponse
// @Failure 404 {object} dto.ProxyErrorResponse
// @Failure 500 {object} dto.ProxyErrorResponse
// @Router /trips/{id}/safety-tips [post]
func (h *ProxyHandler) SafetyTips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	tips, err := h.upstream.SafetyTips(r.Context(), adviceRequest(trip))
	if err != nil {
		log.Printf("safety tips upstream error for trip %s: %v", trip.ID, err)
		writeProxyError(w, http.StatusInternalServerError, "Failed to fetch safety tips", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SafetyTipsResponse{
		Success:    true,
		TripID:     trip.ID.String(),
		SafetyTips: tips,
	})
}

// ItinerarySuggestions handles POST /trips/{id}/itinerary-suggestions
// The upstream's fields are merged into the response envelope at the top
// level rather than nested under a key.
// @Summary Generate itinerary suggestions for a trip
// @Tags advice
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} dto.ProxyErrorResponse
// @Failure 500 {object} dto.ProxyErrorResponse
// @Router /trips/{id}/itinerary-suggestions [post]
func (h *ProxyHandler) ItinerarySuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	raw, err := h.upstream.ItinerarySuggestions(r.Context(), adviceRequest(trip))
	if err != nil {
		log.Printf("itinerary suggestions upstream error for trip %s: %v", trip.ID, err)
		writeProxyError(w, http.StatusInternalServerError, "Failed to fetch itinerary suggestions", err)
		return
	}

	merged := map[string]any{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		writeProxyError(w, http.StatusInternalServerError, "Failed to fetch itinerary suggestions", err)
		return
	}
	merged["success"] = true
	merged["tripId"] = trip.ID.String()

	utils.WriteJSONResponse(w, http.StatusOK, merged)
}

// TranslatePhrases handles POST /api/phrases/translate
// @Summary Translate common travel phrases via the phrase service
// @Tags advice
// @Accept json
// @Produce json
// @Param request body dto.TranslatePhrasesRequest true "Phrase request"
// @Success 200 {object} dto.PhrasesResponse
// @Failure 400 {object} dto.ProxyErrorResponse
// @Failure 503 {object} dto.ProxyErrorResponse
// @Router /api/phrases/translate [post]
func (h *ProxyHandler) TranslatePhrases(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.TranslatePhrasesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProxyError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.LanguageOrCountry == "" || req.PhraseType == "" {
		writeProxyError(w, http.StatusBadRequest, "Both languageOrCountry and phraseType are required", nil)
		return
	}

	req.LanguageOrCountry = truncate(req.LanguageOrCountry, 50)
	req.PhraseType = truncate(req.PhraseType, 30)
	if req.LanguageOrCountry == "" || req.PhraseType == "" {
		writeProxyError(w, http.StatusBadRequest, "Invalid input parameters", nil)
		return
	}

	raw, err := h.upstream.TranslatePhrases(r.Context(), req)
	if err != nil {
		var upErr *services.UpstreamError
		switch {
		case errors.Is(err, services.ErrUnavailable):
			writeProxyError(w, http.StatusServiceUnavailable, "Translation service is currently unavailable", nil)
		case errors.As(err, &upErr):
			writeProxyError(w, upErr.Status, upErr.Message(), nil)
		default:
			writeProxyError(w, http.StatusInternalServerError, "Internal server error", err)
		}
		return
	}

	var upstream struct {
		Success    bool            `json:"success"`
		Phrases    json.RawMessage `json:"phrases"`
		Language   string          `json:"language"`
		PhraseType string          `json:"phraseType"`
		Error      string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &upstream); err != nil {
		writeProxyError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if !upstream.Success {
		msg := upstream.Error
		if msg == "" {
			msg = "Microservice returned an error"
		}
		writeProxyError(w, http.StatusBadRequest, msg, nil)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.PhrasesResponse{
		Success:    true,
		Phrases:    upstream.Phrases,
		Language:   upstream.Language,
		PhraseType: upstream.PhraseType,
	})
}

// ExportTrip handles POST /api/trips/{id}/export
// The trip and its freshly computed cost summary are sent to the export
// service; the returned PDF is streamed back with attachment headers.
// @Summary Export a trip as a PDF document
// @Tags advice
// @Produce application/pdf
// @Param id path string true "Trip ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ProxyErrorResponse
// @Failure 500 {object} dto.ProxyErrorResponse
// @Router /api/trips/{id}/export [post]
func (h *ProxyHandler) ExportTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	sum := itinerary.Cost(trip.Itinerary, trip.Travelers)
	payload := dto.ExportPayload{
		Trip: tripToResponse(trip),
		CostSummary: dto.ExportCostSummary{
			Total:       sum.Total,
			PerTraveler: sum.PerTraveler,
		},
	}

	doc, err := h.upstream.ExportTrip(r.Context(), payload)
	if err != nil {
		log.Printf("export upstream error for trip %s: %v", trip.ID, err)
		var upErr *services.UpstreamError
		if errors.As(err, &upErr) {
			writeProxyError(w, http.StatusInternalServerError, upErr.Message(), nil)
			return
		}
		writeProxyError(w, http.StatusInternalServerError, "Failed to export trip", err)
		return
	}
	defer doc.Close()

	name := trip.TripName
	if name == "" {
		name = "trip"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"_export.pdf"))
	if _, err := io.Copy(w, doc); err != nil {
		// Headers are already out; all we can do is log the broken stream.
		log.Printf("export stream error for trip %s: %v", trip.ID, err)
	}
}

// loadTrip parses the trip ID and fetches the trip, writing the proxy-style
// 404 envelope when either step fails.
func (h *ProxyHandler) loadTrip(w http.ResponseWriter, r *http.Request) (models.Trip, bool) {
	tripID, err := tripIDFromPath(r)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusNotFound, dto.ProxyErrorResponse{Error: "Trip not found"})
		return models.Trip{}, false
	}
	trip, err := h.trips.GetByID(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteJSONResponse(w, http.StatusNotFound, dto.ProxyErrorResponse{Error: "Trip not found"})
		} else {
			writeProxyError(w, http.StatusInternalServerError, "Server error", err)
		}
		return models.Trip{}, false
	}
	return trip, true
}

// adviceRequest shapes the payload the advice services expect from a trip.
func adviceRequest(t models.Trip) dto.TripAdviceRequest {
	return dto.TripAdviceRequest{
		Location:          t.Destination,
		StartDate:         utils.FormatTimestamp(t.StartDate),
		EndDate:           utils.FormatTimestamp(t.EndDate),
		NumberOfTravelers: t.Travelers,
	}
}

// truncate trims surrounding whitespace and caps the string at n bytes,
// backing up to a rune boundary so the upstream never sees broken UTF-8.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// writeProxyError writes the {success:false, ...} envelope shared by the
// proxy endpoints. Upstream detail is attached when err is non-nil.
func writeProxyError(w http.ResponseWriter, status int, msg string, err error) {
	resp := dto.ProxyErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	utils.WriteJSONResponse(w, status, resp)
}
