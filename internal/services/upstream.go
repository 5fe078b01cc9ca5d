// Package services contains the HTTP clients for the external microservices
// this API proxies to: safety tips, itinerary suggestions, phrase
// translation, and PDF export. Each call forwards a JSON payload to a
// configured base URL and relays the upstream response largely unmodified.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"TRIPPLANNER_BACK-END/internal/config"
	"TRIPPLANNER_BACK-END/internal/dto"
)

// ErrUnavailable is returned when an upstream cannot be reached or the call
// times out. Handlers map it to a service-unavailable response.
var ErrUnavailable = errors.New("upstream service unavailable")

// UpstreamError carries a non-success HTTP status returned by an upstream,
// with the response body preserved so handlers can relay upstream detail.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.Status)
}

// Message extracts the upstream's error message when the body is a JSON
// object with an "error" field; otherwise it falls back to the status text.
func (e *UpstreamError) Message() string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return e.Error()
}

// Client calls the four trip-planning microservices over plain HTTP.
// All calls share one http.Client whose timeout bounds every request.
type Client struct {
	safetyURL    string
	itineraryURL string
	phraseURL    string
	exportURL    string
	http         *http.Client
}

// NewClient constructs a Client from the upstream configuration.
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		safetyURL:    cfg.SafetyURL,
		itineraryURL: cfg.ItineraryURL,
		phraseURL:    cfg.PhraseURL,
		exportURL:    cfg.ExportURL,
		http:         &http.Client{Timeout: cfg.Timeout},
	}
}

// SafetyTips forwards trip details to the safety service and returns its
// JSON payload as received.
func (c *Client) SafetyTips(ctx context.Context, req dto.TripAdviceRequest) (json.RawMessage, error) {
	return c.postJSON(ctx, c.safetyURL+"/safety-tips", req)
}

// ItinerarySuggestions forwards trip details to the itinerary generator and
// returns its JSON payload as received.
func (c *Client) ItinerarySuggestions(ctx context.Context, req dto.TripAdviceRequest) (json.RawMessage, error) {
	return c.postJSON(ctx, c.itineraryURL+"/generate-itinerary", req)
}

// TranslatePhrases forwards a phrase request to the translation service and
// returns its JSON payload as received.
func (c *Client) TranslatePhrases(ctx context.Context, req dto.TranslatePhrasesRequest) (json.RawMessage, error) {
	return c.postJSON(ctx, c.phraseURL+"/generate-phrases", req)
}

// ExportTrip sends the trip plus its cost summary to the export service and
// returns the document stream. The caller must close the returned reader.
func (c *Client) ExportTrip(ctx context.Context, payload dto.ExportPayload) (io.ReadCloser, error) {
	resp, err := c.post(ctx, c.exportURL+"/export", payload)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, &UpstreamError{Status: resp.StatusCode, Body: body}
	}
	return resp.Body, nil
}

// postJSON posts the payload and reads the full response body, returning it
// as raw JSON on success and as an UpstreamError on a non-2xx status.
func (c *Client) postJSON(ctx context.Context, url string, payload any) (json.RawMessage, error) {
	resp, err := c.post(ctx, url, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: body}
	}
	return json.RawMessage(body), nil
}

// post marshals the payload and performs the request. Transport errors and
// timeouts come back wrapped in ErrUnavailable.
func (c *Client) post(ctx context.Context, url string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal upstream payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}
