package dto

import "encoding/json"

// TripAdviceRequest is the payload forwarded to the safety-tips and
// itinerary-suggestion services. Field names follow the upstream APIs,
// which expect numberOfTravelers rather than travelers.
type TripAdviceRequest struct {
	Location          string `json:"location"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	NumberOfTravelers int    `json:"numberOfTravelers"`
}

// TranslatePhrasesRequest is the payload for the phrase translation proxy
type TranslatePhrasesRequest struct {
	LanguageOrCountry string `json:"languageOrCountry"`
	PhraseType        string `json:"phraseType"`
}

// PhrasesResponse relays the translation service's payload
type PhrasesResponse struct {
	Success    bool            `json:"success"`
	Phrases    json.RawMessage `json:"phrases,omitempty"`
	Language   string          `json:"language,omitempty"`
	PhraseType string          `json:"phraseType,omitempty"`
}

// SafetyTipsResponse wraps the safety service's payload unmodified
type SafetyTipsResponse struct {
	Success    bool            `json:"success"`
	TripID     string          `json:"tripId"`
	SafetyTips json.RawMessage `json:"safetyTips"`
}

// ProxyErrorResponse is the {success:false, ...} error envelope shared by
// all proxy endpoints
type ProxyErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ExportCostSummary is the cost block sent alongside the trip to the
// export service
type ExportCostSummary struct {
	Total       float64 `json:"total"`
	PerTraveler float64 `json:"perTraveler"`
}

// ExportPayload is the document the export service renders to PDF
type ExportPayload struct {
	Trip        TripResponse      `json:"trip"`
	CostSummary ExportCostSummary `json:"costSummary"`
}
