package utils

import (
	"encoding/json"
	"net/http"

	"TRIPPLANNER_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a structured JSON error response.
// The error string is the user-facing message; details carries optional
// diagnostic text and is omitted when empty.
func WriteErrorResponse(w http.ResponseWriter, status int, errMsg, details string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errMsg, Details: details})
}
