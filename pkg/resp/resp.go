package resp

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func WriteJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, ErrorResponse{Error: message})
}

func WriteErrorDetails(w http.ResponseWriter, status int, message, details string) {
	WriteJSONResponse(w, status, ErrorResponse{Error: message, Details: details})
}
