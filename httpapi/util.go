package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/shaply/automesh/shared"
)

// sendResponseAsJSON encodes data as the response body, matching the
// teacher's helper of the same name. Encoding failures can only be logged,
// since the status/headers are already written by the time they surface.
func sendResponseAsJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		shared.DebugPrint("httpapi: encoding JSON response: %v", err)
	}
}

// sendErrorResponse wraps err's message in a small JSON envelope under the
// "error" key.
func sendErrorResponse(w http.ResponseWriter, err error, status int) {
	sendResponseAsJSON(w, map[string]string{"error": err.Error()}, status)
}

// sendJSONResponse writes dataJSON, an already-marshaled JSON document,
// directly to the response body, matching the teacher's helper of the
// same name -- used for payloads (like a blackboard snapshot) that are
// marshaled once upstream rather than built from a Go value here.
func sendJSONResponse(w http.ResponseWriter, dataJSON []byte, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(dataJSON); err != nil {
		shared.DebugPrint("httpapi: writing JSON response: %v", err)
	}
}
