package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes v flattened into a `{"success": true, ...}` envelope.
// v must encode to a JSON object (or be nil).
func WriteSuccess(w http.ResponseWriter, code int, v any) {
	fields := map[string]json.RawMessage{}
	if v != nil {
		raw, err := json.Marshal(v)
		if err == nil {
			err = json.Unmarshal(raw, &fields)
		}
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	}
	fields["success"] = json.RawMessage("true")
	WriteJSON(w, code, fields)
}

// WriteError writes a `{"success": false, "error": msg}` envelope.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, ErrorEnvelope{Success: false, Error: msg})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
