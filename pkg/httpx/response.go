package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds request bodies accepted by DecodeJSON.
const MaxBodyBytes = 1 << 20

// ErrBadJSON is returned by DecodeJSON for any malformed body.
var ErrBadJSON = errors.New("invalid JSON body")

// Envelope is the wrapper of every API response.
type Envelope struct {
	OK   bool `json:"ok"`
	Body any  `json:"body"`
}

// ErrorBody is the envelope body of a failed request.
type ErrorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache marks the response as not storable. Every API response carries
// personal data.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteOK writes {"ok":true,"body":body}.
func WriteOK(w http.ResponseWriter, code int, body any) {
	WriteJSON(w, code, Envelope{OK: true, Body: body})
}

// WriteError writes {"ok":false,"body":{"message","error"}}. The error field
// is the status text of code.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteErrorDetails(w, code, message, nil)
}

// WriteErrorDetails is WriteError with per-field messages.
func WriteErrorDetails(w http.ResponseWriter, code int, message string, details map[string]string) {
	WriteJSON(w, code, Envelope{
		OK: false,
		Body: ErrorBody{
			Message: message,
			Error:   http.StatusText(code),
			Details: details,
		},
	})
}

// DecodeJSON decodes a single JSON object from r's body into dst. Unknown
// fields and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single object", ErrBadJSON)
	}
	return nil
}
