// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Consistent response shapes also make life easier for API consumers —
// they always know what error responses look like.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Error is the body returned for every failure case.
//
// Success responses return whatever shape the handler produces (a person,
// a list, or nothing at all for 201/204). Error responses always look like:
//
//	{ "error_text": "Record not found" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Error struct {
	ErrorText string `json:"error_text"`
}

// Fixed client-facing messages — use these constants instead of raw
// string literals so a typo is caught by the compiler rather than
// silently sending a message no client recognises.
const (
	MsgRecordNotFound = "Record not found"
	MsgInvalidField   = "Invalid field provided"
	MsgInvalidBody    = "Invalid request body"
)

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// Parameters:
//
//	w      — the http.ResponseWriter provided to every handler
//	status — HTTP status code (e.g. http.StatusOK = 200)
//	data   — any Go value; will be JSON-encoded and written to the body
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	// Tell the client the body is JSON, not HTML or plain text.
	w.Header().Set("Content-Type", "application/json")

	// Write the HTTP status line (e.g. "HTTP/1.1 200 OK").
	// This must happen before any body bytes are written.
	w.WriteHeader(status)

	// json.NewEncoder(w) creates a JSON encoder that streams directly
	// into w, avoiding an intermediate buffer.
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Error body.
// Use this for unexpected failures (DB errors, decode errors, etc.)
func GeneralError(err error) Error {
	return Error{ErrorText: err.Error()}
}

// NotFound is the fixed body for a missing record.
func NotFound() Error {
	return Error{ErrorText: MsgRecordNotFound}
}

// InvalidField is the fixed body for a partial update naming an
// unknown field.
func InvalidField() Error {
	return Error{ErrorText: MsgInvalidField}
}

// InvalidBody is the fixed body for a request whose payload could not
// be decoded at all (empty, or not a JSON object).
func InvalidBody() Error {
	return Error{ErrorText: MsgInvalidBody}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Error body.
//
// The go-playground/validator package returns one FieldError per failing
// struct field. We convert each to a plain English sentence and join them
// with ", " so the client sees a single descriptive error string:
//
//	{ "error_text": "field Name is required, field Age is required" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Error {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		// "required" tag — field was missing or zero-valued
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		// Catch-all for any other validation tag (min, max, len, etc.)
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Error{ErrorText: strings.Join(errMessages, ", ")}
}
