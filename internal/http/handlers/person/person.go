// Package person contains all HTTP handlers related to the Person resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a database.
// To inject dependencies we use a factory function that:
//  1. Accepts dependencies (storage)
//  2. Returns a function with the exact signature the router needs
//
// Because the inner function "closes over" the outer parameters, it can
// access `storage` even after the factory call has returned.
// This is called a closure. Example:
//
//	router.HandleFunc("POST /persons", person.New(storage))
//	//                                        ^^^^^^^^^^^^^
//	//                   New(storage) is called ONCE at startup.
//	//                   It returns a handler func which is called
//	//                   on EVERY incoming request.
package person

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/persons-api/internal/storage"
	"github.com/aanand-mishra/persons-api/internal/types"
	"github.com/aanand-mishra/persons-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// parseID extracts and parses the {id} path segment.
//
// r.PathValue("id") works because Go 1.22+ supports named path
// parameters in ServeMux patterns: "GET /persons/{id}".
//
// A non-numeric id gets the same treatment as a numeric id with no
// record behind it: the path simply names nothing, so the caller
// responds 404. The ok result tells the handler to stop.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /persons
// Creates a new person record from the JSON request body.
//
// Request body (JSON) — all four fields required:
//
//	{ "name": "Ada", "age": 36, "address": "12 Crescent Rd", "work": "Engineer" }
//
// Success response (201 Created): empty body, with a Location header
// pointing at the new record:
//
//	Location: /persons/1
//
// Error responses:
//
//	422 Unprocessable Entity — empty body, malformed JSON, wrong field
//	                           types, or a missing required field
//	500 Internal             — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	// This is the factory function. It runs ONCE when the route is registered.
	// It captures `storage` in the closure below.

	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a person")

		// ── Step 1: Decode JSON body into the input struct ────────────
		// PersonInput (not Person) so that a present-but-zero value like
		// {"age": 0} survives validation — see the types package.
		var input types.PersonInput

		// json.NewDecoder reads from r.Body (the raw bytes sent by the client).
		// Fields in the JSON are matched to struct fields using json:"..." tags.
		err := json.NewDecoder(r.Body).Decode(&input)

		if errors.Is(err, io.EOF) {
			// io.EOF means the body was completely empty — nothing to decode.
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.GeneralError(errors.New("request body is empty")))
			return // stop further processing
		}

		if err != nil {
			// Malformed JSON, or a field with the wrong primitive type
			// (e.g. "age": "thirty") — the decoder rejects both.
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.GeneralError(err))
			return
		}

		// ── Step 2: Validate the decoded struct ───────────────────────
		// validator.New().Struct(v) checks all validate:"..." tags on v.
		// It returns nil if everything is valid, or a ValidationErrors
		// (which implements the error interface) if any rule fails.
		if err := validator.New().Struct(input); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.ValidationError(validateErrs))
			return
		}

		// ── Step 3: Persist to database ───────────────────────────────
		// We call the Storage interface method — not a concrete backend.
		// This keeps the handler database-agnostic. The pointers are
		// safe to dereference: validation guarantees none are nil.
		lastID, err := storage.CreatePerson(input.Name, *input.Age, *input.Address, *input.Work)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("person created", slog.Int64("id", lastID))

		// ── Step 4: Return 201 Created ────────────────────────────────
		// The body stays empty; the Location header tells the client
		// where the new record lives.
		w.Header().Set("Location", fmt.Sprintf("/persons/%d", lastID))
		w.WriteHeader(http.StatusCreated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /persons/{id}
// Fetches a single person record by primary key.
//
// Success response (200 OK):
//
//	{ "id": 1, "name": "Ada", "age": 36, "address": "12 Crescent Rd", "work": "Engineer" }
//
// Error responses:
//
//	404 Not Found — no record with that id (or a non-numeric id)
//	500 Internal  — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.NotFound())
			return
		}

		slog.Info("getting a person", slog.Int64("id", id))

		person, err := storage.GetPersonByID(id)
		if err != nil {
			writeStorageError(w, id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, person)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /persons
// Returns a JSON array of all person records, in creation order.
//
// Returns an empty array [] (not null) when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all persons")

		persons, err := storage.GetPersons()
		if err != nil {
			slog.Error("error getting persons", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, persons)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PATCH /persons/{id}
// Partially updates an existing record: only the fields present in the
// body change, every other field keeps its prior value.
//
// Request body (JSON) — any subset of the updatable fields:
//
//	{ "age": 37 }
//
// Success response (200 OK) — the full updated record.
//
// Error responses:
//
//	404 Not Found   — no record with that id
//	400 Bad Request — empty/malformed body:
//	                  { "error_text": "Invalid request body" }
//	                  or the body names a field that person records
//	                  do not have:
//	                  { "error_text": "Invalid field provided" }
//	422 Unprocessable Entity — a named field carries the wrong JSON type
//	500 Internal    — database error
//
// The update is all-or-nothing: the patch is merged into a copy of the
// stored record first, and only a fully valid merge reaches the
// database. A patch that mixes valid and invalid keys changes nothing.
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.NotFound())
			return
		}

		slog.Info("updating a person", slog.Int64("id", id))

		// ── Step 1: Decode the patch ──────────────────────────────────
		var patch types.Patch

		// A body that is empty or not a JSON object gets the fixed
		// message, not the raw decoder error — Go's decoder messages
		// describe our internals, not the client's mistake.
		err := json.NewDecoder(r.Body).Decode(&patch)
		if err != nil {
			if errors.Is(err, io.EOF) {
				slog.Info("rejecting patch with empty body", slog.Int64("id", id))
			}
			response.WriteJSON(w, http.StatusBadRequest, response.InvalidBody())
			return
		}

		// ── Step 2: Fetch the record being patched ────────────────────
		person, err := storage.GetPersonByID(id)
		if err != nil {
			writeStorageError(w, id, err)
			return
		}

		// ── Step 3: Merge the patch into a copy ───────────────────────
		updated, err := person.ApplyPatch(patch)
		if err != nil {
			if errors.Is(err, types.ErrUnknownField) {
				slog.Info("rejecting patch with unknown field",
					slog.Int64("id", id),
					slog.String("error", err.Error()))
				response.WriteJSON(w, http.StatusBadRequest, response.InvalidField())
				return
			}
			// Known field, wrong value type.
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.GeneralError(err))
			return
		}

		// ── Step 4: Persist and echo the stored result ────────────────
		stored, err := storage.UpdatePersonByID(id, updated)
		if err != nil {
			writeStorageError(w, id, err)
			return
		}

		slog.Info("person updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, stored)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /persons/{id}
// Permanently removes a person record. There is no soft delete: after
// this returns, the id is gone from every read operation and will never
// be assigned to a new record.
//
// Success response: 204 No Content, empty body.
//
// Error responses:
//
//	404 Not Found — no record with that id
//	500 Internal  — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound, response.NotFound())
			return
		}

		slog.Info("deleting a person", slog.Int64("id", id))

		if err := storage.DeletePersonByID(id); err != nil {
			writeStorageError(w, id, err)
			return
		}

		slog.Info("person deleted", slog.Int64("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeStorageError maps a storage failure onto the wire: the not-found
// sentinel becomes a 404 with the fixed body, anything else (connectivity,
// SQL errors) becomes an unclassified 500.
func writeStorageError(w http.ResponseWriter, id int64, err error) {
	if errors.Is(err, storage.ErrPersonNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.NotFound())
		return
	}

	slog.Error("storage error",
		slog.Int64("id", id),
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
