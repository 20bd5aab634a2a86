// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and utils can all import types without depending
// on each other.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Person represents one person record in our system: the shape that is
// stored and the shape that read responses serialise.
//
// The json:"..." tags control how each field appears when encoded
// (lowercase names match REST API conventions). Without them Go would
// use the exported field names, e.g. "Name".
//
// Validation rules live on PersonInput, not here — by the time a
// Person exists, its fields have already been checked.
type Person struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Address string `json:"address"`
	Work    string `json:"work"`
}

// PersonInput is the create payload: all four fields must be PRESENT,
// enforced by the go-playground/validator "required" tags.
//
// Age, Address, and Work are pointers so that presence and the zero
// value stay distinguishable: "required" on a plain int would reject
// {"age": 0}, and 0 is a perfectly valid age. A nil pointer means the
// key was absent from the JSON; a pointer to the zero value means the
// client really sent 0 or "". Name stays a plain string because the
// empty string is NOT a valid name — for that one field, rejecting the
// zero value is exactly what we want.
type PersonInput struct {
	Name    string  `json:"name"    validate:"required"`
	Age     *int    `json:"age"     validate:"required"`
	Address *string `json:"address" validate:"required"`
	Work    *string `json:"work"    validate:"required"`
}

// Patch is the body of a partial update: field name → new value.
//
// The values stay as raw JSON until ApplyPatch decides which Go type
// each one must decode into. Decoding the whole body into a Person
// struct would silently drop unknown keys — and an unknown key must be
// reported as an error, not ignored.
type Patch map[string]json.RawMessage

// ErrUnknownField is returned by ApplyPatch when the patch names a
// field that does not exist on a person record (or names "id", which
// is immutable).
var ErrUnknownField = errors.New("unknown field")

// ApplyPatch returns a copy of the record with every field named in
// the patch overwritten by its new value. The receiver is a value, so
// the stored record is never touched: if ANY key is unknown or ANY
// value fails to decode, the zero Person and an error come back and
// nothing is applied — all or nothing.
//
// Field names are checked against an explicit allow-list of the four
// updatable columns. "id" is deliberately absent from the list: the
// primary key is immutable for the lifetime of the record.
func (p Person) ApplyPatch(patch Patch) (Person, error) {
	for field, raw := range patch {
		var err error

		switch field {
		case "name":
			err = json.Unmarshal(raw, &p.Name)
		case "age":
			err = json.Unmarshal(raw, &p.Age)
		case "address":
			err = json.Unmarshal(raw, &p.Address)
		case "work":
			err = json.Unmarshal(raw, &p.Work)
		default:
			return Person{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}

		if err != nil {
			// The key was valid but the value had the wrong JSON type,
			// e.g. {"age": "thirty"}. This is a validation failure,
			// distinct from ErrUnknownField.
			return Person{}, fmt.Errorf("field %q: %w", field, err)
		}
	}

	return p, nil
}
