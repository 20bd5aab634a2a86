// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care which database they are
// talking to. By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main.go. Zero handler changes. (We ship two
//     backends — sqlite and postgres — picked by config at startup.)
//
//   - Writing tests = pass any implementation that satisfies the
//     interface. Handler tests run against the sqlite backend with a
//     throwaway database file; no postgres server needed.
//
// This is the Dependency Inversion Principle in practice.
package storage

import (
	"errors"

	"github.com/aanand-mishra/persons-api/internal/types"
)

// ErrPersonNotFound is the sentinel for "no record with that id".
//
// Backends wrap it (fmt.Errorf with %w) so handlers can classify the
// failure with errors.Is and map it to 404 — without string-matching
// driver-specific messages like sql.ErrNoRows.
var ErrPersonNotFound = errors.New("person not found")

// Storage is the database contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
type Storage interface {
	// CreatePerson inserts a new person record and returns the auto-
	// generated primary-key ID. IDs are assigned by an always-rising
	// sequence and are never reused, even after a delete.
	CreatePerson(name string, age int, address string, work string) (int64, error)

	// GetPersonByID fetches a single person by primary key.
	// Returns an error wrapping ErrPersonNotFound if no row matches.
	GetPersonByID(id int64) (types.Person, error)

	// GetPersons returns every person record in insertion order.
	// Returns an empty slice (not nil) if there are none.
	GetPersons() ([]types.Person, error)

	// UpdatePersonByID overwrites the fields of an existing record and
	// returns the stored result. Returns an error wrapping
	// ErrPersonNotFound if the id is absent.
	UpdatePersonByID(id int64, person types.Person) (types.Person, error)

	// DeletePersonByID removes a record permanently. Returns an error
	// wrapping ErrPersonNotFound if the id is absent.
	DeletePersonByID(id int64) error
}
