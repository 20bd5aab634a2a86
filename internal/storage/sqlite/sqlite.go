// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. It is the default backend for local development, and the
// handler tests run against it with a throwaway database file.
// Production deployments switch to the postgres backend via config.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/persons-api/internal/config"
	"github.com/aanand-mishra/persons-api/internal/storage"
	"github.com/aanand-mishra/persons-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	// Without this the sql.Open("sqlite3", ...) call would fail with
	// "unknown driver".
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// Compile-time check that SQLite implements storage.Storage.
var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at the path specified in
// cfg.Storage.Path, creates the people_records table if it does not
// already exist, and returns a ready-to-use *SQLite.
//
// Naming convention: New() acts as a constructor. Go has no constructors,
// so the community convention is a package-level New() function that
// returns an initialised instance (and an error as the second value).
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	// The first actual connection happens on the first query.
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup. If the table already exists nothing happens.
	//
	// Schema:
	//   id      — integer primary key, auto-incremented by SQLite.
	//             AUTOINCREMENT (as opposed to the bare rowid) guarantees
	//             ids are never reused after a delete.
	//   name    — person's full name
	//   age     — age in years
	//   address — postal address
	//   work    — occupation
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS people_records (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			name    TEXT    NOT NULL,
			age     INTEGER NOT NULL,
			address TEXT    NOT NULL,
			work    TEXT    NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreatePerson inserts a new row into the people_records table.
//
// Prepared statements use placeholders (?). The database driver sends
// the query and the values separately, so the engine treats the values
// as pure data, never as SQL syntax — no injection via concatenation.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreatePerson(name string, age int, address, work string) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO people_records (name, age, address, work) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreatePerson: prepare: %w", err)
	}
	// defer ensures the statement is closed when this function returns,
	// even if we return early due to an error. Prevents resource leaks.
	defer stmt.Close()

	// Exec runs the prepared statement, substituting ? in the same order
	// the arguments are listed here. Order matters!
	result, err := stmt.Exec(name, age, address, work)
	if err != nil {
		return 0, fmt.Errorf("CreatePerson: exec: %w", err)
	}

	// LastInsertId returns the auto-generated primary key of the new row.
	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreatePerson: last insert id: %w", err)
	}

	return lastID, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetPersonByID fetches exactly one row matched by primary key.
//
// QueryRow executes the query and returns a *Row — a single-row result.
// Scan reads the columns from that row into Go variables IN ORDER; we
// pass pointers (&person.ID) so Scan can write into those locations.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetPersonByID(id int64) (types.Person, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, age, address, work FROM people_records WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Person{}, fmt.Errorf("GetPersonByID: prepare: %w", err)
	}
	defer stmt.Close()

	var person types.Person

	// QueryRow returns exactly one row. If the query finds no match it
	// does NOT return nil — the error surfaces only when you call Scan.
	err = stmt.QueryRow(id).Scan(
		&person.ID,
		&person.Name,
		&person.Age,
		&person.Address,
		&person.Work,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Map the driver sentinel onto our own so handlers can use
			// errors.Is(err, storage.ErrPersonNotFound) without knowing
			// which backend produced it.
			return types.Person{}, fmt.Errorf("%w: id %d", storage.ErrPersonNotFound, id)
		}
		return types.Person{}, fmt.Errorf("GetPersonByID: scan: %w", err)
	}

	return person, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetPersons returns all rows as a slice, in insertion (id) order.
//
// Query (unlike QueryRow) returns *sql.Rows — a cursor over multiple rows.
// We iterate with rows.Next() which advances the cursor and returns false
// when there are no more rows. Always defer rows.Close() to release the
// database connection.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetPersons() ([]types.Person, error) {
	stmt, err := s.Db.Prepare(
		// Explicitly list columns — never use SELECT * in production code.
		// If a column is added later, SELECT * would break Scan's ordering.
		// ORDER BY id makes the insertion-order guarantee explicit rather
		// than relying on the engine's default row order.
		"SELECT id, name, age, address, work FROM people_records ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetPersons: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetPersons: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	// Pre-allocate an empty (non-nil) slice.
	// Returning [] instead of null in JSON is better API behaviour.
	persons := make([]types.Person, 0)

	for rows.Next() { // advances cursor; returns false when exhausted
		var person types.Person

		if err := rows.Scan(
			&person.ID,
			&person.Name,
			&person.Age,
			&person.Address,
			&person.Work,
		); err != nil {
			return nil, fmt.Errorf("GetPersons: scan row: %w", err)
		}

		persons = append(persons, person)
	}

	// rows.Err() captures any error that occurred during iteration.
	// This is separate from Scan errors.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetPersons: rows iteration: %w", err)
	}

	return persons, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdatePersonByID overwrites a record's fields with the provided values.
// Returns the updated record so the caller can echo it back to the client.
//
// RowsAffected distinguishes "updated" from "no such row": UPDATE on a
// missing id is not an error at the SQL level, it just touches zero rows.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdatePersonByID(id int64, person types.Person) (types.Person, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE people_records SET name = ?, age = ?, address = ?, work = ? WHERE id = ?",
	)
	if err != nil {
		return types.Person{}, fmt.Errorf("UpdatePersonByID: prepare: %w", err)
	}
	defer stmt.Close()

	// Note the argument order matches the ? order in the SQL:
	//   name, age, address, work, id
	result, err := stmt.Exec(person.Name, person.Age, person.Address, person.Work, id)
	if err != nil {
		return types.Person{}, fmt.Errorf("UpdatePersonByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Person{}, fmt.Errorf("UpdatePersonByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Person{}, fmt.Errorf("%w: id %d", storage.ErrPersonNotFound, id)
	}

	// Re-fetch the record so we return exactly what is stored in the DB.
	return s.GetPersonByID(id)
}

// ─────────────────────────────────────────────────────────────────────────────
// DeletePersonByID removes a row by primary key.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeletePersonByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM people_records WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeletePersonByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeletePersonByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeletePersonByID: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", storage.ErrPersonNotFound, id)
	}

	return nil
}
