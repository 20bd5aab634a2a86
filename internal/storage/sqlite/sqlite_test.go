package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/persons-api/internal/config"
	"github.com/aanand-mishra/persons-api/internal/storage"
	"github.com/aanand-mishra/persons-api/internal/storage/sqlite"
	"github.com/aanand-mishra/persons-api/internal/types"
)

// newTestStore opens a throwaway database file under t.TempDir, so each
// test gets a fresh store and the file vanishes with the test.
func newTestStore(t *testing.T) *sqlite.SQLite {
	t.Helper()

	cfg := &config.Config{
		Env: "dev",
		Storage: config.Storage{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "persons_test.db"),
		},
	}

	store, err := sqlite.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Db.Close() })

	return store
}

func TestCreateAndGetPerson(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreatePerson("Johnathan Davis", 30, "123 Maple Street", "Software Engineer")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	person, err := store.GetPersonByID(id)
	require.NoError(t, err)
	assert.Equal(t, types.Person{
		ID:      1,
		Name:    "Johnathan Davis",
		Age:     30,
		Address: "123 Maple Street",
		Work:    "Software Engineer",
	}, person)
}

func TestGetPersonByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetPersonByID(999)
	assert.ErrorIs(t, err, storage.ErrPersonNotFound)
}

func TestGetPersonsEmpty(t *testing.T) {
	store := newTestStore(t)

	persons, err := store.GetPersons()
	require.NoError(t, err)

	// Empty, but non-nil — encodes as [] rather than null.
	assert.NotNil(t, persons)
	assert.Len(t, persons, 0)
}

func TestGetPersonsInsertionOrder(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreatePerson("Johnathan Davis", 30, "123 Maple Street", "Software Engineer")
	require.NoError(t, err)
	_, err = store.CreatePerson("Janet Smithson", 25, "456 Oak Boulevard", "Data Scientist")
	require.NoError(t, err)

	persons, err := store.GetPersons()
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, "Johnathan Davis", persons[0].Name)
	assert.Equal(t, "Janet Smithson", persons[1].Name)
}

func TestUpdatePersonByID(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreatePerson("Johnathan Davis", 30, "123 Maple Street", "Software Engineer")
	require.NoError(t, err)

	updated, err := store.UpdatePersonByID(id, types.Person{
		Name:    "Janet Smithson",
		Age:     25,
		Address: "456 Oak Boulevard",
		Work:    "Data Scientist",
	})
	require.NoError(t, err)

	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "Janet Smithson", updated.Name)
	assert.Equal(t, 25, updated.Age)

	// The returned record is exactly what a later read sees.
	fetched, err := store.GetPersonByID(id)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestUpdatePersonByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdatePersonByID(999, types.Person{
		Name: "Nobody", Age: 1, Address: "x", Work: "y",
	})
	assert.ErrorIs(t, err, storage.ErrPersonNotFound)
}

func TestDeletePersonByID(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreatePerson("Johnathan Davis", 30, "123 Maple Street", "Software Engineer")
	require.NoError(t, err)

	require.NoError(t, store.DeletePersonByID(id))

	_, err = store.GetPersonByID(id)
	assert.ErrorIs(t, err, storage.ErrPersonNotFound)

	persons, err := store.GetPersons()
	require.NoError(t, err)
	assert.Len(t, persons, 0)
}

func TestDeletePersonByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.DeletePersonByID(999)
	assert.ErrorIs(t, err, storage.ErrPersonNotFound)
}

func TestIDsNeverReusedAfterDelete(t *testing.T) {
	store := newTestStore(t)

	first, err := store.CreatePerson("Johnathan Davis", 30, "123 Maple Street", "Software Engineer")
	require.NoError(t, err)

	require.NoError(t, store.DeletePersonByID(first))

	// AUTOINCREMENT keeps the sequence rising past deleted rows.
	second, err := store.CreatePerson("Janet Smithson", 25, "456 Oak Boulevard", "Data Scientist")
	require.NoError(t, err)
	assert.Greater(t, second, first)
}
