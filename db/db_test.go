package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamspd/StudyNotes/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func createUser(t *testing.T, database *DB, username string) *models.User {
	t.Helper()
	user, err := database.CreateUser(models.UserRequest{Username: username, Password: "secret123"})
	require.NoError(t, err)
	return user
}

func TestInitDBIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := InitDB(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := InitDB(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestCreateUserRoles(t *testing.T) {
	database := newTestDB(t)

	admin := createUser(t, database, "first")
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)

	user := createUser(t, database, "second")
	assert.Equal(t, models.RoleUser, user.Role)

	_, err := database.CreateUser(models.UserRequest{Username: "second", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = database.CreateUser(models.UserRequest{Username: "third", Password: "123"})
	assert.Error(t, err)
}

func TestGetUser(t *testing.T) {
	database := newTestDB(t)
	created := createUser(t, database, "reader")

	byName, err := database.GetUserByUsername("reader")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = database.GetUserByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticateUser(t *testing.T) {
	database := newTestDB(t)
	createUser(t, database, "reader")

	user, err := database.AuthenticateUser("reader", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)

	_, err = database.AuthenticateUser("reader", "wrong-password")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = database.AuthenticateUser("nobody", "secret123")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestFavorites(t *testing.T) {
	database := newTestDB(t)
	user := createUser(t, database, "reader")

	require.NoError(t, database.AddFavorite(user.ID, "A-1-1-1"))
	require.NoError(t, database.AddFavorite(user.ID, "A-1-1-1"), "adding twice is allowed")
	require.NoError(t, database.AddFavorite(user.ID, "B-2-1-1"))
	assert.Error(t, database.AddFavorite(user.ID, "  "))

	favorites, err := database.ListFavorites(user.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, 2)

	set, err := database.FavoriteSet(user.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"A-1-1-1": true, "B-2-1-1": true}, set)

	require.NoError(t, database.RemoveFavorite(user.ID, "A-1-1-1"))
	assert.ErrorIs(t, database.RemoveFavorite(user.ID, "A-1-1-1"), ErrNotFound)

	other := createUser(t, database, "other")
	otherSet, err := database.FavoriteSet(other.ID)
	require.NoError(t, err)
	assert.Empty(t, otherSet)
}

func TestPreferences(t *testing.T) {
	database := newTestDB(t)
	user := createUser(t, database, "reader")

	prefs, err := database.GetUserPreferences(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Filter{}, prefs.Filter())

	subject := "건축계획"
	all := models.AllOption
	freq := 3
	sorted := true
	updated, err := database.UpdateUserPreferences(user.ID, models.UserPreferencesRequest{
		Subject:         &subject,
		MainCategory:    &all,
		MinFrequency:    &freq,
		SortByFrequency: &sorted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.Filter{Subject: "건축계획", MinFrequency: 3, SortByFrequency: true}, updated.Filter())

	conceptOnly := true
	updated, err = database.UpdateUserPreferences(user.ID, models.UserPreferencesRequest{ConceptOnly: &conceptOnly})
	require.NoError(t, err)
	assert.Equal(t, "건축계획", updated.Subject, "unset fields are kept")
	assert.True(t, updated.ConceptOnly)
}

func TestExports(t *testing.T) {
	database := newTestDB(t)
	user := createUser(t, database, "reader")

	export, err := database.CreateExport(&user.ID, models.Filter{Subject: "시공", ConceptOnly: true})
	require.NoError(t, err)
	assert.Equal(t, models.ExportPending, export.Status)
	require.NotNil(t, export.UserID)
	assert.Equal(t, user.ID, *export.UserID)
	assert.Equal(t, models.Filter{Subject: "시공", ConceptOnly: true}, export.Filter)
	assert.Nil(t, export.FinishedAt)

	require.NoError(t, database.MarkExportRunning(export.ID))
	require.NoError(t, database.MarkExportDone(export.ID, "/tmp/notes.pdf"))

	done, err := database.GetExport(export.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportDone, done.Status)
	assert.Equal(t, "/tmp/notes.pdf", done.FilePath)
	assert.NotNil(t, done.FinishedAt)

	anonymous, err := database.CreateExport(nil, models.Filter{})
	require.NoError(t, err)
	assert.Nil(t, anonymous.UserID)
	require.NoError(t, database.MarkExportFailed(anonymous.ID, errors.New("chrome not found")))

	failed, err := database.GetExport(anonymous.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportFailed, failed.Status)
	assert.Equal(t, "chrome not found", failed.Error)

	_, err = database.GetExport("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, database.MarkExportRunning("missing"), ErrNotFound)
}
