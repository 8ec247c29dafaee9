package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/adamspd/StudyNotes/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSessionLifecycle(t *testing.T) {
	store := NewSessionStore()
	defer store.Close()

	session, err := store.CreateSession(&models.User{ID: 7, Username: "reader", Role: models.RoleUser})
	require.NoError(t, err)
	assert.Len(t, session.ID, 64)
	assert.Equal(t, SessionLifetime, session.ExpiresAt.Sub(session.CreatedAt))

	got, ok := store.GetSession(session.ID)
	require.True(t, ok)
	assert.Equal(t, "reader", got.Username)

	store.DeleteSession(session.ID)
	_, ok = store.GetSession(session.ID)
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	store := NewSessionStore()
	defer store.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	expiring, err := store.CreateSession(&models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	now = now.Add(SessionLifetime / 2)
	fresh, err := store.CreateSession(&models.User{ID: 2, Username: "b"})
	require.NoError(t, err)

	now = now.Add(SessionLifetime/2 + time.Minute)
	_, ok := store.GetSession(expiring.ID)
	assert.False(t, ok)

	assert.Equal(t, 0, store.removeExpired())
	_, ok = store.GetSession(fresh.ID)
	assert.True(t, ok)

	now = now.Add(SessionLifetime)
	assert.Equal(t, 1, store.removeExpired())
}

func TestDeleteUserSessions(t *testing.T) {
	store := NewSessionStore()
	defer store.Close()

	user := &models.User{ID: 3, Username: "reader"}
	first, err := store.CreateSession(user)
	require.NoError(t, err)
	second, err := store.CreateSession(user)
	require.NoError(t, err)
	other, err := store.CreateSession(&models.User{ID: 4, Username: "other"})
	require.NoError(t, err)

	store.DeleteUserSessions(user.ID)

	_, ok := store.GetSession(first.ID)
	assert.False(t, ok)
	_, ok = store.GetSession(second.ID)
	assert.False(t, ok)
	_, ok = store.GetSession(other.ID)
	assert.True(t, ok)
}
