package storefront

import (
	"path/filepath"
	"testing"

	"mithai-mahal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SetAndRestore(t *testing.T) {
	storage, err := NewFileStorage(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	session, err := LoadSession(storage)
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())

	require.NoError(t, session.Set(models.AuthResponse{
		Token: "header.payload.signature",
		User:  models.User{ID: "u-1", Name: "Admin", Email: "admin@shop.in", Role: models.RoleAdmin},
	}))

	restored, err := LoadSession(storage)
	require.NoError(t, err)
	assert.True(t, restored.IsAuthenticated())
	assert.True(t, restored.IsAdmin())
	assert.Equal(t, "header.payload.signature", restored.Token())

	user, ok := restored.User()
	require.True(t, ok)
	assert.Equal(t, "admin@shop.in", user.Email)

	require.NoError(t, restored.Clear())
	cleared, err := LoadSession(storage)
	require.NoError(t, err)
	assert.False(t, cleared.IsAuthenticated())
	_, ok = cleared.User()
	assert.False(t, ok)
}

func TestLoadSession_NeedsTokenAndUser(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(tokenKey, []byte("orphan-token")))

	session, err := LoadSession(storage)
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())
	assert.False(t, session.IsAdmin())
}
