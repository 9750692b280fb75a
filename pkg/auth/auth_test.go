package auth

import (
	"path/filepath"
	"testing"

	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Keys(t *testing.T) {
	s := NewService("jwt", "master")

	key := s.GenerateKey("team.media")
	userID, err := s.VerifyKey(key)
	require.NoError(t, err)
	assert.Equal(t, "team.media", userID)

	_, err = NewService("jwt", "other").VerifyKey(key)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	for _, bad := range []string{"", "nodot", ".sig", "user."} {
		_, err = s.VerifyKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKeyFormat, bad)
	}
}

func TestService_Tokens(t *testing.T) {
	s := NewService("jwt", "master")

	token, err := s.CreateToken("admin")
	require.NoError(t, err)

	claims, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	_, err = NewService("other", "master").VerifyToken(token)
	assert.Error(t, err)
}

func TestKeyPreview(t *testing.T) {
	assert.Equal(t, "****", KeyPreview("short"))
	assert.Equal(t, "tea...cdef", KeyPreview("team.0123456789abcdef"))
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := database.InitDB("", filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)

	created, err := EnsureAdminExists(db, "admin", "secret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureAdminExists(db, "other", "secret")
	require.NoError(t, err)
	assert.False(t, created)

	var user database.MasterUser
	require.NoError(t, db.First(&user, "username = ?", "admin").Error)
	assert.True(t, CheckPasswordHash("secret", user.PasswordHash))
	assert.False(t, CheckPasswordHash("wrong", user.PasswordHash))
}

func TestIssueKey(t *testing.T) {
	db, err := database.InitDB("", filepath.Join(t.TempDir(), "keys.db"))
	require.NoError(t, err)
	s := NewService("jwt", "master")

	rec, key, err := s.IssueKey(db, "media-team", 0)
	require.NoError(t, err)
	assert.Equal(t, s.GenerateKey("media-team"), key)
	assert.Equal(t, DefaultRateLimit, rec.RateLimit)
	assert.Equal(t, KeyPreview(key), rec.KeyPreview)
	assert.NotZero(t, rec.ID)

	_, _, err = s.IssueKey(db, "media-team", 5)
	assert.Error(t, err)
}
