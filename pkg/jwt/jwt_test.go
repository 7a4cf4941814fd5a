package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	access, err := m.GenerateAccessToken("user-1", "paul@arrakis.example")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "paul@arrakis.example", claims.Email)
	assert.Equal(t, "access", claims.Type)
}

func TestTokenTypeEnforced(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	access, err := m.GenerateAccessToken("user-1", "paul@arrakis.example")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Type)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewManager("secret-a", 15*time.Minute, 72*time.Hour)
	verifier := NewManager("secret-b", 15*time.Minute, 72*time.Hour)

	token, err := issuer.GenerateAccessToken("user-1", "paul@arrakis.example")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "paul@arrakis.example")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}
