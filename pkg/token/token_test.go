package token

import (
	"testing"
	"time"

	"tosipeli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestAccessToken_RoundTrip(t *testing.T) {
	user := &model.User{ID: "acc-1", Email: "matti@example.fi"}

	signed, err := GenerateAccessToken(user, secret, time.Minute)
	require.NoError(t, err)

	claims, err := VerifyToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, "matti@example.fi", claims.Email)
}

func TestVerifyToken_Rejects(t *testing.T) {
	user := &model.User{ID: "acc-1"}

	expired, err := GenerateAccessToken(user, secret, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyToken(expired, secret)
	assert.Error(t, err)

	signed, err := GenerateAccessToken(user, secret, time.Minute)
	require.NoError(t, err)
	_, err = VerifyToken(signed, []byte("other-secret"))
	assert.Error(t, err)

	_, err = VerifyToken("not-a-jwt", secret)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	tok, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.Len(t, tok, 43)

	hash := HashRefreshToken(tok)
	assert.True(t, VerifyRefreshToken(tok, hash))
	assert.False(t, VerifyRefreshToken(tok+"x", hash))

	other, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
