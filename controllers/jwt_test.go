package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyJWT(t *testing.T) {
	now := time.Now()
	claims, exp := accessTokenClaims(42, "user@test.io", now)
	require.True(t, exp.After(now))

	token, err := signHS256JWT("test-secret", claims)
	require.NoError(t, err)

	parsed, ok := parseAndVerifyJWT(token, "test-secret")
	require.True(t, ok)
	assert.Equal(t, int64(42), parsed.Sub)
	assert.Equal(t, now.Unix(), parsed.Iat)
	assert.Equal(t, exp.Unix(), parsed.Exp)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	claims, _ := accessTokenClaims(7, "", time.Now())
	token, err := signHS256JWT("secret-a", claims)
	require.NoError(t, err)

	_, ok := parseAndVerifyJWT(token, "secret-b")
	assert.False(t, ok)
}

func TestVerifyJWTRejectsTamperedToken(t *testing.T) {
	claims, _ := accessTokenClaims(7, "", time.Now())
	token, err := signHS256JWT("secret", claims)
	require.NoError(t, err)

	_, ok := parseAndVerifyJWT(token+"x", "secret")
	assert.False(t, ok)

	_, ok = parseAndVerifyJWT("not.a.jwt", "secret")
	assert.False(t, ok)

	_, ok = parseAndVerifyJWT("garbage", "secret")
	assert.False(t, ok)
}
