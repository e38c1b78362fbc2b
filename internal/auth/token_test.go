package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenMaker_IssueVerify(t *testing.T) {
	maker := NewTokenMaker("test-secret", 30*time.Minute)

	token, err := maker.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := maker.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenMaker_Expired(t *testing.T) {
	maker := NewTokenMaker("test-secret", -time.Minute)

	token, err := maker.Issue("alice")
	require.NoError(t, err)

	_, err = maker.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenMaker_SecretRotation(t *testing.T) {
	old := NewTokenMaker("old-secret", 30*time.Minute)
	current := NewTokenMaker("new-secret", 30*time.Minute)

	token, err := old.Issue("alice")
	require.NoError(t, err)

	// rotating the signing secret invalidates every outstanding token
	_, err = current.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMaker_Malformed(t *testing.T) {
	maker := NewTokenMaker("test-secret", 30*time.Minute)

	for _, bad := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.."} {
		_, err := maker.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", bad)
	}
}

func TestTokenMaker_MissingSubject(t *testing.T) {
	maker := NewTokenMaker("test-secret", 30*time.Minute)

	token, err := maker.Issue("")
	require.NoError(t, err)

	_, err = maker.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMaker_RejectsOtherSigningMethods(t *testing.T) {
	maker := NewTokenMaker("test-secret", 30*time.Minute)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = maker.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
