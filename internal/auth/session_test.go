package auth

import (
	"context"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifier_ValidToken(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub":   "user-1",
		"email": "owner@example.com",
		"exp":   exp.Unix(),
	})

	sess, err := NewVerifier("test-secret").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, "owner@example.com", sess.Email)
	assert.WithinDuration(t, exp, sess.ExpiresAt, time.Second)
}

func TestVerifier_ExpiredToken(t *testing.T) {
	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := NewVerifier("test-secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifier_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := NewVerifier("test-secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifier_Garbage(t *testing.T) {
	_, err := NewVerifier("test-secret").Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	want := &Session{UserID: "user-1", Email: "owner@example.com"}
	ctx := WithSession(context.Background(), want)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
