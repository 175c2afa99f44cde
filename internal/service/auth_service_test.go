package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/domain"
)

func newTestAuth(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("Coach@Studio.test", string(hash), "test-secret", time.Hour, clock.RealClock{})
}

func TestAuth_Login(t *testing.T) {
	auth := newTestAuth(t)

	token, coach, err := auth.Login(context.Background(), "coach@studio.test", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "coach@studio.test", coach.Email)
	assert.Equal(t, domain.RoleCoach, coach.Role)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "coach@studio.test", claims.Subject)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Equal(t, domain.RoleCoach, claims.Role)
}

func TestAuth_LoginFailures(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "coach@studio.test", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = auth.Login(ctx, "other@studio.test", "s3cret")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = auth.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestNewAuthService_PanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() {
		NewAuthService("a@b.c", "", "", time.Hour, clock.RealClock{})
	})
}
