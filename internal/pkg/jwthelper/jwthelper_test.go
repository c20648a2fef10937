package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiotdev/contesthub-api/internal/domain"
)

var testKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	identity := domain.Identity{
		ID:    42,
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Role:  domain.RoleStudent,
	}

	token, err := GenerateToken(testKey, identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(testKey, token)
	require.NoError(t, err)
	assert.Equal(t, identity, parsed)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(testKey, domain.Identity{ID: 1, Role: domain.RoleMentor})
	require.NoError(t, err)

	_, err = ParseToken([]byte("another-key"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testKey, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		},
		UserID: 7,
		Role:   domain.RoleCoordinator,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	_, err = ParseToken(testKey, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_UnknownRole(t *testing.T) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: 7,
		Role:   "superadmin",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	_, err = ParseToken(testKey, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
