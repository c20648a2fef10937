package jwthelper

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kiotdev/contesthub-api/internal/domain"
)

const tokenLifetime = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	jwt.RegisteredClaims

	UserID uint        `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// GenerateToken signs a 24h HS256 token carrying the full identity, so
// requests can be authorized without a user lookup.
func GenerateToken(signingKey []byte, identity domain.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
		UserID: identity.ID,
		Name:   identity.Name,
		Email:  identity.Email,
		Role:   identity.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(signingKey)
}

// ParseToken validates the signature and expiry and returns the embedded
// identity.
func ParseToken(signingKey []byte, tokenString string) (domain.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return signingKey, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, ErrInvalidToken
	}

	if !claims.Role.IsValid() {
		return domain.Identity{}, ErrInvalidToken
	}

	return domain.Identity{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
