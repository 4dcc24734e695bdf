// Package auth issues and verifies the portal's signed bearer tokens.
// Tokens are HS256 JWTs carrying the user id as subject; this replaces the
// earlier unsigned token string whose id anyone could forge.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rashidq/logistics-portal/internal/core/domain"
)

// TokenManager signs and verifies JWTs for authenticated users.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate issues a signed token for the user.
func (t *TokenManager) Generate(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      t.issuer,
		"sub":      strconv.Itoa(user.ID),
		"username": user.Username,
		"email":    user.Email,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token string, returning the embedded user id.
func (t *TokenManager) Verify(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", errors.Join(err, domain.ErrUnauthorized))
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("token subject: %w", domain.ErrUnauthorized)
	}
	userID, err := strconv.Atoi(sub)
	if err != nil {
		return 0, fmt.Errorf("token subject %q: %w", sub, domain.ErrUnauthorized)
	}
	return userID, nil
}
