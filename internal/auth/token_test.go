package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashidq/logistics-portal/internal/core/domain"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", "logistics-portal", time.Hour)

	token, err := tm.Generate(domain.User{ID: 42, Username: "ahmad", Email: "ahmad@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuing := NewTokenManager("secret-a", "logistics-portal", time.Hour)
	verifying := NewTokenManager("secret-b", "logistics-portal", time.Hour)

	token, err := issuing.Generate(domain.User{ID: 7})
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	issuing := NewTokenManager("secret", "someone-else", time.Hour)
	verifying := NewTokenManager("secret", "logistics-portal", time.Hour)

	token, err := issuing.Generate(domain.User{ID: 7})
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", "logistics-portal", -time.Minute)

	token, err := tm.Generate(domain.User{ID: 7})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", "logistics-portal", time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "token_7_1700000000000"} {
		_, err := tm.Verify(tok)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "token %q", tok)
	}
}
