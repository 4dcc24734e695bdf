package v1

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashidq/logistics-portal/internal/auth"
	"github.com/rashidq/logistics-portal/internal/core/domain"
	"github.com/rashidq/logistics-portal/internal/core/repository/memory"
)

func newAuthService() (*AuthService, *memory.Store) {
	store := memory.NewStore()
	tokens := auth.NewTokenManager("test-secret", "logistics-portal", time.Hour)
	return NewAuthService(store, tokens), store
}

func signupFixture() domain.SignupRequest {
	return domain.SignupRequest{
		Username:        "ahmad",
		Email:           "ahmad@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FullName:        "Ahmad Ali",
	}
}

func TestSignupAndProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	resp, err := svc.Signup(ctx, signupFixture())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "ahmad@example.com", resp.User.Email)

	profile, err := svc.Profile(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.User, *profile)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, err := svc.Signup(ctx, signupFixture())
	require.NoError(t, err)

	dup := signupFixture()
	dup.Username = "other"
	_, err = svc.Signup(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignupStoresHashedPassword(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService()

	resp, err := svc.Signup(ctx, signupFixture())
	require.NoError(t, err)

	stored, err := store.GetUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	signedUp, err := svc.Signup(ctx, signupFixture())
	require.NoError(t, err)

	loggedIn, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "ahmad@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.ID, loggedIn.User.ID)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, err := svc.Signup(ctx, signupFixture())
	require.NoError(t, err)

	_, unknownEmailErr := svc.Login(ctx, domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	_, wrongPasswordErr := svc.Login(ctx, domain.LoginRequest{
		Email:    "ahmad@example.com",
		Password: "wrong-password",
	})

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)
	assert.ErrorIs(t, unknownEmailErr, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, domain.ErrInvalidCredentials)
	assert.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
}

func TestProfileNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, err := svc.Profile(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
