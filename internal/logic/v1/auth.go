package v1

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/rashidq/logistics-portal/internal/auth"
	"github.com/rashidq/logistics-portal/internal/core/domain"
	"github.com/rashidq/logistics-portal/middleware"
)

// AuthService implements signup, login, and profile business logic.
type AuthService struct {
	repo   domain.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService creates an auth service over the injected repository.
func NewAuthService(repo domain.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Signup registers a new user. The email-uniqueness pre-check and the insert
// are separate store calls, so two near-simultaneous signups with the same
// email can both pass the check on the in-memory store; the Postgres store
// closes the race with a unique index.
func (s *AuthService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.signup", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", req.Username),
	))
	defer span.End()

	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		span.SetAttributes(attribute.Bool("user.created", false))
		return nil, fmt.Errorf("signup %q: %w", req.Email, domain.ErrEmailTaken)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		span.RecordError(err)
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Generate(*user)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("generate token: %w", err)
	}

	span.SetAttributes(
		attribute.Int("user.id", user.ID),
		attribute.Bool("user.created", true),
	)
	span.AddEvent("user.created")

	return &domain.AuthResponse{Token: token, User: user.ToProfile()}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both return ErrInvalidCredentials so callers cannot distinguish.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			span.SetAttributes(attribute.Bool("login.ok", false))
			return nil, domain.ErrInvalidCredentials
		}
		span.RecordError(err)
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		span.SetAttributes(attribute.Bool("login.ok", false))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(*user)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("generate token: %w", err)
	}

	span.SetAttributes(
		attribute.Int("user.id", user.ID),
		attribute.Bool("login.ok", true),
	)

	return &domain.AuthResponse{Token: token, User: user.ToProfile()}, nil
}

// Profile returns the reduced projection for the authenticated user.
func (s *AuthService) Profile(ctx context.Context, userID int) (*domain.Profile, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.profile", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("user.id", userID),
	))
	defer span.End()

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		span.SetAttributes(attribute.Bool("profile.found", false))
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}

	span.SetAttributes(attribute.Bool("profile.found", true))
	profile := user.ToProfile()
	return &profile, nil
}
