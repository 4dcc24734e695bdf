// Package v1 contains the HTTP-facing handlers for the portal API. This
// layer is the single place internal outcomes become HTTP status codes:
// validation failures → 400 with itemized field errors, auth failures → 401
// with a generic message, absent entities → 404, anything unexpected → 500
// without internal detail.
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rashidq/logistics-portal/internal/core/domain"
	logicv1 "github.com/rashidq/logistics-portal/internal/logic/v1"
	"github.com/rashidq/logistics-portal/middleware"
)

// Handler holds the logic services behind the HTTP routes.
type Handler struct {
	auth    *logicv1.AuthService
	catalog *logicv1.CatalogService
	search  *logicv1.SearchService
}

// NewHandler creates the portal API handler.
func NewHandler(auth *logicv1.AuthService, catalog *logicv1.CatalogService, search *logicv1.SearchService) *Handler {
	return &Handler{auth: auth, catalog: catalog, search: search}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	resp, err := h.auth.Login(ctx, req)
	if err != nil {
		span.RecordError(err)

		// Same body for unknown email and wrong password.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	logger.Info("User logged in", zap.Int("user_id", resp.User.ID))
	c.JSON(http.StatusOK, resp)
}

// Signup handles POST /api/auth/signup.
func (h *Handler) Signup(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	resp, err := h.auth.Signup(ctx, req)
	if err != nil {
		span.RecordError(err)

		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{
				{Field: "email", Message: "is already registered"},
			}})
			return
		}
		logger.Error("Signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	logger.Info("User signed up", zap.Int("user_id", resp.User.ID))
	c.JSON(http.StatusCreated, resp)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this is a
// no-op acknowledgement; there is no token registry to invalidate against.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile handles GET /api/auth/profile.
func (h *Handler) Profile(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	span.SetAttributes(attribute.Int("user.id", userID))

	profile, err := h.auth.Profile(ctx, userID)
	if err != nil {
		span.RecordError(err)

		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to get profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
