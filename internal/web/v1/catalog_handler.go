package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rashidq/logistics-portal/internal/core/domain"
	"github.com/rashidq/logistics-portal/middleware"
)

// ListServices handles GET /api/services.
func (h *Handler) ListServices(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	services, err := h.catalog.ListServices(ctx)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to list services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService handles GET /api/services/:id.
func (h *Handler) GetService(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	span.SetAttributes(attribute.Int("service.id", id))

	svc, err := h.catalog.GetService(ctx, id)
	if err != nil {
		span.RecordError(err)

		if errors.Is(err, domain.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		logger.Error("Failed to get service", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, svc)
}

// CreateRequest handles POST /api/services/request.
func (h *Handler) CreateRequest(c *gin.Context) {
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

	var payload domain.CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	req, err := h.catalog.CreateRequest(ctx, userID, payload)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to create service request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	logger.Info("Service request created",
		zap.Int("request_id", req.ID),
		zap.Int("user_id", userID),
	)
	c.JSON(http.StatusCreated, req)
}

// ListRequests handles GET /api/services/requests for the authenticated user.
func (h *Handler) ListRequests(c *gin.Context) {
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

	requests, err := h.catalog.ListRequests(ctx, userID)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to list service requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, requests)
}
