package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	logicv1 "github.com/rashidq/logistics-portal/internal/logic/v1"
	"github.com/rashidq/logistics-portal/middleware"
)

// Search handles GET /api/search?q=...&limit=...
func (h *Handler) Search(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{
			{Field: "q", Message: "is required"},
		}})
		return
	}

	limit := logicv1.DefaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	span.SetAttributes(attribute.String("search.query", query), attribute.Int("search.limit", limit))

	resp, err := h.search.Search(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		logger.Error("Search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Suggestions handles GET /api/search/suggestions?q=...
// Missing or short queries yield an empty array, never an error.
func (h *Handler) Suggestions(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	c.JSON(http.StatusOK, h.search.Suggestions(ctx, strings.TrimSpace(c.Query("q"))))
}

// PopularTags handles GET /api/search/popular-tags.
func (h *Handler) PopularTags(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	c.JSON(http.StatusOK, h.search.PopularTags(ctx))
}
