package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rashidq/logistics-portal/internal/core/domain"
	"github.com/rashidq/logistics-portal/middleware"
)

// CatalogService implements service listing and request submission.
type CatalogService struct {
	services domain.ServiceRepository
	requests domain.RequestRepository
}

// NewCatalogService creates a catalog service over the injected repositories.
func NewCatalogService(services domain.ServiceRepository, requests domain.RequestRepository) *CatalogService {
	return &CatalogService{services: services, requests: requests}
}

// ListServices returns all active services in insertion order.
func (s *CatalogService) ListServices(ctx context.Context) ([]domain.Service, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	services, err := s.services.GetAllServices(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list services: %w", err)
	}

	span.SetAttributes(attribute.Int("services.count", len(services)))
	return services, nil
}

// GetService returns one service by id.
func (s *CatalogService) GetService(ctx context.Context, id int) (*domain.Service, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("service.id", id),
	))
	defer span.End()

	svc, err := s.services.GetService(ctx, id)
	if err != nil {
		span.SetAttributes(attribute.Bool("service.found", false))
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}

	span.SetAttributes(attribute.Bool("service.found", true))
	return svc, nil
}

// CreateRequest persists a service request for the authenticated user.
// Referenced ids are stored as given; no delete endpoint exists, so dangling
// references are currently unreachable.
func (s *CatalogService) CreateRequest(ctx context.Context, userID int, payload domain.CreateRequestPayload) (*domain.ServiceRequest, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.create_request", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("user.id", userID),
		attribute.Int("service.id", payload.ServiceID),
	))
	defer span.End()

	req, err := s.requests.CreateServiceRequest(ctx, domain.ServiceRequest{
		UserID:    userID,
		ServiceID: payload.ServiceID,
		Status:    domain.StatusPending,
		Details:   payload.Details,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create service request: %w", err)
	}

	span.SetAttributes(attribute.Int("request.id", req.ID))
	span.AddEvent("request.created")
	return req, nil
}

// ListRequests returns the authenticated user's requests in creation order.
func (s *CatalogService) ListRequests(ctx context.Context, userID int) ([]domain.ServiceRequest, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.list_requests", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("user.id", userID),
	))
	defer span.End()

	requests, err := s.requests.GetServiceRequestsByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list service requests: %w", err)
	}

	span.SetAttributes(attribute.Int("requests.count", len(requests)))
	return requests, nil
}
