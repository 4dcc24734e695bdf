package domain

import "time"

// RequestStatus is the approval state of a service request. No endpoint
// mutates it; records are created as StatusPending.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// ServiceRequest is a customer's submission against a catalog service.
// UserID and ServiceID are plain references; the store does not enforce
// referential integrity (no delete endpoint exists, so dangling references
// are currently unreachable).
type ServiceRequest struct {
	ID        int           `json:"id"`
	UserID    int           `json:"userId"`
	ServiceID int           `json:"serviceId"`
	Status    RequestStatus `json:"status"`
	Details   string        `json:"details"`
	CreatedAt time.Time     `json:"createdAt"`
}

// CreateRequestPayload is the body for POST /api/services/request.
// UserID comes from the bearer token, never from the payload.
type CreateRequestPayload struct {
	ServiceID int    `json:"serviceId" binding:"required"`
	Details   string `json:"details" binding:"required"`
}
