package domain

import "context"

// UserRepository defines user persistence. CreateUser performs no uniqueness
// check itself; the logic layer pre-checks email before inserting.
type UserRepository interface {
	GetUser(ctx context.Context, id int) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, u User) (*User, error)
}

// ServiceRepository defines catalog access. GetAllServices and SearchServices
// return only active services, in insertion order.
type ServiceRepository interface {
	GetAllServices(ctx context.Context) ([]Service, error)
	GetService(ctx context.Context, id int) (*Service, error)
	SearchServices(ctx context.Context, query string, limit int) ([]Service, error)
}

// RequestRepository defines service-request persistence. CreateServiceRequest
// always succeeds regardless of whether the referenced ids exist.
type RequestRepository interface {
	CreateServiceRequest(ctx context.Context, r ServiceRequest) (*ServiceRequest, error)
	GetServiceRequestsByUser(ctx context.Context, userID int) ([]ServiceRequest, error)
}

// SearchLogRepository records search queries. Fire-and-forget: no read path.
type SearchLogRepository interface {
	LogSearchQuery(ctx context.Context, query string, results int) error
}

// Repository aggregates all portal persistence behind one injected object.
type Repository interface {
	UserRepository
	ServiceRepository
	RequestRepository
	SearchLogRepository
}
