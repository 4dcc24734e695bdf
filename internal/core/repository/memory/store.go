// Package memory provides the default in-process repository. It is the sole
// owner of all entity maps and counters; everything crosses the boundary by
// value.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rashidq/logistics-portal/internal/core/domain"
)

// Ensure Store satisfies the aggregate repository at compile time.
var _ domain.Repository = (*Store)(nil)

// Store keeps all portal entities in maps guarded by a single RWMutex.
// The mutex protects map access only; email uniqueness remains a
// check-then-act split across the logic layer and CreateUser.
type Store struct {
	mu sync.RWMutex

	users    map[int]domain.User
	services map[int]domain.Service
	requests map[int]domain.ServiceRequest
	searches []domain.SearchQuery

	// serviceOrder preserves insertion order for listing and search.
	serviceOrder []int

	nextUserID    int
	nextServiceID int
	nextRequestID int
	nextSearchID  int
}

// NewStore returns an empty store. Call SeedServices to load catalog data.
func NewStore() *Store {
	return &Store{
		users:         make(map[int]domain.User),
		services:      make(map[int]domain.Service),
		requests:      make(map[int]domain.ServiceRequest),
		nextUserID:    1,
		nextServiceID: 1,
		nextRequestID: 1,
		nextSearchID:  1,
	}
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(ctx context.Context, id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// GetUserByUsername scans all users for a username match.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetUserByEmail scans all users for an email match.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// CreateUser assigns the next id, stamps creation time, and stores the user.
// It does not enforce uniqueness; the caller pre-checks email.
func (s *Store) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUserID
	s.nextUserID++
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = u
	return &u, nil
}

// GetAllServices returns active services in insertion order.
func (s *Store) GetAllServices(ctx context.Context) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Service, 0, len(s.serviceOrder))
	for _, id := range s.serviceOrder {
		if svc := s.services[id]; svc.IsActive {
			out = append(out, svc)
		}
	}
	return out, nil
}

// GetService retrieves one service by id, active or not.
func (s *Store) GetService(ctx context.Context, id int) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &svc, nil
}

// SearchServices returns up to limit active services whose bilingual name,
// description, or category contains the query as a substring. Matching is
// lowercase-folded, which leaves Arabic text compared verbatim. Results keep
// insertion order; there is no relevance ranking.
func (s *Store) SearchServices(ctx context.Context, query string, limit int) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	out := make([]domain.Service, 0, limit)
	for _, id := range s.serviceOrder {
		svc := s.services[id]
		if !svc.IsActive {
			continue
		}
		if matchesService(svc, needle) {
			out = append(out, svc)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func matchesService(svc domain.Service, needle string) bool {
	for _, field := range []string{svc.NameEn, svc.NameAr, svc.DescriptionEn, svc.DescriptionAr, svc.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// CreateServiceRequest assigns id and timestamp and stores the request.
// Referenced user/service ids are not validated.
func (s *Store) CreateServiceRequest(ctx context.Context, r domain.ServiceRequest) (*domain.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextRequestID
	s.nextRequestID++
	if r.Status == "" {
		r.Status = domain.StatusPending
	}
	r.CreatedAt = time.Now().UTC()
	s.requests[r.ID] = r
	return &r, nil
}

// GetServiceRequestsByUser returns a user's requests in creation order.
func (s *Store) GetServiceRequestsByUser(ctx context.Context, userID int) ([]domain.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ServiceRequest, 0)
	for id := 1; id < s.nextRequestID; id++ {
		if r, ok := s.requests[id]; ok && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// LogSearchQuery appends a write-only log entry.
func (s *Store) LogSearchQuery(ctx context.Context, query string, results int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searches = append(s.searches, domain.SearchQuery{
		ID:        s.nextSearchID,
		Query:     query,
		Results:   results,
		CreatedAt: time.Now().UTC(),
	})
	s.nextSearchID++
	return nil
}

// SeedServices loads catalog entries, assigning ids in slice order.
func (s *Store) SeedServices(services []domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, svc := range services {
		svc.ID = s.nextServiceID
		s.nextServiceID++
		svc.Icon = domain.ParseIcon(string(svc.Icon))
		s.services[svc.ID] = svc
		s.serviceOrder = append(s.serviceOrder, svc.ID)
	}
}
