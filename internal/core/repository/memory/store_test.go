package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashidq/logistics-portal/internal/core/domain"
)

func newSeededStore() *Store {
	s := NewStore()
	s.SeedServices(DefaultServices())
	return s
}

func TestCreateUserAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	first, err := s.CreateUser(ctx, domain.User{Username: "ahmad", Email: "ahmad@example.com"})
	require.NoError(t, err)
	second, err := s.CreateUser(ctx, domain.User{Username: "sara", Email: "sara@example.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	created, err := s.CreateUser(ctx, domain.User{Username: "ahmad", Email: "ahmad@example.com", FullName: "Ahmad Ali"})
	require.NoError(t, err)

	byID, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ahmad", byID.Username)

	byUsername, err := s.GetUserByUsername(ctx, "ahmad")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	byEmail, err := s.GetUserByEmail(ctx, "ahmad@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = s.GetUser(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetAllServicesFiltersInactive(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	services, err := s.GetAllServices(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, services)

	for _, svc := range services {
		assert.True(t, svc.IsActive, "inactive service %q leaked into listing", svc.NameEn)
	}

	// The retired service is still fetchable by id.
	all := DefaultServices()
	assert.Len(t, services, len(all)-1)
}

func TestGetServiceNotFound(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	_, err := s.GetService(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestSearchServicesEnglishSubstring(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	results, err := s.SearchServices(ctx, "transfer", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Transfer Request", results[0].NameEn)

	// Case-insensitive for Latin text.
	upper, err := s.SearchServices(ctx, "TRANSFER", 10)
	require.NoError(t, err)
	assert.Equal(t, results, upper)
}

func TestSearchServicesArabicSubstring(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	results, err := s.SearchServices(ctx, "زيادة", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Topping Up", results[0].NameEn)
}

func TestSearchServicesNoMatch(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	results, err := s.SearchServices(ctx, "nonexistent-zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchServicesRespectsLimitAndOrder(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	// "government" matches multiple services via category.
	all, err := s.SearchServices(ctx, "government", 10)
	require.NoError(t, err)
	require.Greater(t, len(all), 1)

	// Insertion order, no ranking.
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].ID, all[i-1].ID)
	}

	limited, err := s.SearchServices(ctx, "government", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
	assert.Equal(t, all[0].ID, limited[0].ID)
}

func TestSearchServicesSkipsInactive(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	results, err := s.SearchServices(ctx, "Legacy", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCreateServiceRequestMonotonicIDsAndDefaults(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	var lastID int
	for i := 0; i < 3; i++ {
		req, err := s.CreateServiceRequest(ctx, domain.ServiceRequest{
			UserID:    1,
			ServiceID: 2,
			Details:   "topping up please",
		})
		require.NoError(t, err)
		assert.Greater(t, req.ID, lastID)
		assert.Equal(t, domain.StatusPending, req.Status)
		assert.False(t, req.CreatedAt.IsZero())
		lastID = req.ID
	}
}

func TestCreateServiceRequestDanglingReferencesAllowed(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	req, err := s.CreateServiceRequest(ctx, domain.ServiceRequest{
		UserID:    4242,
		ServiceID: 4242,
		Details:   "no such user or service",
	})
	require.NoError(t, err)
	assert.Equal(t, 4242, req.UserID)
}

func TestGetServiceRequestsByUser(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	_, err := s.CreateServiceRequest(ctx, domain.ServiceRequest{UserID: 1, ServiceID: 1, Details: "a"})
	require.NoError(t, err)
	_, err = s.CreateServiceRequest(ctx, domain.ServiceRequest{UserID: 2, ServiceID: 1, Details: "b"})
	require.NoError(t, err)
	_, err = s.CreateServiceRequest(ctx, domain.ServiceRequest{UserID: 1, ServiceID: 3, Details: "c"})
	require.NoError(t, err)

	mine, err := s.GetServiceRequestsByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a", mine[0].Details)
	assert.Equal(t, "c", mine[1].Details)

	none, err := s.GetServiceRequestsByUser(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLogSearchQuery(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore()

	require.NoError(t, s.LogSearchQuery(ctx, "تجديد", 1))
	require.NoError(t, s.LogSearchQuery(ctx, "nothing", 0))

	s.mu.RLock()
	defer s.mu.RUnlock()
	require.Len(t, s.searches, 2)
	assert.Equal(t, 1, s.searches[0].ID)
	assert.Equal(t, 2, s.searches[1].ID)
	assert.Equal(t, 0, s.searches[1].Results)
}
