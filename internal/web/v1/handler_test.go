package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rashidq/logistics-portal/client"
	"github.com/rashidq/logistics-portal/internal/auth"
	"github.com/rashidq/logistics-portal/internal/core/domain"
	"github.com/rashidq/logistics-portal/internal/core/repository/memory"
	logicv1 "github.com/rashidq/logistics-portal/internal/logic/v1"
	"github.com/rashidq/logistics-portal/middleware"
)

func newTestServer(t *testing.T) (*httptest.Server, *client.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	store.SeedServices(memory.DefaultServices())

	tokens := auth.NewTokenManager("test-secret", "logistics-portal", time.Hour)
	logger := zap.NewNop()

	handler := NewHandler(
		logicv1.NewAuthService(store, tokens),
		logicv1.NewCatalogService(store, store),
		logicv1.NewSearchService(store, store, logger),
	)

	r := gin.New()
	RegisterRoutes(r, handler, middleware.AuthMiddleware(tokens, logger))

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, client.New(ts.URL)
}

func signupPayload(email string) domain.SignupRequest {
	return domain.SignupRequest{
		Username:        "ahmad",
		Email:           email,
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FullName:        "Ahmad Ali",
	}
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestSignupThenProfileRoundTrip(t *testing.T) {
	_, api := newTestServer(t)
	ctx := context.Background()

	signedUp, err := api.Signup(ctx, signupPayload("ahmad@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, signedUp.Token)

	profile, err := api.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, signedUp.User, *profile)
}

func TestSignupConfirmPasswordMismatch(t *testing.T) {
	ts, api := newTestServer(t)
	ctx := context.Background()

	payload := signupPayload("ahmad@example.com")
	payload.ConfirmPassword = "different"

	resp := postJSON(t, ts.URL+"/api/auth/signup", payload)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "confirmPassword")

	// No user was created: the same credentials cannot log in.
	_, err = api.Login(ctx, domain.LoginRequest{Email: "ahmad@example.com", Password: "secret123"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, api := newTestServer(t)
	ctx := context.Background()

	_, err := api.Signup(ctx, signupPayload("ahmad@example.com"))
	require.NoError(t, err)

	_, err = api.Signup(ctx, signupPayload("ahmad@example.com"))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "email")
}

func TestLoginFailureBodiesAreIdentical(t *testing.T) {
	ts, api := newTestServer(t)
	ctx := context.Background()

	_, err := api.Signup(ctx, signupPayload("ahmad@example.com"))
	require.NoError(t, err)

	readLoginFailure := func(email, password string) string {
		resp := postJSON(t, ts.URL+"/api/auth/login", domain.LoginRequest{Email: email, Password: password})
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(raw)
	}

	unknownEmail := readLoginFailure("nobody@example.com", "secret123")
	wrongPassword := readLoginFailure("ahmad@example.com", "wrong-password")
	assert.Equal(t, unknownEmail, wrongPassword)
}

func TestLogoutIsStateless(t *testing.T) {
	_, api := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, api.Logout(ctx))
}

func TestProfileRequiresToken(t *testing.T) {
	ts, _ := newTestServer(t)

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Bearer",
		"forged":    "Bearer token_1_1700000000000",
	} {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/auth/profile", nil)
		require.NoError(t, err)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "case %s", name)
	}
}

func TestListServicesReturnsOnlyActive(t *testing.T) {
	_, api := newTestServer(t)

	services, err := api.Services(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, services)
	for _, svc := range services {
		assert.True(t, svc.IsActive)
	}
}

func TestGetServiceByID(t *testing.T) {
	_, api := newTestServer(t)
	ctx := context.Background()

	svc, err := api.Service(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Transfer Request", svc.NameEn)
	assert.Equal(t, "طلب تحويل", svc.NameAr)

	_, err = api.Service(ctx, 999)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestGetServiceIsIdempotent(t *testing.T) {
	ts, _ := newTestServer(t)

	fetch := func() string {
		resp, err := http.Get(ts.URL + "/api/services/2")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(raw)
	}

	first := fetch()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, fetch())
	}
}

func TestCreateAndListServiceRequests(t *testing.T) {
	_, api := newTestServer(t)
	ctx := context.Background()

	// Unauthenticated creation is rejected.
	_, err := api.CreateRequest(ctx, domain.CreateRequestPayload{ServiceID: 1, Details: "x"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	signedUp, err := api.Signup(ctx, signupPayload("ahmad@example.com"))
	require.NoError(t, err)

	var lastID int
	for i := 0; i < 3; i++ {
		created, err := api.CreateRequest(ctx, domain.CreateRequestPayload{
			ServiceID: 1,
			Details:   fmt.Sprintf("request %d", i),
		})
		require.NoError(t, err)
		assert.Greater(t, created.ID, lastID)
		assert.Equal(t, signedUp.User.ID, created.UserID)
		assert.Equal(t, domain.StatusPending, created.Status)
		lastID = created.ID
	}

	mine, err := api.Requests(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func TestCreateServiceRequestValidation(t *testing.T) {
	_, api := newTestServer(t)
	ctx := context.Background()

	_, err := api.Signup(ctx, signupPayload("ahmad@example.com"))
	require.NoError(t, err)

	_, err = api.CreateRequest(ctx, domain.CreateRequestPayload{ServiceID: 1})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "details")
}

func TestSearchEndpoint(t *testing.T) {
	_, api := newTestServer(t)
	ctx := context.Background()

	english, err := api.Search(ctx, "transfer", 10)
	require.NoError(t, err)
	require.Equal(t, 1, english.Total)
	assert.Equal(t, "Transfer Request", english.Results[0].NameEn)

	arabic, err := api.Search(ctx, "زيادة", 10)
	require.NoError(t, err)
	require.Equal(t, 1, arabic.Total)
	assert.Equal(t, "Topping Up", arabic.Results[0].NameEn)

	empty, err := api.Search(ctx, "nonexistent-zzz", 10)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.Results)
}

func TestSearchRequiresQuery(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/search")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSuggestionsEndpoint(t *testing.T) {
	_, api := newTestServer(t)
	ctx := context.Background()

	short, err := api.Suggestions(ctx, "ا")
	require.NoError(t, err)
	assert.Empty(t, short)

	out, err := api.Suggestions(ctx, "تجديد")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "تجديد الإقامة")
	assert.LessOrEqual(t, len(out), 5)
}

func TestPopularTagsEndpoint(t *testing.T) {
	_, api := newTestServer(t)

	tags, err := api.PopularTags(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, tags)
	assert.Contains(t, tags, "تجديد الإقامة")
}
