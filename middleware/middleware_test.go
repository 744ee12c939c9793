package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/repositories"
	"github.com/alisoliman/recipe-app-api/services"
	"github.com/alisoliman/recipe-app-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	return body
}

func TestRequestIDGeneratesNewID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/test", func(c *gin.Context) {
		seen = c.GetString(utils.ContextKeyRequestID)
		c.Status(http.StatusOK)
	})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
}

func TestRequestIDUsesProvidedID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	const id = "3f8b1c2e-9d4a-4e5f-8a7b-6c5d4e3f2a1b"
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", id)
	assert.Equal(t, id, serve(r, req).Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", serve(r, req).Header().Get("X-Request-Id"))
}

func TestRateLimitRejectsWhenExceeded(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(rate.NewLimiter(0, 0)))
	called := false
	r.GET("/test", func(c *gin.Context) { called = true })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", decodeError(t, rec)["code"])
}

func TestRateLimitAllowsRequests(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(rate.NewLimiter(100, 200)))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "100", rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/test", func(c *gin.Context) { panic("test panic") })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotEmpty(t, body["requestId"])
}

type authFixture struct {
	users  *services.UserService
	tokens *services.TokenService
	router *gin.Engine
}

func newAuthFixture() *authFixture {
	users := services.NewUserService(repositories.NewMemoryStore().Users())
	tokens := services.NewTokenService("test-secret", time.Hour, repositories.NewMemoryRevocationList())

	r := gin.New()
	protected := r.Group("/", AuthMiddleware(tokens, users))
	protected.GET("/me", func(c *gin.Context) {
		user, _ := CurrentUser(c)
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "email": user.Email})
	})
	protected.GET("/admin", AdminMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	return &authFixture{users: users, tokens: tokens, router: r}
}

func (f *authFixture) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := f.tokens.Issue(user)
	require.NoError(t, err)
	return token
}

func authRequest(path, header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func TestAuthMiddlewareRejects(t *testing.T) {
	f := newAuthFixture()
	user, err := f.users.CreateUser(context.Background(), "user@example.com", "pass123", "")
	require.NoError(t, err)
	token := f.token(t, user)

	tests := map[string]string{
		"missing header": "",
		"no scheme":      token,
		"wrong scheme":   "Basic " + token,
		"empty token":    "Bearer ",
		"garbage token":  "Bearer abc.def.ghi",
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			rec := serve(f.router, authRequest("/me", header))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec)["code"])
		})
	}
}

func TestAuthMiddlewareAcceptsBearerAndToken(t *testing.T) {
	f := newAuthFixture()
	user, err := f.users.CreateUser(context.Background(), "user@example.com", "pass123", "")
	require.NoError(t, err)
	token := f.token(t, user)

	for _, scheme := range []string{"Bearer", "Token", "bearer"} {
		rec := serve(f.router, authRequest("/me", scheme+" "+token))
		require.Equal(t, http.StatusOK, rec.Code, scheme)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "user@example.com", body["email"])
		assert.EqualValues(t, user.ID, body["id"])
	}
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user, err := f.users.CreateUser(ctx, "user@example.com", "pass123", "")
	require.NoError(t, err)
	token := f.token(t, user)

	claims, err := f.tokens.Validate(ctx, token)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Revoke(ctx, claims))

	rec := serve(f.router, authRequest("/me", "Bearer "+token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsUnknownUser(t *testing.T) {
	f := newAuthFixture()
	token := f.token(t, &models.User{ID: 99, Email: "ghost@example.com"})

	rec := serve(f.router, authRequest("/me", "Bearer "+token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminMiddleware(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user, err := f.users.CreateUser(ctx, "user@example.com", "pass123", "")
	require.NoError(t, err)
	admin, err := f.users.CreateSuperuser(ctx, "admin@example.com", "pass123")
	require.NoError(t, err)

	rec := serve(f.router, authRequest("/admin", "Bearer "+f.token(t, user)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rec)["code"])

	rec = serve(f.router, authRequest("/admin", "Bearer "+f.token(t, admin)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
