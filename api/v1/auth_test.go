package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/alisoliman/recipe-app-api/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAndProfile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/user/create", "", map[string]string{
		"email":    "Test@Example.com",
		"password": "testpass123",
		"name":     "Test Name",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "test@example.com", created["email"])
	assert.NotContains(t, created, "password")

	rec = env.do(t, http.MethodPost, "/user/token", "", map[string]string{
		"email":    "test@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode[dto.TokenResponse](t, rec).Token
	require.NotEmpty(t, token)

	rec = env.do(t, http.MethodGet, "/user/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Test Name", decode[dto.UserResponse](t, rec).Name)

	rec = env.do(t, http.MethodPatch, "/user/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "an empty patch changes nothing")
	assert.Equal(t, "Test Name", decode[dto.UserResponse](t, rec).Name)

	rec = env.do(t, http.MethodPatch, "/user/me", token, map[string]string{"name": "Updated", "password": "newpass123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Updated", decode[dto.UserResponse](t, rec).Name)

	rec = env.do(t, http.MethodPost, "/user/token", "", map[string]string{
		"email":    "test@example.com",
		"password": "newpass123",
	})
	assert.Equal(t, http.StatusOK, rec.Code, "new password is accepted")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "taken@example.com")

	tests := map[string]struct {
		body  map[string]string
		field string
	}{
		"invalid email":   {map[string]string{"email": "not-an-email", "password": "testpass123"}, "email"},
		"duplicate email": {map[string]string{"email": "TAKEN@example.com", "password": "testpass123"}, "email"},
		"short password":  {map[string]string{"email": "new@example.com", "password": "pw"}, "password"},
		"missing fields":  {map[string]string{}, "email"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/user/create", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[errorBody](t, rec).Errors, tt.field)
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "user@example.com")

	for _, password := range []string{"wrong", ""} {
		rec := env.do(t, http.MethodPost, "/user/token", "", map[string]string{
			"email":    "user@example.com",
			"password": password,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotContains(t, rec.Body.String(), "token\":")
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "user@example.com")

	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/recipes", token, nil).Code)

	rec := env.do(t, http.MethodPost, "/user/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/recipes", token, nil).Code)
}

func TestAdminListUsers(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.user(t, "user@example.com")

	rec := env.do(t, http.MethodGet, "/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin, err := env.deps.Users.CreateSuperuser(context.Background(), "admin@example.com", "adminpass")
	require.NoError(t, err)
	adminToken, _, err := env.deps.Tokens.Issue(admin)
	require.NoError(t, err)

	rec = env.do(t, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]dto.AdminUserResponse](t, rec)
	assert.Len(t, users, 2)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]interface{}](t, rec)["status"])
}
