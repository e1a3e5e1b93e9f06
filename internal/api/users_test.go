package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acsops/acs-console/internal/store"
)

func adminEnv(t *testing.T) (*testEnv, string) {
	t.Helper()
	env := newTestEnv(t, 0)
	env.seedUser(t, "root", "root-pw", "admin")
	return env, env.login(t, "root", "root-pw")
}

func TestUserCRUD(t *testing.T) {
	env, token := adminEnv(t)

	// Create.
	rec := env.do(t, http.MethodPost, "/api/users", token, map[string]string{
		"username": "bob", "password": "bob-pw", "role": "operator",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created store.User
	decode(t, rec, &created)
	assert.Equal(t, "bob", created.Username)
	assert.Equal(t, "operator", created.Role)

	// The new account can log in.
	env.login(t, "bob", "bob-pw")

	// List includes it.
	rec = env.do(t, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []store.User
	decode(t, rec, &users)
	assert.Len(t, users, 2)

	// Update the role.
	rec = env.do(t, http.MethodPut, "/api/users/bob", token, map[string]string{"role": "auditor"})
	require.Equal(t, http.StatusOK, rec.Code)

	u, err := env.store.GetUser(t.Context(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "auditor", u.Role)

	// Change the password; old one stops working, new one works.
	rec = env.do(t, http.MethodPut, "/api/users/bob", token, map[string]string{"password": "new-pw"})
	require.Equal(t, http.StatusOK, rec.Code)

	badLogin := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": "bob", "password": "bob-pw",
	})
	assert.Equal(t, http.StatusUnauthorized, badLogin.Code)
	env.login(t, "bob", "new-pw")

	// Delete.
	rec = env.do(t, http.MethodDelete, "/api/users/bob", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/users/bob", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateUser_PasswordNeverStoredPlain(t *testing.T) {
	env, token := adminEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users", token, map[string]string{
		"username": "bob", "password": "bob-pw", "role": "operator",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	u, err := env.store.GetUser(t.Context(), "bob")
	require.NoError(t, err)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEmpty(t, u.Salt)
	assert.NotEqual(t, []byte("bob-pw"), u.PasswordHash)

	// The credential material never leaves the store in responses.
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.NotContains(t, rec.Body.String(), "salt")
}

func TestCreateUser_Validation(t *testing.T) {
	env, token := adminEnv(t)

	tests := []struct {
		name string
		body map[string]string
		code int
	}{
		{"missing username", map[string]string{"password": "pw", "role": "operator"}, http.StatusBadRequest},
		{"missing password", map[string]string{"username": "x", "role": "operator"}, http.StatusBadRequest},
		{"missing role", map[string]string{"username": "x", "password": "pw"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/users", token, tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	env, token := adminEnv(t)

	body := map[string]string{"username": "bob", "password": "pw", "role": "operator"}
	rec := env.do(t, http.MethodPost, "/api/users", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/users", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var apiErr APIError
	decode(t, rec, &apiErr)
	assert.Equal(t, ErrCodeDuplicate, apiErr.Error)
}

func TestUpdateUser_NothingToUpdate(t *testing.T) {
	env, token := adminEnv(t)

	rec := env.do(t, http.MethodPut, "/api/users/root", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserManagement_AdminOnly(t *testing.T) {
	env, _ := adminEnv(t)
	env.seedUser(t, "bob", "bob-pw", "operator")
	operatorToken := env.login(t, "bob", "bob-pw")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users"},
		{http.MethodPut, "/api/users/root"},
		{http.MethodDelete, "/api/users/root"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, operatorToken, map[string]string{"role": "x"})
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}
