package handlers_test

import (
	"net/http"
	"testing"

	"team-eats/models"
	"team-eats/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAlwaysTeamMember(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"full_name": "Sam Chen",
		"email":     "sam@example.com",
		"password":  "secret123",
		"country":   "UK",
		// A role in the payload must not grant an escalated account.
		"role": "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeInto(t, w, &resp)
	assert.Equal(t, models.RoleTeamMember, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupServer(t)
	createUser(t, "taken@example.com", models.RoleTeamMember)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"email": "taken@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", errorDetail(t, w))
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupServer(t)
	createUser(t, "buyer@example.com", models.RoleTeamMember)

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email": "buyer@example.com", "password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", errorDetail(t, w))
}

func TestProfileReportsCapabilities(t *testing.T) {
	r := setupServer(t)
	_, managerToken := createUser(t, "mgr@example.com", models.RoleManager)

	w := doJSON(t, r, http.MethodGet, "/profile", managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User         models.User       `json:"user"`
		Capabilities rbac.Capabilities `json:"capabilities"`
	}
	decodeInto(t, w, &resp)
	assert.Equal(t, models.RoleManager, resp.User.Role)
	assert.True(t, resp.Capabilities[rbac.CapCheckout])
	assert.True(t, resp.Capabilities[rbac.CapCancelOrder])
	assert.False(t, resp.Capabilities[rbac.CapUpdatePayment])
	assert.False(t, resp.Capabilities[rbac.CapManageUsers])
}

func TestProfileRequiresToken(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
