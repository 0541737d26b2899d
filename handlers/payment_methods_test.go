package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"team-eats/models"
	"team-eats/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentMethodAdminOnly(t *testing.T) {
	r := setupServer(t)
	_, memberToken := createUser(t, "buyer@example.com", models.RoleTeamMember)
	_, managerToken := createUser(t, "mgr@example.com", models.RoleManager)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	body := map[string]interface{}{
		"provider_method_id": "pm_new_1",
		"brand":              "visa",
		"last4":              "4242",
	}

	w := doJSON(t, r, http.MethodPost, "/payment-methods", memberToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/payment-methods", managerToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/payment-methods", adminToken, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	// The provider reference never appears in responses.
	assert.NotContains(t, w.Body.String(), "pm_new_1")
}

func TestDefaultFlagIsExclusivePerUser(t *testing.T) {
	r := setupServer(t)
	admin, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/payment-methods", adminToken, map[string]interface{}{
		"provider_method_id": "pm_a", "brand": "visa", "last4": "1111", "is_default": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/payment-methods", adminToken, map[string]interface{}{
		"provider_method_id": "pm_b", "brand": "mastercard", "last4": "2222", "is_default": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/payment-methods", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var methods []models.PaymentMethod
	decodeInto(t, w, &methods)
	require.Len(t, methods, 2)

	defaults := 0
	for _, m := range methods {
		if m.IsDefault {
			defaults++
			assert.Equal(t, "2222", m.Last4)
		}
		assert.Equal(t, admin.ID, m.UserID)
	}
	assert.Equal(t, 1, defaults)
}

func TestAdminRegistersMethodForAnotherUser(t *testing.T) {
	r := setupServer(t)
	buyer, buyerToken := createUser(t, "buyer@example.com", models.RoleTeamMember)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/payment-methods", adminToken, map[string]interface{}{
		"provider_method_id": "pm_for_buyer", "brand": "visa", "last4": "4242", "user_id": buyer.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/payment-methods", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var methods []models.PaymentMethod
	decodeInto(t, w, &methods)
	require.Len(t, methods, 1)
	assert.Equal(t, buyer.ID, methods[0].UserID)
}

func TestListOtherUsersMethods(t *testing.T) {
	r := setupServer(t)
	buyer, _ := createUser(t, "buyer@example.com", models.RoleTeamMember)
	_, managerToken := createUser(t, "mgr@example.com", models.RoleManager)
	_, memberToken := createUser(t, "other@example.com", models.RoleTeamMember)
	seedPaymentMethod(t, buyer.ID, "pm_buyer", "visa")

	// Managers may inspect another user's methods for on-behalf checkout.
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/payment-methods?user_id=%d", buyer.ID), managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var methods []models.PaymentMethod
	decodeInto(t, w, &methods)
	require.Len(t, methods, 1)
	assert.Equal(t, buyer.ID, methods[0].UserID)

	// Team members asking for someone else's methods get their own list.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/payment-methods?user_id=%d", buyer.ID), memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeInto(t, w, &methods)
	assert.Empty(t, methods)
}

func TestSetupIntentReturnsHandle(t *testing.T) {
	r := setupServer(t)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/payment-methods/setup-intent", adminToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var intent payments.SetupIntent
	decodeInto(t, w, &intent)
	assert.NotEmpty(t, intent.ID)
	assert.NotEmpty(t, intent.ClientSecret)
	assert.Contains(t, intent.ClientSecret, intent.ID)
}

func TestSetupIntentRequiresUpdatePaymentCapability(t *testing.T) {
	r := setupServer(t)
	_, memberToken := createUser(t, "buyer@example.com", models.RoleTeamMember)

	w := doJSON(t, r, http.MethodPost, "/payment-methods/setup-intent", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeletePaymentMethod(t *testing.T) {
	r := setupServer(t)
	admin, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)
	pm := seedPaymentMethod(t, admin.ID, "pm_gone", "visa")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/payment-methods/%d", pm.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/payment-methods", adminToken, nil)
	var methods []models.PaymentMethod
	decodeInto(t, w, &methods)
	assert.Empty(t, methods)
}
