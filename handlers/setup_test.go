package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"team-eats/config"
	"team-eats/middleware"
	"team-eats/models"
	"team-eats/routes"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// setupServer boots the API against a throwaway database.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "test.db"))
	config.InitDB()

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// createUser inserts a user at the given role and returns it with a live token.
func createUser(t *testing.T, email string, role models.UserRole) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		UserUID:      uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, config.DB.Create(&user).Error)

	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func seedRestaurant(t *testing.T, name, country string) models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: name, Country: country, IsActive: true}
	require.NoError(t, config.DB.Create(&r).Error)
	return r
}

func seedMenuItem(t *testing.T, id, restaurantID uint, name string, price float64) models.MenuItem {
	t.Helper()
	m := models.MenuItem{ID: id, RestaurantID: restaurantID, Name: name, Price: price, IsAvailable: true}
	require.NoError(t, config.DB.Create(&m).Error)
	return m
}

func seedPaymentMethod(t *testing.T, userID uint, providerRef, brand string) models.PaymentMethod {
	t.Helper()
	pm := models.PaymentMethod{UserID: userID, ProviderMethodID: providerRef, Brand: brand, Last4: "4242"}
	require.NoError(t, config.DB.Create(&pm).Error)
	return pm
}

// doJSON issues one request against the engine and returns the recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func errorDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeInto(t, w, &body)
	return body.Error
}
