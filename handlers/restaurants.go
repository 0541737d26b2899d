package handlers

import (
	"net/http"

	"team-eats/config"
	"team-eats/models"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns all active restaurants, optionally filtered by country
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Where("is_active = ?", true)

	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	query.Find(&restaurants)
	c.JSON(http.StatusOK, restaurants)
}

// GetRestaurant returns a single active restaurant
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Where("is_active = ?", true).First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// GetMenu returns the available menu items for a restaurant
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.Where("is_active = ?", true).First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var items []models.MenuItem
	config.DB.Where("restaurant_id = ? AND is_available = ?", restaurantID, true).Find(&items)
	c.JSON(http.StatusOK, items)
}

// GetCountries returns the distinct countries restaurants operate in
func GetCountries(c *gin.Context) {
	var countries []string
	config.DB.Model(&models.Restaurant{}).
		Where("is_active = ? AND country != ''", true).
		Distinct().
		Order("country").
		Pluck("country", &countries)
	c.JSON(http.StatusOK, countries)
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	info := []gin.H{
		{"from": "cart", "to": "pending", "capability": "checkout"},
		{"from": "pending", "to": "completed", "capability": "system (payment confirmed)"},
		{"from": "cart", "to": "cancelled", "capability": "cancel_order"},
		{"from": "pending", "to": "cancelled", "capability": "cancel_order"},
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"completed", "cancelled"},
		"description":     "Order lifecycle state machine",
	})
}
