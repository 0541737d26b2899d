package handlers

import (
	"net/http"

	"team-eats/config"
	"team-eats/middleware"
	"team-eats/models"
	"team-eats/payments"

	"github.com/gin-gonic/gin"
)

type PaymentMethodRequest struct {
	ProviderMethodID string `json:"provider_method_id" binding:"required"`
	Brand            string `json:"brand" binding:"required"`
	Last4            string `json:"last4" binding:"required,len=4"`
	IsDefault        bool   `json:"is_default"`
	// Admins may register a card on behalf of another user.
	UserID uint `json:"user_id"`
}

// ListPaymentMethods returns payment methods. All roles see their own;
// admins and managers may pass user_id to inspect another user's methods
// when checking out a cart on their behalf.
func ListPaymentMethods(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	targetID := userID
	if q := c.Query("user_id"); q != "" && canActOnOthersOrders(role) {
		var target models.User
		if err := config.DB.Where("id = ?", q).First(&target).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		targetID = target.ID
	}

	methods := []models.PaymentMethod{}
	config.DB.Where("user_id = ?", targetID).Order("is_default desc, created_at asc").Find(&methods)
	c.JSON(http.StatusOK, methods)
}

// CreatePaymentMethod registers a confirmed provider payment method — admin only.
// Setting a new default unsets any previous default for that user.
func CreatePaymentMethod(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetID := userID
	if req.UserID != 0 {
		var target models.User
		if err := config.DB.First(&target, req.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		targetID = target.ID
	}

	if req.IsDefault {
		config.DB.Model(&models.PaymentMethod{}).
			Where("user_id = ? AND is_default = ?", targetID, true).
			Update("is_default", false)
	}

	method := models.PaymentMethod{
		UserID:           targetID,
		ProviderMethodID: req.ProviderMethodID,
		Brand:            req.Brand,
		Last4:            req.Last4,
		IsDefault:        req.IsDefault,
	}
	if err := config.DB.Create(&method).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Payment method already registered"})
		return
	}

	c.JSON(http.StatusCreated, method)
}

// DeletePaymentMethod removes a payment method — admin only
func DeletePaymentMethod(c *gin.Context) {
	var method models.PaymentMethod
	if err := config.DB.First(&method, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}
	if err := config.DB.Delete(&method).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment method"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSetupIntent obtains a provider-side setup handle. The client confirms
// the card with the provider using the returned secret, then registers the
// resulting method via CreatePaymentMethod before checking out.
func CreateSetupIntent(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	intent, err := payments.Default.CreateSetupIntent(user.UserUID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create setup intent: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, intent)
}
