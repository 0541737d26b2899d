package handlers

import (
	"math"
	"net/http"

	"team-eats/config"
	"team-eats/middleware"
	"team-eats/models"
	"team-eats/payments"
	"team-eats/statemachine"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	RestaurantID uint `json:"restaurant_id" binding:"required"`
}

type AddItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	PaymentMethodID uint `json:"payment_method_id" binding:"required"`
}

func canActOnOthersOrders(role models.UserRole) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

// CreateOrder creates a new cart for a restaurant. An existing cart for the
// same restaurant is returned as-is; a cart for a different restaurant is
// replaced. The destructive confirmation lives on the client side.
func CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.Where("is_active = ?", true).First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var existing models.Order
	err := config.DB.Preload("OrderItems").
		Where("user_id = ? AND status = ?", userID, models.StatusCart).
		First(&existing).Error
	if err == nil {
		if existing.RestaurantID == req.RestaurantID {
			c.JSON(http.StatusOK, existing)
			return
		}
		config.DB.Where("order_id = ?", existing.ID).Delete(&models.OrderItem{})
		config.DB.Delete(&existing)
	}

	order := models.Order{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		Status:       models.StatusCart,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	order.OrderItems = []models.OrderItem{}

	c.JSON(http.StatusCreated, order)
}

// GetMyOrders returns all orders for the logged-in user
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orders := []models.Order{}
	config.DB.Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, orders)
}

// GetAllCarts returns every user's cart-status orders — admin and manager only
func GetAllCarts(c *gin.Context) {
	carts := []models.Order{}
	config.DB.Preload("OrderItems").
		Where("status = ?", models.StatusCart).
		Order("created_at asc").
		Find(&carts)
	c.JSON(http.StatusOK, carts)
}

// GetOrder returns a single order. Admins and managers may inspect any order,
// everyone else only their own.
func GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var order models.Order
	if err := config.DB.Preload("OrderItems").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID && !canActOnOthersOrders(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own orders"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// AddItem adds a menu item to a cart, merging quantity when the item is
// already present. The price and name are snapshotted at add-time.
func AddItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own orders"})
		return
	}
	if order.Status != models.StatusCart {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Can only add items to orders in cart status"})
		return
	}

	var menuItem models.MenuItem
	if err := config.DB.First(&menuItem, req.MenuItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if menuItem.RestaurantID != order.RestaurantID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not belong to this restaurant"})
		return
	}
	if !menuItem.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
		return
	}

	var item models.OrderItem
	err := config.DB.Where("order_id = ? AND menu_item_id = ?", order.ID, req.MenuItemID).First(&item).Error
	if err == nil {
		item.Quantity += req.Quantity
		if err := config.DB.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
			return
		}
	} else {
		item = models.OrderItem{
			OrderID:      order.ID,
			MenuItemID:   menuItem.ID,
			Quantity:     req.Quantity,
			PriceAtTime:  menuItem.Price,
			MenuItemName: menuItem.Name,
		}
		if err := config.DB.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
			return
		}
	}

	recalculateTotal(&order)

	c.JSON(http.StatusCreated, item)
}

// RemoveItem deletes a single line item from a cart. Removing the last item
// leaves the order in cart status with zero items; it is not auto-deleted.
func RemoveItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own orders"})
		return
	}
	if order.Status != models.StatusCart {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Can only remove items from orders in cart status"})
		return
	}

	var item models.OrderItem
	if err := config.DB.Where("id = ? AND order_id = ?", c.Param("itemId"), order.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}

	recalculateTotal(&order)

	c.Status(http.StatusNoContent)
}

// Checkout attempts payment for a cart using a registered payment method
// belonging to the order's owner. Admins and managers may checkout any
// user's cart. On payment failure the order keeps its prior status.
func Checkout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID && !canActOnOthersOrders(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only checkout your own orders"})
		return
	}

	if order.Status == models.StatusCart {
		if err := statemachine.CanTransition(order.Status, models.StatusPending, role); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
	} else if order.Status != models.StatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order is not in cart status"})
		return
	}

	if !order.HasItems() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot checkout empty cart"})
		return
	}

	// The payment method must belong to the order owner, even when an
	// admin or manager drives the checkout.
	var method models.PaymentMethod
	if err := config.DB.Where("id = ? AND user_id = ?", req.PaymentMethodID, order.UserID).First(&method).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found for order owner"})
		return
	}

	order.CalculateTotal()

	if method.Brand != "Cash" {
		amountCents := int64(math.Round(order.TotalAmount * 100))
		intentID, err := payments.Default.Charge(method.ProviderMethodID, amountCents)
		if err != nil {
			// Prior status is preserved; nothing was persisted yet.
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment failed: " + err.Error()})
			return
		}
		order.PaymentIntentID = intentID
	}

	order.Status = models.StatusCompleted
	if err := config.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder cancels a cart or pending order. Terminal orders are immutable.
func CancelOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID && !canActOnOthersOrders(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own orders"})
		return
	}

	if order.Status == models.StatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already cancelled"})
		return
	}
	if order.Status == models.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot cancel completed orders"})
		return
	}
	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, role); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	c.Status(http.StatusNoContent)
}

// recalculateTotal reloads the order's items and persists the derived total,
// so every response after a mutation reflects server-computed amounts.
func recalculateTotal(order *models.Order) {
	var items []models.OrderItem
	config.DB.Where("order_id = ?", order.ID).Find(&items)
	order.OrderItems = items
	order.CalculateTotal()
	config.DB.Model(order).Update("total_amount", order.TotalAmount)
}
