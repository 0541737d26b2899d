package client

import (
	"context"
	"fmt"
	"net/http"

	"team-eats/models"
)

type createOrderRequest struct {
	RestaurantID uint `json:"restaurant_id"`
}

type addItemRequest struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type checkoutRequest struct {
	PaymentMethodID uint `json:"payment_method_id"`
}

// ListOrders fetches all of the caller's orders, carts included.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder opens a cart for a restaurant. The server returns an existing
// cart for the same restaurant unchanged and replaces one for a different
// restaurant, so callers confirm the switch before calling this.
func (c *Client) CreateOrder(ctx context.Context, restaurantID uint) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", createOrderRequest{RestaurantID: restaurantID}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder fetches one order with its line items.
func (c *Client) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AddItem adds a menu item to a cart. The server merges quantity when the
// item is already present; callers must re-fetch rather than assume.
func (c *Client) AddItem(ctx context.Context, orderID, menuItemID uint, quantity int) (*models.OrderItem, error) {
	var item models.OrderItem
	path := fmt.Sprintf("/orders/%d/items", orderID)
	if err := c.do(ctx, http.MethodPost, path, addItemRequest{MenuItemID: menuItemID, Quantity: quantity}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes a single line item from a cart.
func (c *Client) RemoveItem(ctx context.Context, orderID, itemID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d/items/%d", orderID, itemID), nil, nil)
}

// Checkout pays for an order with a registered payment method.
func (c *Client) Checkout(ctx context.Context, orderID, paymentMethodID uint) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/orders/%d/checkout", orderID)
	if err := c.do(ctx, http.MethodPost, path, checkoutRequest{PaymentMethodID: paymentMethodID}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels a cart or pending order.
func (c *Client) CancelOrder(ctx context.Context, orderID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", orderID), nil, nil)
}

// AllCarts fetches every user's active carts — admin and manager only.
func (c *Client) AllCarts(ctx context.Context) ([]models.Order, error) {
	var carts []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/all-carts", nil, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}
