package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"team-eats/models"
	"team-eats/payments"
)

// PaymentMethodRequest registers a provider-confirmed payment method.
type PaymentMethodRequest struct {
	ProviderMethodID string `json:"provider_method_id"`
	Brand            string `json:"brand"`
	Last4            string `json:"last4"`
	IsDefault        bool   `json:"is_default"`
	UserID           uint   `json:"user_id,omitempty"`
}

// ListRestaurants fetches active restaurants, optionally filtered by country.
func (c *Client) ListRestaurants(ctx context.Context, country string) ([]models.Restaurant, error) {
	path := "/restaurants"
	if country != "" {
		path += "?country=" + url.QueryEscape(country)
	}
	var restaurants []models.Restaurant
	if err := c.do(ctx, http.MethodGet, path, nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// GetRestaurant fetches a single restaurant.
func (c *Client) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/restaurants/%d", id), nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetMenu fetches the available menu items for a restaurant.
func (c *Client) GetMenu(ctx context.Context, restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/restaurants/%d/menu", restaurantID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Countries fetches the distinct countries restaurants operate in.
func (c *Client) Countries(ctx context.Context) ([]string, error) {
	var countries []string
	if err := c.do(ctx, http.MethodGet, "/restaurants/countries", nil, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// ListPaymentMethods fetches payment methods. userID 0 means the caller's
// own; admins and managers may pass another user's id.
func (c *Client) ListPaymentMethods(ctx context.Context, userID uint) ([]models.PaymentMethod, error) {
	path := "/payment-methods"
	if userID != 0 {
		path += fmt.Sprintf("?user_id=%d", userID)
	}
	var methods []models.PaymentMethod
	if err := c.do(ctx, http.MethodGet, path, nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// CreatePaymentMethod registers a provider-confirmed method with the server.
func (c *Client) CreatePaymentMethod(ctx context.Context, req PaymentMethodRequest) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := c.do(ctx, http.MethodPost, "/payment-methods", req, &method); err != nil {
		return nil, err
	}
	return &method, nil
}

// DeletePaymentMethod removes a registered payment method.
func (c *Client) DeletePaymentMethod(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/payment-methods/%d", id), nil, nil)
}

// CreateSetupIntent obtains a provider setup handle for registering a new card.
func (c *Client) CreateSetupIntent(ctx context.Context) (*payments.SetupIntent, error) {
	var intent payments.SetupIntent
	if err := c.do(ctx, http.MethodPost, "/payment-methods/setup-intent", struct{}{}, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// ListUsers fetches the user directory — admin only.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
