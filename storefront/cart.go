package storefront

import (
	"context"
	"errors"
	"sync"

	"team-eats/client"
	"team-eats/models"
)

// ErrSwitchNotConfirmed is returned when adding an item would abandon a
// non-empty cart for another restaurant and no confirmation was given.
var ErrSwitchNotConfirmed = errors.New("switching restaurants would abandon the current cart")

// ConfirmSwitchFunc asks the user whether to abandon their existing cart and
// start one for a different restaurant.
type ConfirmSwitchFunc func(existing *models.Order, newRestaurantID uint) bool

// CartSession sequences cart mutations against the server. One mutation is in
// flight at a time; every mutation is followed by a forced re-fetch so the
// returned cart always reflects server-computed totals and merge results.
type CartSession struct {
	Client        *client.Client
	ConfirmSwitch ConfirmSwitchFunc

	mu sync.Mutex
}

func NewCartSession(c *client.Client, confirm ConfirmSwitchFunc) *CartSession {
	return &CartSession{Client: c, ConfirmSwitch: confirm}
}

// ActiveCart fetches the caller's orders and resolves the active cart for a
// restaurant (0 for no preference). Returns nil when there is none.
func (s *CartSession) ActiveCart(ctx context.Context, forRestaurantID uint) (*models.Order, error) {
	orders, err := s.Client.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return LocateActiveCart(orders, forRestaurantID), nil
}

// AddItem ensures a cart exists for the restaurant, then adds the menu item.
// When the active cart holds items for a different restaurant, the switch is
// destructive and must be confirmed; with no ConfirmSwitch configured the
// operation aborts. The returned cart is re-fetched after the write.
func (s *CartSession) AddItem(ctx context.Context, restaurantID, menuItemID uint, quantity int) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		quantity = 1
	}

	orders, err := s.Client.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	cart := LocateActiveCart(orders, restaurantID)
	if cart == nil || cart.RestaurantID != restaurantID {
		if existing := LocateActiveCart(orders, 0); existing != nil &&
			existing.RestaurantID != restaurantID && existing.HasItems() {
			if s.ConfirmSwitch == nil || !s.ConfirmSwitch(existing, restaurantID) {
				return nil, ErrSwitchNotConfirmed
			}
		}
		cart, err = s.Client.CreateOrder(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.Client.AddItem(ctx, cart.ID, menuItemID, quantity); err != nil {
		return nil, err
	}

	// Re-fetch: the server may have merged the quantity into an existing line.
	orders, err = s.Client.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return LocateActiveCart(orders, restaurantID), nil
}

// RemoveItem deletes one line item and returns the re-fetched order. The
// order stays in cart status even with zero items; callers treat an empty
// cart as "no cart" for display.
func (s *CartSession) RemoveItem(ctx context.Context, orderID, itemID uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Client.RemoveItem(ctx, orderID, itemID); err != nil {
		return nil, err
	}
	return s.Client.GetOrder(ctx, orderID)
}
