// Package storefront holds the cart-and-order lifecycle orchestration: the
// active-cart locator, the cart mutation sequencing, the checkout pipeline and
// the admin cart console. All of it works over the server's latest snapshot;
// nothing here is a client-owned source of truth.
package storefront

import "team-eats/models"

// LocateActiveCart resolves which single order is "the active cart" from a
// user's order list. The backend may hold more than one cart-status row per
// user, so the pick must be deterministic:
//
//  1. a cart for forRestaurantID wins when one exists (forRestaurantID 0
//     means no restaurant preference),
//  2. otherwise the most recent cart with at least one item,
//  3. otherwise the most recent cart row,
//  4. nil when the user has no carts at all.
//
// Recency is created_at with the higher id breaking ties. The function is
// pure and is recomputed after every mutation and fresh fetch.
func LocateActiveCart(orders []models.Order, forRestaurantID uint) *models.Order {
	var carts []*models.Order
	for i := range orders {
		if orders[i].Status == models.StatusCart {
			carts = append(carts, &orders[i])
		}
	}
	if len(carts) == 0 {
		return nil
	}

	if forRestaurantID != 0 {
		var match *models.Order
		for _, cart := range carts {
			if cart.RestaurantID == forRestaurantID && (match == nil || moreRecent(cart, match)) {
				match = cart
			}
		}
		if match != nil {
			return match
		}
	}

	// Prefer a non-empty cart over an empty abandoned one.
	var best *models.Order
	for _, cart := range carts {
		if cart.HasItems() && (best == nil || moreRecent(cart, best)) {
			best = cart
		}
	}
	if best != nil {
		return best
	}

	for _, cart := range carts {
		if best == nil || moreRecent(cart, best) {
			best = cart
		}
	}
	return best
}

func moreRecent(a, b *models.Order) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
