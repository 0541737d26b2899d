package storefront

import (
	"context"
	"errors"
	"fmt"

	"team-eats/client"
	"team-eats/models"
	"team-eats/rbac"
	"team-eats/statemachine"
)

// ErrNotPermitted is returned when the console operator's role lacks the
// capability for an action. Advisory only; the server re-checks regardless.
var ErrNotPermitted = errors.New("your role does not permit this action")

// ErrOrderTerminal is returned for checkout/cancel attempts against
// completed or cancelled orders. No control should be shown for them.
var ErrOrderTerminal = errors.New("order is in a terminal state")

// CartRow is one entry of the all-carts view, joined against the user and
// restaurant directories for display.
type CartRow struct {
	Order          models.Order
	UserEmail      string
	UserFullName   string
	UserUID        string
	RestaurantName string
}

// AdminConsole operates over every user's active carts, reusing the same
// checkout flow and cancel transition as the user-facing storefront but
// against arbitrary users' orders.
type AdminConsole struct {
	Client *client.Client
	Role   models.UserRole
	Flow   *CheckoutFlow
}

func NewAdminConsole(c *client.Client, role models.UserRole) *AdminConsole {
	return &AdminConsole{Client: c, Role: role, Flow: NewCheckoutFlow(c)}
}

// ListCarts fetches all active carts and joins them with the user and
// restaurant directories. The user directory is admin-only; when it cannot
// be fetched the rows fall back to bare ids.
func (a *AdminConsole) ListCarts(ctx context.Context) ([]CartRow, error) {
	carts, err := a.Client.AllCarts(ctx)
	if err != nil {
		return nil, err
	}

	usersByID := map[uint]models.User{}
	if users, err := a.Client.ListUsers(ctx); err == nil {
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	restaurantsByID := map[uint]models.Restaurant{}
	if restaurants, err := a.Client.ListRestaurants(ctx, ""); err == nil {
		for _, r := range restaurants {
			restaurantsByID[r.ID] = r
		}
	}

	rows := make([]CartRow, 0, len(carts))
	for _, cart := range carts {
		row := CartRow{
			Order:          cart,
			UserEmail:      fmt.Sprintf("User #%d", cart.UserID),
			UserUID:        fmt.Sprintf("ID: %d", cart.UserID),
			RestaurantName: fmt.Sprintf("Restaurant #%d", cart.RestaurantID),
		}
		if u, ok := usersByID[cart.UserID]; ok {
			row.UserEmail = u.Email
			row.UserFullName = u.FullName
			row.UserUID = u.UserUID
		}
		if r, ok := restaurantsByID[cart.RestaurantID]; ok {
			row.RestaurantName = r.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PaymentMethodsFor lists the registered payment methods of the cart owner,
// for picking one during an on-behalf checkout.
func (a *AdminConsole) PaymentMethodsFor(ctx context.Context, userID uint) ([]models.PaymentMethod, error) {
	return a.Client.ListPaymentMethods(ctx, userID)
}

// CheckoutCart checks out another user's cart with one of that user's
// payment methods. Requires the checkout capability.
func (a *AdminConsole) CheckoutCart(ctx context.Context, order *models.Order, paymentMethodID uint) (*models.Order, error) {
	if !rbac.HasPermission(a.Role, rbac.CapCheckout) {
		return nil, ErrNotPermitted
	}
	if statemachine.IsTerminal(order.Status) {
		return nil, ErrOrderTerminal
	}
	return a.Flow.Checkout(ctx, order.ID, paymentMethodID)
}

// CancelCart cancels another user's cart or pending order. Requires the
// cancel_order capability; terminal orders are rejected before any call.
func (a *AdminConsole) CancelCart(ctx context.Context, order *models.Order) error {
	if !rbac.HasPermission(a.Role, rbac.CapCancelOrder) {
		return ErrNotPermitted
	}
	if statemachine.IsTerminal(order.Status) {
		return ErrOrderTerminal
	}
	return a.Client.CancelOrder(ctx, order.ID)
}
