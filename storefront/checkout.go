package storefront

import (
	"context"
	"errors"
	"sync"

	"team-eats/client"
	"team-eats/models"
	"team-eats/payments"
)

// ErrCheckoutInFlight is returned when a checkout for the same order is
// already outstanding from this client. Guards against double-submission.
var ErrCheckoutInFlight = errors.New("a checkout for this order is already in progress")

// SetupResult is what the provider's client-side confirmation yields for a
// new card: the provider method reference plus display metadata.
type SetupResult struct {
	ProviderMethodID string
	Brand            string
	Last4            string
}

// ConfirmSetupFunc drives the provider's client-side confirmation of a setup
// handle. The card entry UI itself is outside this system.
type ConfirmSetupFunc func(intent *payments.SetupIntent) (*SetupResult, error)

// CheckoutFlow drives an order through checkout. Both the stored-method path
// and the new-method pipeline converge on the same checkout call, and only
// one checkout per order may be outstanding at a time.
type CheckoutFlow struct {
	Client *client.Client

	mu       sync.Mutex
	inFlight map[uint]bool
}

func NewCheckoutFlow(c *client.Client) *CheckoutFlow {
	return &CheckoutFlow{Client: c, inFlight: make(map[uint]bool)}
}

func (f *CheckoutFlow) begin(orderID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inFlight[orderID] {
		return ErrCheckoutInFlight
	}
	f.inFlight[orderID] = true
	return nil
}

func (f *CheckoutFlow) end(orderID uint) {
	f.mu.Lock()
	delete(f.inFlight, orderID)
	f.mu.Unlock()
}

// Checkout pays for an order with an already-registered payment method. On
// success the caller must recompute its active cart from a fresh fetch; the
// checked-out order is no longer a locator candidate.
func (f *CheckoutFlow) Checkout(ctx context.Context, orderID, paymentMethodID uint) (*models.Order, error) {
	if err := f.begin(orderID); err != nil {
		return nil, err
	}
	defer f.end(orderID)

	return f.Client.Checkout(ctx, orderID, paymentMethodID)
}

// RegisterPaymentMethodAndCheckout is the cold-start path with no stored
// method: obtain a setup handle, confirm it with the provider, register the
// resulting method, then checkout — strictly in that order. A failure at any
// stage stops the pipeline; a method registered before a failed checkout
// stays registered for future use.
func (f *CheckoutFlow) RegisterPaymentMethodAndCheckout(ctx context.Context, orderID uint, confirm ConfirmSetupFunc) (*models.Order, error) {
	if err := f.begin(orderID); err != nil {
		return nil, err
	}
	defer f.end(orderID)

	intent, err := f.Client.CreateSetupIntent(ctx)
	if err != nil {
		return nil, err
	}

	result, err := confirm(intent)
	if err != nil {
		return nil, err
	}

	method, err := f.Client.CreatePaymentMethod(ctx, client.PaymentMethodRequest{
		ProviderMethodID: result.ProviderMethodID,
		Brand:            result.Brand,
		Last4:            result.Last4,
		IsDefault:        true,
	})
	if err != nil {
		return nil, err
	}

	return f.Client.Checkout(ctx, orderID, method.ID)
}
