package storefront

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"team-eats/client"
	"team-eats/models"
	"team-eats/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPaymentMethodAndCheckoutOrdering(t *testing.T) {
	stub, c := newStub(t)

	stub.mux.HandleFunc("POST /payment-methods/setup-intent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, payments.SetupIntent{ID: "seti_1", ClientSecret: "seti_1_secret"})
	})
	stub.mux.HandleFunc("POST /payment-methods", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, models.PaymentMethod{ID: 9, Brand: "visa", Last4: "4242", IsDefault: true})
	})
	stub.mux.HandleFunc("POST /orders/5/checkout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, orderAt(5, 3, models.StatusCompleted, time.Now(), item(42, 2)))
	})

	flow := NewCheckoutFlow(c)
	var confirmedIntent *payments.SetupIntent
	order, err := flow.RegisterPaymentMethodAndCheckout(context.Background(), 5, func(intent *payments.SetupIntent) (*SetupResult, error) {
		confirmedIntent = intent
		return &SetupResult{ProviderMethodID: "pm_123", Brand: "visa", Last4: "4242"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, order.Status)
	if assert.NotNil(t, confirmedIntent) {
		assert.Equal(t, "seti_1", confirmedIntent.ID)
	}

	// Setup, register, checkout — strictly in that order.
	assert.Equal(t, []string{
		"POST /payment-methods/setup-intent",
		"POST /payment-methods",
		"POST /orders/5/checkout",
	}, stub.recorded())
}

func TestRegistrationFailureStopsBeforeCheckout(t *testing.T) {
	stub, c := newStub(t)

	stub.mux.HandleFunc("POST /payment-methods/setup-intent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, payments.SetupIntent{ID: "seti_1", ClientSecret: "s"})
	})
	stub.mux.HandleFunc("POST /payment-methods", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusConflict, "Payment method already registered")
	})

	flow := NewCheckoutFlow(c)
	_, err := flow.RegisterPaymentMethodAndCheckout(context.Background(), 5, func(intent *payments.SetupIntent) (*SetupResult, error) {
		return &SetupResult{ProviderMethodID: "pm_123", Brand: "visa", Last4: "4242"}, nil
	})
	require.Error(t, err)
	assert.Equal(t, "Payment method already registered", client.ErrorMessage(err))
	assert.Zero(t, stub.countCalls("POST /orders/5/checkout"), "checkout must not run after failed registration")
}

func TestProviderConfirmationFailureStopsPipeline(t *testing.T) {
	stub, c := newStub(t)
	stub.mux.HandleFunc("POST /payment-methods/setup-intent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, payments.SetupIntent{ID: "seti_1", ClientSecret: "s"})
	})

	flow := NewCheckoutFlow(c)
	_, err := flow.RegisterPaymentMethodAndCheckout(context.Background(), 5, func(intent *payments.SetupIntent) (*SetupResult, error) {
		return nil, errors.New("card confirmation failed")
	})
	assert.EqualError(t, err, "card confirmation failed")
	assert.Zero(t, stub.countCalls("POST /payment-methods"))
	assert.Zero(t, stub.countCalls("POST /orders/5/checkout"))
}

func TestCheckoutDoubleSubmissionBlocked(t *testing.T) {
	stub, c := newStub(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	stub.mux.HandleFunc("POST /orders/5/checkout", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		writeJSON(w, http.StatusOK, orderAt(5, 3, models.StatusCompleted, time.Now(), item(42, 2)))
	})

	flow := NewCheckoutFlow(c)

	done := make(chan error, 1)
	go func() {
		_, err := flow.Checkout(context.Background(), 5, 9)
		done <- err
	}()

	<-entered
	_, err := flow.Checkout(context.Background(), 5, 9)
	assert.ErrorIs(t, err, ErrCheckoutInFlight)

	close(release)
	assert.NoError(t, <-done)

	// Once the first call settles, the order is checkout-able again
	// (e.g. a retry after failure).
	assert.Equal(t, 1, stub.countCalls("POST /orders/5/checkout"))
}

func TestCheckoutDifferentOrdersAreIndependent(t *testing.T) {
	stub, c := newStub(t)
	stub.mux.HandleFunc("POST /orders/5/checkout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, orderAt(5, 3, models.StatusCompleted, time.Now()))
	})
	stub.mux.HandleFunc("POST /orders/6/checkout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, orderAt(6, 3, models.StatusCompleted, time.Now()))
	})

	flow := NewCheckoutFlow(c)
	_, err := flow.Checkout(context.Background(), 5, 9)
	require.NoError(t, err)
	_, err = flow.Checkout(context.Background(), 6, 9)
	require.NoError(t, err)
}

func TestCheckoutFailureSurfacesServerDetail(t *testing.T) {
	stub, c := newStub(t)
	stub.mux.HandleFunc("POST /orders/5/checkout", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "Payment failed: card was declined")
	})

	flow := NewCheckoutFlow(c)
	_, err := flow.Checkout(context.Background(), 5, 9)
	require.Error(t, err)
	assert.Equal(t, "Payment failed: card was declined", client.ErrorMessage(err))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestCheckoutFailureWithoutDetailGetsGenericMessage(t *testing.T) {
	stub, c := newStub(t)
	stub.mux.HandleFunc("POST /orders/5/checkout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	flow := NewCheckoutFlow(c)
	_, err := flow.Checkout(context.Background(), 5, 9)
	require.Error(t, err)
	assert.Equal(t, client.GenericFailureMessage, client.ErrorMessage(err))
}
