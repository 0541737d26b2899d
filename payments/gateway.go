package payments

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SetupIntent is a provider-issued handle authorizing client-side confirmation
// of a new payment method before it is registered with the server.
type SetupIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// Gateway is the protocol boundary to the payment provider. The real card
// entry UI and processor live outside this system; only the setup → confirm →
// charge sequence is modeled here.
type Gateway interface {
	CreateSetupIntent(userUID string) (*SetupIntent, error)
	Charge(providerMethodID string, amountCents int64) (paymentIntentID string, err error)
}

// Default is the gateway used by the checkout and setup-intent handlers.
// Swapped for a scripted gateway in tests.
var Default Gateway = NewSimulatedGateway()

// ErrCardDeclined is returned by the simulator for method refs carrying the
// "pm_declined" prefix, so payment failure paths can be exercised end to end.
var ErrCardDeclined = errors.New("payment failed: card was declined")

// SimulatedGateway is a deterministic in-process stand-in for the provider.
type SimulatedGateway struct {
	mu      sync.Mutex
	intents map[string]string // setup intent id -> user uid
}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{intents: make(map[string]string)}
}

func (g *SimulatedGateway) CreateSetupIntent(userUID string) (*SetupIntent, error) {
	id := "seti_" + uuid.NewString()
	g.mu.Lock()
	g.intents[id] = userUID
	g.mu.Unlock()
	return &SetupIntent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString(),
	}, nil
}

func (g *SimulatedGateway) Charge(providerMethodID string, amountCents int64) (string, error) {
	if strings.HasPrefix(providerMethodID, "pm_declined") {
		return "", ErrCardDeclined
	}
	if amountCents <= 0 {
		return "", errors.New("payment failed: amount must be positive")
	}
	return "pi_" + uuid.NewString(), nil
}
