package statemachine

import (
	"errors"

	"team-eats/models"
	"team-eats/rbac"
)

// Transition defines a valid state change and the capability that may trigger it.
// An empty Capability marks a system transition (payment confirmation).
type Transition struct {
	From       models.OrderStatus
	To         models.OrderStatus
	Capability rbac.Capability
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Checkout submits a payment method and moves the cart into payment.
	{From: models.StatusCart, To: models.StatusPending, Capability: rbac.CapCheckout},
	// Server-confirmed successful payment.
	{From: models.StatusPending, To: models.StatusCompleted, Capability: ""},
	// Explicit cancel, allowed until the order completes.
	{From: models.StatusCart, To: models.StatusCancelled, Capability: rbac.CapCancelOrder},
	{From: models.StatusPending, To: models.StatusCancelled, Capability: rbac.CapCancelOrder},
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

var transitionMap = func() map[transitionKey]rbac.Capability {
	m := make(map[transitionKey]rbac.Capability)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = t.Capability
	}
	return m
}()

// IsTerminal reports whether no transition leaves the given status.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusCompleted || status == models.StatusCancelled
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether a role may move an order from one state to
// another. System transitions (empty capability) are allowed for any role.
func CanTransition(from, to models.OrderStatus, role models.UserRole) error {
	capability, ok := transitionMap[transitionKey{From: from, To: to}]
	if !ok {
		return errors.New(
			"invalid transition: " + string(from) + " -> " + string(to) +
				". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
		)
	}
	if capability == "" || rbac.HasPermission(role, capability) {
		return nil
	}
	return errors.New(
		"role '" + string(role) + "' lacks the '" + string(capability) +
			"' capability required for " + string(from) + " -> " + string(to),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
