package rbac

import "team-eats/models"

// Capability is a named permission derived from a role. Capabilities are
// advisory on the client and re-checked by the server on every mutating call.
type Capability string

const (
	CapViewMenu      Capability = "view_menu"
	CapCreateOrder   Capability = "create_order"
	CapCheckout      Capability = "checkout"
	CapCancelOrder   Capability = "cancel_order"
	CapUpdatePayment Capability = "update_payment"
	CapManageUsers   Capability = "manage_users"
)

// Capabilities is the set of capabilities granted to a role.
type Capabilities map[Capability]bool

// rolePermissions is the authoritative role → capability matrix
var rolePermissions = map[models.UserRole][]Capability{
	models.RoleAdmin: {
		CapViewMenu,
		CapCreateOrder,
		CapCheckout,
		CapCancelOrder,
		CapUpdatePayment,
		CapManageUsers,
	},
	models.RoleManager: {
		CapViewMenu,
		CapCreateOrder,
		CapCheckout,
		CapCancelOrder,
	},
	models.RoleTeamMember: {
		CapViewMenu,
		CapCreateOrder,
	},
}

// CapabilitiesOf returns the capability set for a role. Unrecognized roles
// get an empty set (fail closed).
func CapabilitiesOf(role models.UserRole) Capabilities {
	caps := Capabilities{}
	for _, c := range rolePermissions[role] {
		caps[c] = true
	}
	return caps
}

// HasPermission reports whether a role carries a specific capability.
func HasPermission(role models.UserRole, capability Capability) bool {
	for _, c := range rolePermissions[role] {
		if c == capability {
			return true
		}
	}
	return false
}
