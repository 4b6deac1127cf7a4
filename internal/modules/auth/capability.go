package auth

import "github.com/georgemunganga/retail-ordering/internal/modules/user"

// Capability is an operation gated by role.
type Capability int

const (
	BrowseCatalog Capability = iota
	PlaceOrder
	ViewOwnOrders
	// ManageInventory covers stock and price edits. Managers are further
	// restricted to stores they own; admins are not.
	ManageInventory
	ViewProductUpdates
	ViewAnalytics
	RequestSupply
	AdministerUsers
	AdministerProducts
)

var capabilityNames = map[Capability]string{
	BrowseCatalog:      "browse catalog",
	PlaceOrder:         "place order",
	ViewOwnOrders:      "view own orders",
	ManageInventory:    "manage inventory",
	ViewProductUpdates: "view product updates",
	ViewAnalytics:      "view analytics",
	RequestSupply:      "request supply",
	AdministerUsers:    "administer users",
	AdministerProducts: "administer products",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown capability"
}

var customerCapabilities = []Capability{BrowseCatalog, PlaceOrder, ViewOwnOrders}

var grants = map[user.Role][]Capability{
	user.RoleCustomer: customerCapabilities,
	user.RoleManager: append(append([]Capability{}, customerCapabilities...),
		ManageInventory, ViewProductUpdates, ViewAnalytics, RequestSupply),
	user.RoleAdmin: append(append([]Capability{}, customerCapabilities...),
		ManageInventory, ViewProductUpdates, AdministerUsers, AdministerProducts),
}

// Allows reports whether role carries capability c.
func Allows(role user.Role, c Capability) bool {
	for _, granted := range grants[role] {
		if granted == c {
			return true
		}
	}
	return false
}
