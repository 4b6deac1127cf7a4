package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/georgemunganga/retail-ordering/internal/modules/user"
)

func TestAllows(t *testing.T) {
	tests := []struct {
		role user.Role
		cap  Capability
		want bool
	}{
		{user.RoleCustomer, BrowseCatalog, true},
		{user.RoleCustomer, PlaceOrder, true},
		{user.RoleCustomer, ManageInventory, false},
		{user.RoleCustomer, ViewAnalytics, false},
		{user.RoleManager, PlaceOrder, true},
		{user.RoleManager, ManageInventory, true},
		{user.RoleManager, RequestSupply, true},
		{user.RoleManager, AdministerUsers, false},
		{user.RoleAdmin, ManageInventory, true},
		{user.RoleAdmin, AdministerProducts, true},
		{user.RoleAdmin, ViewAnalytics, false},
		{user.RoleAdmin, RequestSupply, false},
		{user.Role("guest"), BrowseCatalog, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.cap.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Allows(tt.role, tt.cap))
		})
	}
}

func TestGrantsDoNotAlias(t *testing.T) {
	assert.Len(t, grants[user.RoleCustomer], 3)
	assert.False(t, Allows(user.RoleManager, AdministerUsers))
	assert.False(t, Allows(user.RoleAdmin, RequestSupply))
}
