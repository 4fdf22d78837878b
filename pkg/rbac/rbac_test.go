package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	customer := &Principal{AccountID: 7, DisplayName: "Alice", Role: "CUSTOMER"}
	manager := &Principal{AccountID: 8, DisplayName: "Bob", Role: "manager"}
	admin := &Principal{AccountID: 9, DisplayName: "Carol", Role: "Admin"}

	tests := []struct {
		name     string
		p        *Principal
		required []Role
		want     Decision
	}{
		{"anonymous nil principal", nil, []Role{RoleAdmin}, DenyUnauthenticated},
		{"anonymous zero account", &Principal{}, nil, DenyUnauthenticated},
		{"authenticated no required roles", customer, nil, Allow},
		{"exact match", customer, []Role{RoleCustomer}, Allow},
		{"case-insensitive match lower", manager, []Role{RoleManager}, Allow},
		{"case-insensitive match mixed", admin, []Role{RoleAdmin}, Allow},
		{"role not in set", customer, []Role{RoleAdmin}, DenyForbidden},
		{"match any of several", manager, []Role{RoleAdmin, RoleManager}, Allow},
		{"none of several", customer, []Role{RoleAdmin, RoleManager}, DenyForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.p, tt.required...))
		})
	}
}

func TestParseRole(t *testing.T) {
	for input, want := range map[string]Role{
		"admin":    RoleAdmin,
		"ADMIN":    RoleAdmin,
		" Manager": RoleManager,
		"customer": RoleCustomer,
	} {
		role, ok := ParseRole(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, role)
	}

	_, ok := ParseRole("SUPERUSER")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestCapabilities(t *testing.T) {
	customer := &Principal{AccountID: 1, Role: "CUSTOMER"}
	manager := &Principal{AccountID: 2, Role: "MANAGER"}
	admin := &Principal{AccountID: 3, Role: "ADMIN"}

	assert.True(t, customer.Can(CapPlaceOrder))
	assert.False(t, customer.Can(CapManageCatalog))
	assert.False(t, customer.Can(CapViewAuditTrail))

	assert.True(t, manager.Can(CapManageOrders))
	assert.False(t, manager.Can(CapManageUsers))

	assert.True(t, admin.Can(CapManageUsers))
	assert.True(t, admin.Can(CapViewAuditTrail))

	// Unknown role tags degrade to the default role's grants.
	odd := &Principal{AccountID: 4, Role: "WAREHOUSE"}
	assert.True(t, odd.Can(CapPlaceOrder))
	assert.False(t, odd.Can(CapManageOrders))

	var anon *Principal
	assert.False(t, anon.Can(CapPlaceOrder))
}
