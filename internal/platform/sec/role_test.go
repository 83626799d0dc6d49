// Copyright (c) 2026 FISBook. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fisbook/users-api/internal/platform/sec"
)

/*
TestParseRole verifies the closed role enumeration.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want sec.Role
		ok   bool
	}{
		{"admin", "Admin", sec.RoleAdmin, true},
		{"user", "User", sec.RoleUser, true},
		{"lowercase_admin", "admin", "", false},
		{"unknown", "SuperAdmin", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := sec.ParseRole(tt.raw)
			assert.Equal(t, tt.want, role)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

/*
TestRole_In verifies allow-list membership, including the fail-closed
behavior for unknown roles.
*/
func TestRole_In(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.Role
		allowed []sec.Role
		want    bool
	}{
		{"admin_in_admin_list", sec.RoleAdmin, []sec.Role{sec.RoleAdmin}, true},
		{"user_not_in_admin_list", sec.RoleUser, []sec.Role{sec.RoleAdmin}, false},
		{"user_in_mixed_list", sec.RoleUser, []sec.Role{sec.RoleAdmin, sec.RoleUser}, true},
		{"zero_role_never_member", sec.Role(""), []sec.Role{sec.RoleAdmin, sec.RoleUser}, false},
		{"unknown_role_never_member", sec.Role("SuperAdmin"), []sec.Role{sec.RoleAdmin}, false},
		{"empty_allow_list", sec.RoleAdmin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.In(tt.allowed...))
		})
	}
}

/*
TestParsePlan verifies the closed plan enumeration.
*/
func TestParsePlan(t *testing.T) {
	for _, valid := range []string{"Plan1", "Plan2", "Plan3"} {
		plan, ok := sec.ParsePlan(valid)
		assert.True(t, ok)
		assert.Equal(t, sec.Plan(valid), plan)
		assert.True(t, plan.IsValid())
	}

	for _, invalid := range []string{"", "plan1", "Plan4", "Premium"} {
		plan, ok := sec.ParsePlan(invalid)
		assert.False(t, ok)
		assert.Empty(t, plan)
	}
}
