// Copyright (c) 2026 FISBook. All rights reserved.

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// It is a closed enumeration: any string outside the two known values parses
// to the zero Role, which matches no route allow-list. A typo in stored data
// therefore fails closed instead of silently granting access.
type Role string

const (
	// Unrestricted access to every account record
	RoleAdmin Role = "Admin"

	// Default role for standard registered users
	RoleUser Role = "User"
)

// ParseRole maps a raw string to a known [Role].
// Unknown values return the zero Role and ok=false.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// IsValid reports whether the role is one of the known enumeration values.
func (r Role) IsValid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// In reports whether the role is a member of the given allow-list.
// The zero Role is never a member of any list.
func (r Role) In(allowed ...Role) bool {
	if !r.IsValid() {
		return false
	}
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// # Subscription Plans

// Plan represents the subscription tier of an account.
// It is carried in token claims for convenience only; the user record in
// PostgreSQL remains the source of truth.
type Plan string

const (
	Plan1 Plan = "Plan1"
	Plan2 Plan = "Plan2"
	Plan3 Plan = "Plan3"
)

// ParsePlan maps a raw string to a known [Plan].
func ParsePlan(raw string) (Plan, bool) {
	switch Plan(raw) {
	case Plan1, Plan2, Plan3:
		return Plan(raw), true
	default:
		return "", false
	}
}

// IsValid reports whether the plan is one of the known enumeration values.
func (p Plan) IsValid() bool {
	_, ok := ParsePlan(string(p))
	return ok
}
