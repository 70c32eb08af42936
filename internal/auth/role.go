package auth

import (
	"fmt"
	"strings"
)

// Role is the closed set of principal roles known to the front-end.
// The zero value RoleNone is the "absent role" sentinel and is denied everything.
type Role uint8

const (
	// RoleNone marks an unauthenticated or unrecognized principal.
	RoleNone Role = iota
	// RoleAdmin is the administrator ("administrador").
	RoleAdmin
	// RoleStaff is the staff member ("funcionario").
	RoleStaff
	// RoleContractor is the contractor ("contratista").
	RoleContractor
)

var roleNames = [...]string{
	RoleNone:       "",
	RoleAdmin:      "admin",
	RoleStaff:      "staff",
	RoleContractor: "contractor",
}

// backend role names as delivered by the ADCU API.
var roleAliases = map[string]Role{
	"admin":         RoleAdmin,
	"administrador": RoleAdmin,
	"staff":         RoleStaff,
	"funcionario":   RoleStaff,
	"contractor":    RoleContractor,
	"contratista":   RoleContractor,
}

// Roles returns all assignable roles, RoleNone excluded.
func Roles() []Role {
	return []Role{RoleAdmin, RoleStaff, RoleContractor}
}

// ParseRole maps a role name to a Role. Both the English and the backend's
// Spanish names are accepted.
func ParseRole(s string) (Role, bool) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return RoleNone, false
	}

	return r, true
}

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	return r > RoleNone && int(r) < len(roleNames)
}

// String implements fmt.Stringer.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}

	return fmt.Sprintf("Role(%d)", uint8(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if r == RoleNone {
		return []byte{}, nil
	}

	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}

	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Empty text decodes to RoleNone, unknown names fail.
func (r *Role) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*r = RoleNone
		return nil
	}

	parsed, ok := ParseRole(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, text)
	}

	*r = parsed

	return nil
}

// RoleSet is the set of roles allowed to enter a protected view.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet, dropping RoleNone and invalid values.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))

	for _, r := range roles {
		if r.Valid() {
			set[r] = struct{}{}
		}
	}

	return set
}

// Contains reports whether r is in the set. A nil set contains nothing.
func (s RoleSet) Contains(r Role) bool {
	if !r.Valid() {
		return false
	}

	_, ok := s[r]

	return ok
}

// Slice returns the members in declaration order.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))

	for _, r := range Roles() {
		if s.Contains(r) {
			out = append(out, r)
		}
	}

	return out
}
