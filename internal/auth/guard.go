package auth

// Decision is the outcome of a route guard evaluation.
type Decision uint8

const (
	// RedirectLogin sends an unauthenticated visitor to the login entry point.
	RedirectLogin Decision = iota
	// RedirectUnauthorized sends an authenticated user without access to the unauthorized view.
	RedirectUnauthorized
	// Allow lets the navigation proceed.
	Allow
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "redirect_login"
	}
}

// Guard classifies a navigation attempt to a view that admits the roles in allowed.
// A missing role, an unknown role and an empty or nil allowed set all deny.
func Guard(session Session, allowed RoleSet) Decision {
	if !session.Authenticated {
		return RedirectLogin
	}

	if !allowed.Contains(session.Role) {
		return RedirectUnauthorized
	}

	return Allow
}

// GuardPermission is Guard with the allowed set derived from the permission table.
func GuardPermission(session Session, resource Resource, action Action) Decision {
	return Guard(session, RolesPermitted(resource, action))
}
