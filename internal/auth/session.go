package auth

// Principal is the authenticated user as returned by the backend login endpoint.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

// Session is the per-request view of who is signed in.
type Session struct {
	Authenticated bool
	Role          Role
	Principal     Principal
}

// Anonymous returns the unauthenticated session.
func Anonymous() Session {
	return Session{}
}

// NewSession returns an authenticated session for p.
func NewSession(p Principal) Session {
	return Session{
		Authenticated: true,
		Role:          p.Role,
		Principal:     p,
	}
}

// Can reports whether the session's role may perform action on resource.
func (s Session) Can(resource Resource, action Action) bool {
	if !s.Authenticated {
		return false
	}

	return Can(s.Role, resource, action)
}

// Permissions returns the bulk permission view of the session.
// Unauthenticated sessions get the all-false view.
func (s Session) Permissions() Permissions {
	if !s.Authenticated {
		return PermissionsFor(RoleNone)
	}

	return PermissionsFor(s.Role)
}
