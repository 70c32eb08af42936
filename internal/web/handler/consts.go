package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// LoginPath is the login entry point every unauthenticated request ends up at.
	LoginPath = RootPath + "login"

	// LogoutPath clears the session.
	LogoutPath = RootPath + "logout"

	// UnauthorizedPath is shown when the role lacks access to a page.
	UnauthorizedPath = RootPath + "unauthorized"

	// DashboardPath is the landing page after login.
	DashboardPath = RootPath + "dashboard"

	// ErrNilDepsFatalLogMsg is used if app or one of the dependencies is nil.
	ErrNilDepsFatalLogMsg = "app, cfg, db, sessions or backend is nil"
)

// Keys of fiber.Locals filled by the auth middleware. They are passed to the
// views, so templates can use them directly.
const (
	LocalsSession     = "Session"
	LocalsPermissions = "Permissions"
	LocalsCurrentUser = "CurrentUser"
	LocalsRole        = "role"
)
