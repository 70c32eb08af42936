// Package auth binds the authorization core to fiber.
//
// Middleware loads the session once per request and stores it in fiber.Locals
// together with the bulk permission view used by templates. RequireRoles and
// RequirePermission guard single routes: unauthenticated requests are
// redirected to the login page, authenticated requests lacking the role to
// the unauthorized page.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware(sessions, "session"))
//	app.Get("/documents", authmiddleware.RequirePermission(auth.ResourceDocuments, auth.ActionRead), list)
package auth
