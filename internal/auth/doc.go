// Package auth holds the authorization core of the ADCU admin front-end.
//
// The package is pure: it performs no I/O and keeps no mutable state.
//
// # Permission Evaluator
//
// Permissions are static and compiled in. Every (role, resource, action)
// triple has an answer and anything not granted is denied:
//   - Can: answer one triple
//   - PermissionsFor: bulk view for conditional rendering, built from Can
//   - RolesPermitted: the roles allowed for a (resource, action), used as the
//     allowed-roles set of a page
//
// # Route Guard
//
// Guard classifies a navigation attempt as Allow, RedirectLogin or
// RedirectUnauthorized. The caller performs the redirect.
//
// Example usage:
//
//	if auth.Can(sess.Role, auth.ResourceDocuments, auth.ActionDelete) {
//	    // render the delete button
//	}
//
//	switch auth.Guard(sess, auth.NewRoleSet(auth.RoleAdmin, auth.RoleStaff)) {
//	case auth.RedirectLogin:
//	case auth.RedirectUnauthorized:
//	case auth.Allow:
//	}
package auth
