package auth

import "errors"

var (
	// ErrUnknownRole is returned when role text is not one of the known role names.
	ErrUnknownRole = errors.New("unknown role")

	// ErrUnknownResource is returned when a resource name is not part of the policy.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrUnknownAction is returned when an action name is not one of create, read, update or delete.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMalformedPermission is returned when a permission is not in "resource.action" form.
	ErrMalformedPermission = errors.New("malformed permission")
)
