package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted login form cannot be parsed
	// or fails validation.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrInternalServerError is returned for unexpected failures during the login process.
	ErrInternalServerError = errors.New("internal server error")
)

// Messages shown on the login page.
const (
	msgInvalidForm        = "Ingrese usuario y contraseña"
	msgInvalidCredentials = "Usuario o contraseña incorrectos"
	msgBackendUnavailable = "El servicio no está disponible, intente más tarde"
	msgInternalError      = "Error interno, intente más tarde"
)
