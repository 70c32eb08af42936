// Package unauthorized renders the page shown when a role lacks access.
package unauthorized

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adcu-admin/adcu-admin/internal/auth"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	authmiddleware "github.com/adcu-admin/adcu-admin/internal/web/middleware/auth"
	"github.com/adcu-admin/adcu-admin/internal/web/navigation"
)

const (
	// Path is the unauthorized page.
	Path = handler.UnauthorizedPath

	// TemplateName is the name of the unauthorized template.
	TemplateName = "unauthorized"
)

// Service is the unauthorized handler service.
type Service struct {
	handler.Service
}

// Handler is the unauthorized handler.
var Handler = Service{}

// Init registers the page. Anonymous visitors are sent to the login page.
func (s *Service) Init(app *fiber.App, _ *handler.Deps) error {
	if app == nil {
		return handler.ErrNilDeps
	}

	app.Get(Path, s.Get)

	return nil
}

// Get renders the 403 page.
func (s *Service) Get(c *fiber.Ctx) error {
	sess := authmiddleware.SessionFrom(c)
	if !sess.Authenticated {
		return c.Redirect(handler.LoginPath)
	}

	nav := navigation.NewContext("Acceso denegado", "", "").
		AddBreadcrumb("Inicio", handler.DashboardPath, false).
		AddBreadcrumb("Acceso denegado", Path, true).
		WithMenu(sess.Permissions())

	return c.Status(fiber.StatusForbidden).Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Role":       sess.Role.String(),
		"HasRole":    sess.Role != auth.RoleNone,
	}, handler.BaseLayout)
}
