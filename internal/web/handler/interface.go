package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/adcu-admin/adcu-admin/internal/backend"
	"github.com/adcu-admin/adcu-admin/internal/config"
	"github.com/adcu-admin/adcu-admin/internal/web/session"
)

// ErrNilDeps is returned by Init when a dependency is missing.
var ErrNilDeps = errors.New(ErrNilDepsFatalLogMsg)

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Sessions *session.Manager
	Backend  *backend.Client
}

// Valid reports whether every collaborator is set.
func (d *Deps) Valid() bool {
	return d != nil && d.Cfg != nil && d.DB != nil && d.Sessions != nil && d.Backend != nil
}

// CookieName is the configured session cookie name.
func (d *Deps) CookieName() string {
	if d.Cfg.Webserver.Session.CookieName == "" {
		return "session"
	}

	return d.Cfg.Webserver.Session.CookieName
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}
