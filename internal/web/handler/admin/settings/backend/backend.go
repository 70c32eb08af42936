// Package backend serves the admin page editing the backend connection.
package backend

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/adcu-admin/adcu-admin/internal/auth"
	controller "github.com/adcu-admin/adcu-admin/internal/db/controller/backend"
	"github.com/adcu-admin/adcu-admin/internal/db/controller/setting"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	authmiddleware "github.com/adcu-admin/adcu-admin/internal/web/middleware/auth"
	"github.com/adcu-admin/adcu-admin/internal/web/navigation"
)

const (
	// Path is the path to the backend settings page.
	Path = handler.RootPath + "admin/settings/backend"

	// TemplateName is the name of the backend settings template.
	TemplateName = "admin/settings/backend"
)

// Service is the backend settings handler service.
type Service struct {
	handler.Service
	deps      *handler.Deps
	validator *validator.Validate
}

// Handler is the backend settings handler.
var Handler = Service{}

// Init initializes the backend settings handler. The page is admin only.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	s.validator = validator.New()

	adminOnly := authmiddleware.RequireRoles(auth.NewRoleSet(auth.RoleAdmin))

	app.Get(Path, adminOnly, s.Get)
	app.Post(Path, adminOnly, s.Post)

	return nil
}

func (s *Service) render(c *fiber.Ctx, status int, settings *controller.Settings, extra fiber.Map) error {
	nav := navigation.NewContext("Conexión con el backend", "settings", "backend").
		AddBreadcrumb("Inicio", handler.DashboardPath, false).
		AddBreadcrumb("Ajustes", "", false).
		AddBreadcrumb("Backend", Path, true).
		WithMenu(authmiddleware.SessionFrom(c).Permissions())

	bind := fiber.Map{
		"Navigation": nav,
		"Settings":   settings,
	}

	for k, v := range extra {
		bind[k] = v
	}

	return c.Status(status).Render(TemplateName, bind, handler.BaseLayout)
}

// Get renders the form with the stored settings.
func (s *Service) Get(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := settings.Load(s.deps.DB); err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			log.Debug().Msg("backend settings not found, rendering config defaults")

			seeded := controller.FromConfig(s.deps.Cfg.Backend)

			return s.render(c, fiber.StatusOK, &seeded, nil)
		}

		log.Error().Err(err).Msg("failed to load backend settings")

		return c.Status(fiber.StatusInternalServerError).SendString("No fue posible cargar los ajustes")
	}

	return s.render(c, fiber.StatusOK, settings, nil)
}

// Post validates, stores and applies the submitted settings.
func (s *Service) Post(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := c.BodyParser(settings); err != nil {
		log.Error().Err(err).Msg("failed to parse backend settings form")

		return s.render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": []string{"Datos de formulario no válidos"}})
	}

	// an empty api key keeps the stored one
	if settings.APIKey == "" {
		s.keepStoredAPIKey(settings)
	}

	if err := s.validator.Struct(settings); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)

		messages := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			messages[i] = "El campo '" + ve.Field() + "' no cumple la regla '" + ve.Tag() + "'"
		}

		log.Warn().Err(err).Msg("validation failed for backend settings")

		return s.render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": messages})
	}

	if err := settings.Save(s.deps.DB); err != nil {
		log.Error().Err(err).Msg("failed to save backend settings")

		return s.render(c, fiber.StatusInternalServerError, settings, fiber.Map{"Error": []string{"No fue posible guardar los ajustes"}})
	}

	s.deps.Backend.Configure(settings.ClientConfig())

	log.Info().
		Str("base_url", settings.BaseURL).
		Int("timeout_seconds", settings.TimeoutSeconds).
		Msg("backend settings saved")

	return s.render(c, fiber.StatusOK, settings, fiber.Map{"Success": "Ajustes guardados"})
}

func (s *Service) keepStoredAPIKey(settings *controller.Settings) {
	var stored controller.Settings
	if err := stored.Load(s.deps.DB); err == nil {
		settings.APIKey = stored.APIKey
	}
}
