// Package login authenticates users against the backend and opens their session.
package login

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog/log"

	"github.com/adcu-admin/adcu-admin/internal/backend"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	"github.com/adcu-admin/adcu-admin/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.LoginPath

	// TemplateName is the name of the login template.
	TemplateName = "login"

	loginTimeout = 20 * time.Second
)

// Form is the submitted login form.
type Form struct {
	Username string `form:"username" validate:"required,max=128"`
	Password string `form:"password" validate:"required,max=256"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	deps      *handler.Deps
	validator *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	s.validator = validator.New()

	post := []fiber.Handler{s.Post}
	if limit := deps.Cfg.Webserver.LoginRateLimit; limit > 0 {
		post = append([]fiber.Handler{adaptor.HTTPMiddleware(httprate.LimitByIP(limit, time.Minute))}, post...)
	}

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, post...)
	})

	return nil
}

func (s *Service) render(c *fiber.Ctx, status int, form *Form, msg string) error {
	bind := fiber.Map{
		"Title":    s.deps.Cfg.Title,
		"Username": form.Username,
	}

	if msg != "" {
		bind["Error"] = msg
	}

	return c.Status(status).Render(TemplateName, bind)
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, &Form{}, "")
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg(ErrInvalidFormData.Error())
		return s.render(c, fiber.StatusBadRequest, form, msgInvalidForm)
	}

	if err := s.validator.Struct(form); err != nil {
		return s.render(c, fiber.StatusBadRequest, form, msgInvalidForm)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), loginTimeout)
	defer cancel()

	principal, err := s.deps.Backend.Login(ctx, form.Username, form.Password)

	switch {
	case errors.Is(err, backend.ErrInvalidCredentials):
		log.Info().Str("username", form.Username).Msg("login failed")
		return s.render(c, fiber.StatusUnauthorized, form, msgInvalidCredentials)
	case err != nil:
		log.Error().Err(err).Str("username", form.Username).Msg("backend login failed")
		return s.render(c, fiber.StatusBadGateway, form, msgBackendUnavailable)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.render(c, fiber.StatusInternalServerError, form, msgInternalError)
	}

	if err = s.deps.Sessions.Login(sessionID, principal); err != nil {
		if errors.Is(err, session.ErrInvalidPrincipal) {
			log.Warn().Str("username", form.Username).Msg("backend returned a principal without id or known role")
			return s.render(c, fiber.StatusForbidden, form, msgInvalidCredentials)
		}

		log.Error().Err(err).Msg("failed to write session")

		return s.render(c, fiber.StatusInternalServerError, form, msgInternalError)
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.deps.CookieName(),
		Value:    sessionID,
		Path:     handler.RootPath,
		MaxAge:   int(s.deps.Sessions.Expiry().Seconds()),
		Secure:   !s.deps.Cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	log.Info().Str("user_id", principal.ID).Str("role", principal.Role.String()).Msg("user logged in")

	return c.Redirect(handler.DashboardPath)
}
