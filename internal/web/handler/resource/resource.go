// Package resource serves the list and form pages of the managed resources.
// Every route is guarded by the permission it needs, templates hide the
// controls the role lacks.
package resource

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/adcu-admin/adcu-admin/internal/auth"
	"github.com/adcu-admin/adcu-admin/internal/backend"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	authmiddleware "github.com/adcu-admin/adcu-admin/internal/web/middleware/auth"
	"github.com/adcu-admin/adcu-admin/internal/web/navigation"
)

const (
	// ListTemplate renders the records of a resource.
	ListTemplate = "resource/list"

	// FormTemplate renders the create and edit form.
	FormTemplate = "resource/form"

	requestTimeout = 15 * time.Second
)

var validationMessages = map[string]string{ //nolint:gochecknoglobals
	"required": "Campo obligatorio",
	"email":    "Correo no válido",
	"oneof":    "Seleccione una opción",
	"datetime": "Fecha no válida",
	"numeric":  "Debe ser un número",
	"min":      "Demasiado corto",
	"max":      "Demasiado largo",
}

// Service serves one resource.
type Service struct {
	handler.Service
	deps     *handler.Deps
	def      Definition
	validate *validator.Validate
}

// New returns the handler of def.
func New(def Definition) *Service {
	return &Service{def: def, validate: validator.New()}
}

// Init registers the routes of the resource.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	res := s.def.Resource

	app.Route(s.def.Path, func(router fiber.Router) {
		router.Get(handler.RootPath, authmiddleware.RequirePermission(res, auth.ActionRead), s.List)
		router.Get("/new", authmiddleware.RequirePermission(res, auth.ActionCreate), s.New)
		router.Post(handler.RootPath, authmiddleware.RequirePermission(res, auth.ActionCreate), s.Create)
		router.Get("/:id/edit", authmiddleware.RequirePermission(res, auth.ActionUpdate), s.Edit)
		router.Post("/:id", authmiddleware.RequirePermission(res, auth.ActionUpdate), s.Update)
		router.Post("/:id/delete", authmiddleware.RequirePermission(res, auth.ActionDelete), s.Delete)
	})

	return nil
}

func (s *Service) nav(sess auth.Session, page, title string) *navigation.Context {
	nav := navigation.NewContext(title, s.def.Name(), page).
		AddBreadcrumb("Inicio", handler.DashboardPath, false)

	if page == "list" {
		nav.AddBreadcrumb(s.def.Title, s.def.Path, true)
	} else {
		nav.AddBreadcrumb(s.def.Title, s.def.Path, false).
			AddBreadcrumb(title, "", true)
	}

	return nav.WithMenu(sess.Permissions())
}

// List renders every record.
func (s *Service) List(c *fiber.Ctx) error {
	sess := authmiddleware.SessionFrom(c)

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	bind := fiber.Map{
		"Navigation": s.nav(sess, "list", s.def.Title),
		"Def":        s.def,
		"Columns":    s.def.Columns(),
		"Flash":      c.Query("saved"),
	}

	records, err := s.deps.Backend.List(ctx, sess.Principal.Token, s.def.Resource)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return c.Redirect(handler.LogoutPath)
		}

		log.Error().Err(err).Str("resource", s.def.Name()).Msg("failed to list records")

		bind["Records"] = []backend.Record{}
		bind["Error"] = "No fue posible cargar los registros"

		return c.Status(fiber.StatusBadGateway).Render(ListTemplate, bind, handler.BaseLayout)
	}

	bind["Records"] = records

	return c.Render(ListTemplate, bind, handler.BaseLayout)
}

func (s *Service) renderForm(c *fiber.Ctx, status int, id string, values, fieldErrors map[string]string, msg string) error {
	sess := authmiddleware.SessionFrom(c)

	title := "Nuevo " + s.def.Singular
	action := s.def.Path
	page := "new"

	if id != "" {
		title = "Editar " + s.def.Singular
		action = s.def.Path + "/" + id
		page = "edit"
	}

	bind := fiber.Map{
		"Navigation": s.nav(sess, page, title),
		"Def":        s.def,
		"ID":         id,
		"Action":     action,
		"Values":     values,
		"Errors":     fieldErrors,
	}

	if msg != "" {
		bind["Error"] = msg
	}

	return c.Status(status).Render(FormTemplate, bind, handler.BaseLayout)
}

// New renders the empty create form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, fiber.StatusOK, "", map[string]string{}, map[string]string{}, "")
}

// Edit renders the form filled with the stored record.
func (s *Service) Edit(c *fiber.Ctx) error {
	sess := authmiddleware.SessionFrom(c)
	id := c.Params("id")

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	rec, err := s.deps.Backend.Get(ctx, sess.Principal.Token, s.def.Resource, id)
	if err != nil {
		return s.backendError(c, err, id, map[string]string{})
	}

	values := make(map[string]string, len(s.def.Fields))
	for _, f := range s.def.Fields {
		values[f.Name] = rec.Field(f.Name)
	}

	return s.renderForm(c, fiber.StatusOK, id, values, map[string]string{}, "")
}

// Create validates the form and posts a new record.
func (s *Service) Create(c *fiber.Ctx) error {
	return s.save(c, "")
}

// Update validates the form and replaces the record.
func (s *Service) Update(c *fiber.Ctx) error {
	return s.save(c, c.Params("id"))
}

func (s *Service) save(c *fiber.Ctx, id string) error {
	sess := authmiddleware.SessionFrom(c)

	rec, values, fieldErrors := s.readForm(c)
	if len(fieldErrors) > 0 {
		return s.renderForm(c, fiber.StatusBadRequest, id, values, fieldErrors, "Revise los campos marcados")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	var err error
	if id == "" {
		_, err = s.deps.Backend.Create(ctx, sess.Principal.Token, s.def.Resource, rec)
	} else {
		_, err = s.deps.Backend.Update(ctx, sess.Principal.Token, s.def.Resource, id, rec)
	}

	if err != nil {
		return s.backendError(c, err, id, values)
	}

	log.Info().
		Str("user_id", sess.Principal.ID).
		Str("resource", s.def.Name()).
		Str("id", id).
		Msg("record saved")

	return c.Redirect(s.afterSave(sess))
}

// Delete removes the record.
func (s *Service) Delete(c *fiber.Ctx) error {
	sess := authmiddleware.SessionFrom(c)
	id := c.Params("id")

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	if err := s.deps.Backend.Delete(ctx, sess.Principal.Token, s.def.Resource, id); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return c.Redirect(handler.LogoutPath)
		}

		log.Error().Err(err).Str("resource", s.def.Name()).Str("id", id).Msg("failed to delete record")

		return c.Redirect(s.def.Path + "?saved=error")
	}

	log.Info().Str("user_id", sess.Principal.ID).Str("resource", s.def.Name()).Str("id", id).Msg("record deleted")

	return c.Redirect(s.afterSave(sess))
}

// afterSave is the list page when the role may read it, the dashboard otherwise.
func (s *Service) afterSave(sess auth.Session) string {
	if sess.Can(s.def.Resource, auth.ActionRead) {
		return s.def.Path + "?saved=ok"
	}

	return handler.DashboardPath
}

// readForm collects and validates the submitted fields.
func (s *Service) readForm(c *fiber.Ctx) (backend.Record, map[string]string, map[string]string) {
	var (
		rec         = make(backend.Record, len(s.def.Fields))
		values      = make(map[string]string, len(s.def.Fields))
		fieldErrors = make(map[string]string)
	)

	for _, f := range s.def.Fields {
		v := strings.TrimSpace(c.FormValue(f.Name))
		values[f.Name] = v

		if err := s.validate.Var(v, f.Rules); err != nil {
			fieldErrors[f.Name] = message(err)
			continue
		}

		if v != "" {
			rec[f.Name] = v
		}
	}

	return rec, values, fieldErrors
}

func message(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		if msg, ok := validationMessages[ve[0].Tag()]; ok {
			return msg
		}
	}

	return "Valor no válido"
}

func (s *Service) backendError(c *fiber.Ctx, err error, id string, values map[string]string) error {
	if errors.Is(err, backend.ErrUnauthorized) {
		return c.Redirect(handler.LogoutPath)
	}

	log.Error().Err(err).Str("resource", s.def.Name()).Str("id", id).Msg("backend request failed")

	var se *backend.StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusNotFound:
			return s.renderForm(c, fiber.StatusNotFound, id, values, map[string]string{}, "El registro no existe")
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return s.renderForm(c, fiber.StatusBadRequest, id, values, map[string]string{}, "El servicio rechazó los datos")
		case http.StatusForbidden:
			return c.Redirect(handler.UnauthorizedPath)
		}
	}

	return s.renderForm(c, fiber.StatusBadGateway, id, values, map[string]string{}, "No fue posible guardar, intente más tarde")
}
