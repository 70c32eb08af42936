// Package dashboard renders the landing page with record counts per readable resource.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/adcu-admin/adcu-admin/internal/auth"
	"github.com/adcu-admin/adcu-admin/internal/backend"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	authmiddleware "github.com/adcu-admin/adcu-admin/internal/web/middleware/auth"
	"github.com/adcu-admin/adcu-admin/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.DashboardPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"

	defaultTimeout = 10 * time.Second
)

// Card is one resource tile of the dashboard.
type Card struct {
	Title     string
	URL       string
	Count     int
	Failed    bool
	CanCreate bool
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	deps    *handler.Deps
	timeout time.Duration
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	if s.timeout == 0 {
		s.timeout = defaultTimeout
	}

	app.Get(Path, authmiddleware.RequireAuthenticated(), s.Get)

	return nil
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	sess := authmiddleware.SessionFrom(c)
	perms := sess.Permissions()

	nav := navigation.NewContext("Inicio", "dashboard", "dashboard").
		AddBreadcrumb("Inicio", Path, true).
		WithMenu(perms)

	cards, err := s.loadCards(c.UserContext(), sess.Principal.Token, perms)
	if errors.Is(err, backend.ErrUnauthorized) {
		log.Info().Str("user_id", sess.Principal.ID).Msg("backend rejected token, logging out")
		return c.Redirect(handler.LogoutPath)
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Cards":      cards,
		"User":       sess.Principal,
	}, handler.BaseLayout)
}

// loadCards counts the records of every readable resource concurrently.
// Failing counts mark their card, only a rejected token aborts.
func (s *Service) loadCards(parent context.Context, token string, perms auth.Permissions) ([]Card, error) {
	var (
		items = navigation.ResourceItems()
		cards = make([]Card, 0, len(items))
		res   = make([]auth.Resource, 0, len(items))
	)

	for _, item := range items {
		if !perms[item.Resource][auth.ActionRead] {
			continue
		}

		cards = append(cards, Card{
			Title:     item.Title,
			URL:       item.URL,
			CanCreate: perms[item.Resource][auth.ActionCreate],
		})
		res = append(res, item.Resource)
	}

	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	var g errgroup.Group

	for i := range cards {
		g.Go(func() error {
			n, err := s.deps.Backend.Count(ctx, token, res[i])
			if err != nil {
				log.Error().Err(err).Str("resource", res[i].String()).Msg("failed to count records")
				cards[i].Failed = true

				if errors.Is(err, backend.ErrUnauthorized) {
					return err
				}

				return nil
			}

			cards[i].Count = n

			return nil
		})
	}

	return cards, g.Wait()
}
