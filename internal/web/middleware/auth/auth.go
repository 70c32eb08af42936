package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/adcu-admin/adcu-admin/internal/auth"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	"github.com/adcu-admin/adcu-admin/internal/web/session"
)

var guardDecisions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "adcu_guard_decisions_total",
		Help: "Route guard decisions, differentiated by outcome.",
	},
	[]string{"decision"},
)

// DecisionCounter returns the counter of decision d.
func DecisionCounter(d auth.Decision) prometheus.Counter {
	return guardDecisions.WithLabelValues(d.String())
}

// Middleware loads the session named by the cookie into fiber.Locals.
// It never rejects a request, the route guards do.
func Middleware(sessions *session.Manager, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(strings.ToLower(c.Path()), "/static") {
			return c.Next()
		}

		s := sessions.Load(c.Cookies(cookieName))

		c.Locals(handler.LocalsSession, s)
		c.Locals(handler.LocalsPermissions, s.Permissions())

		if s.Authenticated {
			c.Locals(handler.LocalsCurrentUser, s.Principal)
			c.Locals(handler.LocalsRole, s.Role.String())

			if IsLoginPage(c) && c.Method() == fiber.MethodGet {
				return c.Redirect(handler.DashboardPath)
			}
		}

		return c.Next()
	}
}

// SessionFrom returns the session stored by Middleware, anonymous when absent.
func SessionFrom(c *fiber.Ctx) auth.Session {
	if s, ok := c.Locals(handler.LocalsSession).(auth.Session); ok {
		return s
	}

	return auth.Anonymous()
}

// RequireRoles lets the request through when the session's role is in roles.
func RequireRoles(roles auth.RoleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := SessionFrom(c)
		decision := auth.Guard(s, roles)

		guardDecisions.WithLabelValues(decision.String()).Inc()

		switch decision {
		case auth.Allow:
			return c.Next()
		case auth.RedirectUnauthorized:
			log.Warn().
				Str("user_id", s.Principal.ID).
				Str("role", s.Role.String()).
				Str("path", c.Path()).
				Msg("role lacks access to page")

			return c.Redirect(handler.UnauthorizedPath)
		default:
			return c.Redirect(handler.LoginPath)
		}
	}
}

// RequirePermission is RequireRoles with the roles the permission table grants
// action on resource.
func RequirePermission(resource auth.Resource, action auth.Action) fiber.Handler {
	return RequireRoles(auth.RolesPermitted(resource, action))
}

// RequireAuthenticated lets every signed-in principal with a known role through.
func RequireAuthenticated() fiber.Handler {
	return RequireRoles(auth.NewRoleSet(auth.Roles()...))
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), handler.LoginPath)
}
