package web

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adcu-admin/adcu-admin/internal/auth"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	"github.com/adcu-admin/adcu-admin/internal/web/webtest"
)

func newTestService(t *testing.T) (*Service, *handler.Deps) {
	t.Helper()

	deps := webtest.NewDeps(t, "http://127.0.0.1:1")

	svc, err := New(deps)
	require.NoError(t, err)

	return svc, deps
}

func TestNew_NilDeps(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, handler.ErrNilDeps)

	_, err = New(&handler.Deps{Cfg: webtest.Config()})
	require.ErrorIs(t, err, handler.ErrNilDeps)
}

func TestCheckAlive(t *testing.T) {
	svc, _ := newTestService(t)

	resp := webtest.Do(t, svc.App, fiber.MethodGet, CheckAlivePath, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", webtest.Body(t, resp))

	svc.alive.Store(false)

	resp = webtest.Do(t, svc.App, fiber.MethodGet, CheckAlivePath, "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRootRedirect(t *testing.T) {
	svc, deps := newTestService(t)

	resp := webtest.Do(t, svc.App, fiber.MethodGet, "/", "", nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, handler.DashboardPath, resp.Header.Get(fiber.HeaderLocation))

	// the dashboard itself sends anonymous visitors to the login page
	resp = webtest.Do(t, svc.App, fiber.MethodGet, handler.DashboardPath, "", nil)
	assert.Equal(t, handler.LoginPath, resp.Header.Get(fiber.HeaderLocation))

	resp = webtest.Do(t, svc.App, fiber.MethodGet, handler.LoginPath, webtest.LoginAs(t, deps, auth.RoleStaff), nil)
	assert.Equal(t, handler.DashboardPath, resp.Header.Get(fiber.HeaderLocation))
}

func TestLoginPage(t *testing.T) {
	svc, _ := newTestService(t)

	resp := webtest.Do(t, svc.App, fiber.MethodGet, handler.LoginPath, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	body := webtest.Body(t, resp)
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "Ingresar")
}

func TestStatic(t *testing.T) {
	svc, _ := newTestService(t)

	resp := webtest.Do(t, svc.App, fiber.MethodGet, "/static/css/app.css", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, webtest.Body(t, resp), ".sidebar")
}

func TestMenuFollowsPermissions(t *testing.T) {
	svc, deps := newTestService(t)

	tests := []struct {
		role    auth.Role
		present []string
		absent  []string
	}{
		{
			role:    auth.RoleAdmin,
			present: []string{`href="/users"`, `href="/contracts"`, `href="/documents"`, `href="/analysis-data"`, `href="/admin/settings/backend"`},
		},
		{
			role:    auth.RoleStaff,
			present: []string{`href="/users"`, `href="/contracts"`, `href="/documents"`, `href="/analysis-data"`},
			absent:  []string{`href="/admin/settings/backend"`},
		},
		{
			role:    auth.RoleContractor,
			present: []string{`href="/documents"`},
			absent:  []string{`href="/users"`, `href="/contracts"`, `href="/analysis-data"`, `href="/admin/settings/backend"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			resp := webtest.Do(t, svc.App, fiber.MethodGet, handler.UnauthorizedPath, webtest.LoginAs(t, deps, tt.role), nil)
			require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

			body := webtest.Body(t, resp)
			assert.Contains(t, body, "<strong>"+tt.role.String()+"</strong>")

			for _, s := range tt.present {
				assert.Contains(t, body, s)
			}

			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestGuardedRoutes(t *testing.T) {
	svc, deps := newTestService(t)
	contractor := webtest.LoginAs(t, deps, auth.RoleContractor)

	resp := webtest.Do(t, svc.App, fiber.MethodGet, "/contracts/", contractor, nil)
	assert.Equal(t, handler.UnauthorizedPath, resp.Header.Get(fiber.HeaderLocation))

	resp = webtest.Do(t, svc.App, fiber.MethodGet, "/admin/settings/backend", contractor, nil)
	assert.Equal(t, handler.UnauthorizedPath, resp.Header.Get(fiber.HeaderLocation))

	resp = webtest.Do(t, svc.App, fiber.MethodGet, "/documents/new", contractor, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, webtest.Body(t, resp), `name="contractId"`)

	resp = webtest.Do(t, svc.App, fiber.MethodGet, MetricsPath, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, webtest.Body(t, resp), `adcu_guard_decisions_total{decision="redirect_unauthorized"}`)
}

func TestAdmits(t *testing.T) {
	admin := auth.NewSession(auth.Principal{ID: "1", Role: auth.RoleAdmin})

	assert.True(t, admits(admin, "admin"))
	assert.True(t, admits(admin, "staff", "administrador"))
	assert.False(t, admits(admin, "staff"))
	assert.False(t, admits(admin))
	assert.False(t, admits(auth.Anonymous(), "admin"))
}
