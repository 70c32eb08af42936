// Package webtest holds the fixtures shared by the handler tests.
package webtest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adcu-admin/adcu-admin/internal/auth"
	"github.com/adcu-admin/adcu-admin/internal/backend"
	"github.com/adcu-admin/adcu-admin/internal/config"
	"github.com/adcu-admin/adcu-admin/internal/db/models"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	authmiddleware "github.com/adcu-admin/adcu-admin/internal/web/middleware/auth"
	"github.com/adcu-admin/adcu-admin/internal/web/session"
	"github.com/adcu-admin/adcu-admin/internal/web/session/redisstore"
)

// CookieName is the session cookie used by the fixtures.
const CookieName = "session"

// NoOpViews is a minimal fiber.Views engine. It writes the "Error" entry of the
// bound fiber.Map when present and the template name otherwise.
type NoOpViews struct{}

// Load implements fiber.Views.
func (NoOpViews) Load() error { return nil }

// Render implements fiber.Views.
func (NoOpViews) Render(w io.Writer, name string, data any, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["Error"]; exists && v != nil {
			_, _ = fmt.Fprint(w, v)
			return nil
		}
	}

	_, _ = io.WriteString(w, name)

	return nil
}

// Config returns a config good enough for the handlers.
func Config() *config.Config {
	return &config.Config{
		Title: "ADCU",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Hour, CookieName: CookieName},
		},
	}
}

// NewDeps returns handler dependencies backed by miniredis, an in-memory
// sqlite database and a backend client pointing at backendURL.
func NewDeps(t *testing.T, backendURL string) *handler.Deps {
	t.Helper()

	mr := miniredis.RunT(t)
	store := redisstore.New(redisstore.Config{Addr: mr.Addr()})
	t.Cleanup(func() { _ = store.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	return &handler.Deps{
		Cfg:      Config(),
		DB:       db,
		Sessions: session.NewManager(store, time.Hour),
		Backend: backend.New(backend.Config{
			BaseURL:   backendURL,
			Timeout:   5 * time.Second,
			Endpoints: config.DefaultEndpoints,
		}),
	}
}

// NewApp returns a fiber app with NoOpViews and the auth middleware mounted.
func NewApp(deps *handler.Deps) *fiber.App {
	app := fiber.New(fiber.Config{Views: NoOpViews{}, PassLocalsToViews: true})
	app.Use(authmiddleware.Middleware(deps.Sessions, CookieName))

	return app
}

// LoginAs stores a session for role and returns its id.
func LoginAs(t *testing.T, deps *handler.Deps, role auth.Role) string {
	t.Helper()

	sid, err := session.GenerateSessionID()
	require.NoError(t, err)

	require.NoError(t, deps.Sessions.Login(sid, auth.Principal{
		ID:       "1",
		Username: role.String(),
		Role:     role,
		Token:    "token-" + role.String(),
	}))

	return sid
}

// Do sends a request. form is sent url-encoded when not nil, sid as session cookie when not empty.
func Do(t *testing.T, app *fiber.App, method, target, sid string, form url.Values) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}

	if sid != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: sid})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

// Body reads the response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}
