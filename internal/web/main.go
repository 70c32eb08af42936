// Package web is the server-rendered front-end: the fiber app, its middleware
// chain and the page handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/secure"

	"github.com/adcu-admin/adcu-admin/internal/auth"
	fiberlogger "github.com/adcu-admin/adcu-admin/internal/logger/adapter/fiber"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	backendsettings "github.com/adcu-admin/adcu-admin/internal/web/handler/admin/settings/backend"
	"github.com/adcu-admin/adcu-admin/internal/web/handler/dashboard"
	"github.com/adcu-admin/adcu-admin/internal/web/handler/login"
	"github.com/adcu-admin/adcu-admin/internal/web/handler/logout"
	"github.com/adcu-admin/adcu-admin/internal/web/handler/resource"
	"github.com/adcu-admin/adcu-admin/internal/web/handler/unauthorized"
	authmiddleware "github.com/adcu-admin/adcu-admin/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	deps         *handler.Deps
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.deps.Cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.deps.Cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers 200 while the service accepts traffic and 503 during shutdown.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// admits reports whether the route guard lets s into a page open to the named roles.
func admits(s auth.Session, names ...string) bool {
	roles := make([]auth.Role, 0, len(names))

	for _, name := range names {
		if r, ok := auth.ParseRole(name); ok {
			roles = append(roles, r)
		}
	}

	return auth.Guard(s, auth.NewRoleSet(roles...)) == auth.Allow
}

func newTemplateEngine(devMode bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), ".gohtml")

	// in dev mode, use local filesystem for templates
	if devMode {
		engine = html.New("./internal/web/templates", ".gohtml")
		engine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("admits", admits)

	return engine
}

func securityHeaders(devMode bool) fiber.Handler {
	return adaptor.HTTPMiddleware(secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         devMode,
	}).Handler)
}

// New creates the web service and registers every page.
func New(deps *handler.Deps) (*Service, error) {
	if !deps.Valid() {
		return nil, handler.ErrNilDeps
	}

	cfg := deps.Cfg

	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           cfg.Title,
			CaseSensitive:     true,
			Prefork:           false,
			Immutable:         true,
			Views:             newTemplateEngine(cfg.DevMode),
			PassLocalsToViews: true,
		},
	)

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:            cfg.Log,
		CacheControlError: fiberlogger.ConfigDefault.CacheControlError,
		SkipURIs:          []string{CheckAlivePath},
		LocalsFields:      []string{handler.LocalsRole},
	}))
	app.Use(securityHeaders(cfg.DevMode))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	service := &Service{
		App:  app,
		deps: deps,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// session is loaded once per request, the route guards read it from locals
	app.Use(authmiddleware.Middleware(deps.Sessions, deps.CookieName()))

	services := []handler.Service{
		&login.Handler,
		&logout.Handler,
		&unauthorized.Handler,
		&dashboard.Handler,
		&backendsettings.Handler,
	}

	for _, def := range resource.Definitions() {
		services = append(services, resource.New(def))
	}

	for _, svc := range services {
		if err := svc.Init(app, deps); err != nil {
			return nil, err
		}
	}

	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(handler.DashboardPath)
	})

	return service, nil
}
