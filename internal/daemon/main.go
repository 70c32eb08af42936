// Package daemon wires the database, the session storage and the backend
// client into the web service.
package daemon

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/adcu-admin/adcu-admin/internal/backend"
	"github.com/adcu-admin/adcu-admin/internal/config"
	"github.com/adcu-admin/adcu-admin/internal/db"
	backendsettings "github.com/adcu-admin/adcu-admin/internal/db/controller/backend"
	"github.com/adcu-admin/adcu-admin/internal/web"
	"github.com/adcu-admin/adcu-admin/internal/web/handler"
	"github.com/adcu-admin/adcu-admin/internal/web/session"
)

// ErrNilConfig is returned by New without a config.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	storage    fiber.Storage
	webService *web.Service
}

// Start starts the web service and blocks until it is shut down.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := ":" + strconv.Itoa(d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Msg("starting web service")

	err := d.webService.Start(addr)

	if cerr := d.storage.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close session storage")
	}

	return err
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	storage, err := sessionStorage(cfg)
	if err != nil {
		return nil, err
	}

	return build(cfg, gdb, storage)
}

// build assembles the web service from opened collaborators.
func build(cfg *config.Config, gdb *gorm.DB, storage fiber.Storage) (*Daemon, error) {
	settings, err := backendsettings.LoadOrSeed(gdb, cfg.Backend)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("base_url", settings.BaseURL).
		Str("session_driver", cfg.SessionStorage.Driver).
		Msg("backend settings loaded")

	svc, err := web.New(&handler.Deps{
		Cfg:      cfg,
		DB:       gdb,
		Sessions: session.NewManager(storage, cfg.Webserver.Session.ExpiryTime),
		Backend:  backend.New(settings.ClientConfig()),
	})
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		storage:    storage,
		webService: svc,
	}, nil
}
