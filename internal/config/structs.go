package config

import (
	"time"

	"github.com/adcu-admin/adcu-admin/internal/logger"
)

// Session settings of the login cookie.
type Session struct {
	ExpiryTime time.Duration
	CookieName string
}

// Config overall data structure.
type Config struct {
	DevMode        bool // enable dev mode for development
	DB             DB
	Log            logger.Log
	Title          string
	Webserver      Webserver
	SessionStorage SessionStorage
	Backend        Backend
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	LoginRateLimit int     // login attempts per minute and IP, 0 disables the limiter
	Session        Session // session settings
}

// SessionStorage selects where session data is kept.
type SessionStorage struct {
	Driver string // redis, mysql or postgres
	Table  string // table name for the sql drivers
	Redis  Redis
}

// Redis connection settings.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Backend holds the defaults of the ADCU REST backend. The values are seeded
// into the settings table on first start and edited from the admin area afterwards.
type Backend struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	Endpoints map[string]string // resource name -> path, e.g. "documents" -> "/documentos"
}
