// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// EnvConfigJSON overrides parts of the TOML config with a JSON document.
	EnvConfigJSON = "ADCU_ADMIN_CONFIG_JSON"

	defaultShutDownTime   = 5
	defaultSessionExpiry  = 8 * time.Hour
	defaultCookieName     = "session"
	defaultBackendTimeout = 15 * time.Second
	defaultSessionTable   = "sessions"
)

// DefaultEndpoints are the backend paths per resource when the config names none.
var DefaultEndpoints = map[string]string{ //nolint:gochecknoglobals
	"users":        "/users",
	"contracts":    "/contracts",
	"documents":    "/documents",
	"analysisData": "/analysis-data",
}

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	if err = validate(&c); err != nil {
		return c, err
	}

	return c, nil
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String. Secrets are masked.
func DumpConfigJSON(c *Config) (string, error) {
	masked := *c
	masked.DB.Password = mask(masked.DB.Password)
	masked.Backend.APIKey = mask(masked.Backend.APIKey)
	masked.SessionStorage.Redis.Password = mask(masked.SessionStorage.Redis.Password)

	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(masked); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}

	return "********"
}

// validate checks the settings the daemon can not start without and fills defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Backend.BaseURL == "" {
		return errors.Wrap(ErrEmptyBackendURL, invalidErrMessage)
	}

	switch c.SessionStorage.Driver {
	case "", "redis", "mysql", "postgres":
	default:
		return errors.Wrap(ErrUnknownSessionDriver, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case "", "mysql", "postgres", "sqlite":
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	applyDefaults(c)

	return nil
}

func applyDefaults(c *Config) {
	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Webserver.Session.CookieName == "" {
		c.Webserver.Session.CookieName = defaultCookieName
	}

	if c.SessionStorage.Driver == "" {
		c.SessionStorage.Driver = "redis"
	}

	if c.SessionStorage.Table == "" {
		c.SessionStorage.Table = defaultSessionTable
	}

	if c.DB.GormEngine == "" {
		c.DB.GormEngine = "sqlite"
	}

	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = defaultBackendTimeout
	}

	if c.Backend.Endpoints == nil {
		c.Backend.Endpoints = make(map[string]string, len(DefaultEndpoints))
	}

	for name, p := range DefaultEndpoints {
		if c.Backend.Endpoints[name] == "" {
			c.Backend.Endpoints[name] = p
		}
	}
}
