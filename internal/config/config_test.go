package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etcPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, 8*time.Hour, cfg.Webserver.Session.ExpiryTime)
	assert.Equal(t, "redis", cfg.SessionStorage.Driver)
	assert.Equal(t, "sqlite", cfg.DB.GormEngine)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "/documentos", cfg.Backend.Endpoints["documents"])
	assert.Len(t, cfg.Backend.Endpoints, len(DefaultEndpoints))
}

func TestConfigValidation(t *testing.T) {
	valid := func() Config {
		return Config{
			Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			Backend:   Backend{BaseURL: "http://backend"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Webserver.Port = 0 }, wantErr: ErrWebServerPortCanNotBeZero},
		{name: "missing URL", mutate: func(c *Config) { c.Webserver.URL = "" }, wantErr: ErrEmptyURL},
		{name: "missing backend", mutate: func(c *Config) { c.Backend.BaseURL = "" }, wantErr: ErrEmptyBackendURL},
		{
			name:    "unknown session driver",
			mutate:  func(c *Config) { c.SessionStorage.Driver = "memcached" },
			wantErr: ErrUnknownSessionDriver,
		},
		{
			name:    "unknown gorm engine",
			mutate:  func(c *Config) { c.DB.GormEngine = "oracle" },
			wantErr: ErrUnknownGormEngine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := validate(&c)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	c := Config{
		Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
		Backend: Backend{
			BaseURL:   "http://backend",
			Endpoints: map[string]string{"users": "/usuarios"},
		},
	}

	require.NoError(t, validate(&c))

	assert.Equal(t, defaultShutDownTime, c.Webserver.ShutDownTime)
	assert.Equal(t, defaultSessionExpiry, c.Webserver.Session.ExpiryTime)
	assert.Equal(t, "session", c.Webserver.Session.CookieName)
	assert.Equal(t, "redis", c.SessionStorage.Driver)
	assert.Equal(t, "sessions", c.SessionStorage.Table)
	assert.Equal(t, "sqlite", c.DB.GormEngine)
	assert.Equal(t, defaultBackendTimeout, c.Backend.Timeout)
	assert.Equal(t, "/usuarios", c.Backend.Endpoints["users"])
	assert.Equal(t, "/analysis-data", c.Backend.Endpoints["analysisData"])
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	// untouched values survive the merge
	assert.Equal(t, "http://localhost:8080", cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(etcPath(t))
	require.Error(t, err)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	require.Error(t, err)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.Contains(t, tomlStr, "Test")
}

func TestDumpConfigJSON_MasksSecrets(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DB:      DB{Password: "db-secret"},
		Backend: Backend{BaseURL: "http://backend", APIKey: "api-secret"},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)

	assert.Contains(t, jsonStr, "Test")
	assert.False(t, strings.Contains(jsonStr, "db-secret"))
	assert.False(t, strings.Contains(jsonStr, "api-secret"))
	// the caller's config stays untouched
	assert.Equal(t, "api-secret", cfg.Backend.APIKey)
}
