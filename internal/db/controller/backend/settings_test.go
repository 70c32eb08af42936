package backend_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adcu-admin/adcu-admin/internal/config"
	"github.com/adcu-admin/adcu-admin/internal/db/controller/backend"
	"github.com/adcu-admin/adcu-admin/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	return db
}

var testBackend = config.Backend{
	BaseURL: "http://backend/api",
	APIKey:  "0123456789",
	Timeout: 20 * time.Second,
	Endpoints: map[string]string{
		"users":        "/usuarios",
		"contracts":    "/contratos",
		"documents":    "/documentos",
		"analysisData": "/datos-analisis",
	},
}

func TestLoadOrSeed(t *testing.T) {
	db := setupTestDB(t)

	seeded, err := backend.LoadOrSeed(db, testBackend)
	require.NoError(t, err)
	assert.Equal(t, 20, seeded.TimeoutSeconds)
	assert.Equal(t, "/documentos", seeded.DocumentsPath)

	edited := seeded
	edited.BaseURL = "http://other/api"
	require.NoError(t, edited.Save(db))

	again, err := backend.LoadOrSeed(db, testBackend)
	require.NoError(t, err)
	assert.Equal(t, "http://other/api", again.BaseURL, "stored settings win over the config file")
}

func TestClientConfig(t *testing.T) {
	s := backend.FromConfig(testBackend)
	cc := s.ClientConfig()

	assert.Equal(t, testBackend.BaseURL, cc.BaseURL)
	assert.Equal(t, testBackend.APIKey, cc.APIKey)
	assert.Equal(t, 20*time.Second, cc.Timeout)
	assert.Equal(t, testBackend.Endpoints, cc.Endpoints)
}
