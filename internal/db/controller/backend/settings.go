// Package backend persists the connection settings of the ADCU REST backend.
package backend

import (
	"errors"
	"time"

	"gorm.io/gorm"

	client "github.com/adcu-admin/adcu-admin/internal/backend"
	"github.com/adcu-admin/adcu-admin/internal/config"
	"github.com/adcu-admin/adcu-admin/internal/db/controller/setting"
)

const (
	// SettingKeyBackend is the settings row holding the backend connection.
	SettingKeyBackend = "backend"
)

// Settings is the editable backend connection. Paths are relative to BaseURL.
type Settings struct {
	BaseURL          string `form:"base_url"           json:"baseUrl"          validate:"required,url"`
	APIKey           string `form:"api_key"            json:"apiKey"           validate:"omitempty,min=8"`
	TimeoutSeconds   int    `form:"timeout_seconds"    json:"timeoutSeconds"   validate:"required,min=1,max=300"`
	UsersPath        string `form:"users_path"         json:"usersPath"        validate:"required,startswith=/"`
	ContractsPath    string `form:"contracts_path"     json:"contractsPath"    validate:"required,startswith=/"`
	DocumentsPath    string `form:"documents_path"     json:"documentsPath"    validate:"required,startswith=/"`
	AnalysisDataPath string `form:"analysis_data_path" json:"analysisDataPath" validate:"required,startswith=/"`
}

// FromConfig builds the settings seeded from the config file.
func FromConfig(cfg config.Backend) Settings {
	return Settings{
		BaseURL:          cfg.BaseURL,
		APIKey:           cfg.APIKey,
		TimeoutSeconds:   int(cfg.Timeout / time.Second),
		UsersPath:        cfg.Endpoints["users"],
		ContractsPath:    cfg.Endpoints["contracts"],
		DocumentsPath:    cfg.Endpoints["documents"],
		AnalysisDataPath: cfg.Endpoints["analysisData"],
	}
}

// ClientConfig converts the settings for backend.Client.
func (s *Settings) ClientConfig() client.Config {
	return client.Config{
		BaseURL: s.BaseURL,
		APIKey:  s.APIKey,
		Timeout: time.Duration(s.TimeoutSeconds) * time.Second,
		Endpoints: map[string]string{
			"users":        s.UsersPath,
			"contracts":    s.ContractsPath,
			"documents":    s.DocumentsPath,
			"analysisData": s.AnalysisDataPath,
		},
	}
}

// Load loads the settings from the database.
func (s *Settings) Load(db *gorm.DB) error {
	return setting.LoadJSON(db, SettingKeyBackend, s)
}

// Save stores the settings.
func (s *Settings) Save(db *gorm.DB) error {
	return setting.SaveJSON(db, SettingKeyBackend, s)
}

// LoadOrSeed loads the stored settings. On first start the row is created from cfg.
func LoadOrSeed(db *gorm.DB, cfg config.Backend) (Settings, error) {
	var s Settings

	err := s.Load(db)
	if errors.Is(err, setting.ErrSettingNotFound) {
		s = FromConfig(cfg)
		err = s.Save(db)
	}

	return s, err
}
