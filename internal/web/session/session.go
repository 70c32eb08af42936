// Package session keeps the signed-in principal in a fiber.Storage backend,
// keyed by the session cookie value.
package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/adcu-admin/adcu-admin/internal/auth"
	"github.com/adcu-admin/adcu-admin/internal/uniuri"
)

var (
	// ErrEmptySessionID is returned when Login or Logout get an empty session id.
	ErrEmptySessionID = errors.New("session id can not be empty")

	// ErrInvalidPrincipal is returned when Login gets a principal without id or role.
	ErrInvalidPrincipal = errors.New("principal needs an id and a known role")
)

// Data is what gets persisted per session id.
type Data struct {
	User auth.Principal `json:"user"`
}

// Manager reads and writes session data. It is the only component touching
// the storage collaborator.
type Manager struct {
	storage fiber.Storage
	expiry  time.Duration
	now     func() time.Time
}

// NewManager returns a Manager persisting sessions for expiry. It panics on a nil storage.
func NewManager(storage fiber.Storage, expiry time.Duration) *Manager {
	if storage == nil {
		panic("storage is nil")
	}

	return &Manager{
		storage: storage,
		expiry:  expiry,
		now:     time.Now,
	}
}

// Expiry is the lifetime of a stored session.
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// Login stores p under sessionID.
func (m *Manager) Login(sessionID string, p auth.Principal) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	if p.ID == "" || !p.Role.Valid() {
		return ErrInvalidPrincipal
	}

	out, err := json.Marshal(Data{User: p})
	if err != nil {
		return err
	}

	return m.storage.Set(sessionID, out, m.expiry)
}

// Logout removes the data stored under sessionID.
func (m *Manager) Logout(sessionID string) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	return m.storage.Delete(sessionID)
}

// Load returns the session stored under sessionID. Missing, unreadable or
// expired data yields the anonymous session; it never fails.
func (m *Manager) Load(sessionID string) auth.Session {
	if sessionID == "" {
		return auth.Anonymous()
	}

	raw, err := m.storage.Get(sessionID)
	if err != nil {
		log.Error().Err(err).Msg("failed to read session")
		return auth.Anonymous()
	}

	if len(raw) == 0 {
		return auth.Anonymous()
	}

	var data Data
	if err = json.Unmarshal(raw, &data); err != nil {
		// the payload may hold a token, only the error is logged
		log.Warn().Err(err).Int("bytes", len(raw)).Msg("corrupt session data, treating as signed out")
		return auth.Anonymous()
	}

	if data.User.ID == "" {
		log.Warn().Msg("session data without principal id, treating as signed out")
		return auth.Anonymous()
	}

	if m.tokenExpired(data.User.Token) {
		log.Info().Str("user_id", data.User.ID).Msg("session token expired")

		if err = m.storage.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete expired session")
		}

		return auth.Anonymous()
	}

	return auth.NewSession(data.User)
}

// CurrentRole is Load(sessionID).Role, RoleNone when signed out.
func (m *Manager) CurrentRole(sessionID string) auth.Role {
	s := m.Load(sessionID)
	if !s.Authenticated {
		return auth.RoleNone
	}

	return s.Role
}

// tokenExpired looks at the exp claim of a JWT bearer token. The signature
// is the backend's business; opaque tokens never expire here.
func (m *Manager) tokenExpired(token string) bool {
	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return !m.now().Before(exp.Time)
}

// GenerateSessionID returns a new random session id.
func GenerateSessionID() (string, error) {
	return uniuri.Generate(uniuri.SessionLen, uniuri.StdChars)
}
