// Package backend is the REST client of the ADCU backend, which owns
// authentication and every business record.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/adcu-admin/adcu-admin/internal/auth"
)

const (
	// LoginPath is the backend login endpoint, relative to the base url.
	LoginPath = "/auth/login"

	defaultTimeout = 15 * time.Second
)

// Config of the client. It is built from the backend settings row.
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	Endpoints map[string]string // resource name -> path
}

// Record is a business record as the backend sends it.
type Record map[string]any

// ID returns the "id" field as text.
func (r Record) ID() string {
	switch v := r["id"].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Field returns a field as text, "" when absent.
func (r Record) Field(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}

	if n, isNum := v.(json.Number); isNum {
		return n.String()
	}

	return fmt.Sprint(v)
}

// Client talks to the backend. Its configuration can be swapped at runtime
// when an administrator edits the backend settings.
type Client struct {
	mu  sync.RWMutex
	cfg Config
}

// New returns a client for cfg.
func New(cfg Config) *Client {
	c := &Client{}
	c.Configure(cfg)

	return c
}

// Configure replaces the client configuration.
func (c *Client) Configure(cfg Config) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

// Config returns the active configuration.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cfg
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// flexID accepts numeric and string ids.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	*f = flexID(strings.Trim(string(b), `"`))
	if *f == "null" {
		*f = ""
	}

	return nil
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       flexID    `json:"id"`
		Username string    `json:"username"`
		Name     string    `json:"name"`
		Email    string    `json:"email"`
		Role     auth.Role `json:"role"`
	} `json:"user"`
}

// Login authenticates against the backend and returns the principal with its token.
func (c *Client) Login(ctx context.Context, username, password string) (auth.Principal, error) {
	var resp loginResponse

	err := c.do(ctx, fiber.MethodPost, LoginPath, "", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		var se *StatusError
		if errors.Is(err, ErrUnauthorized) || (errors.As(err, &se) && se.Code == fiber.StatusBadRequest) {
			return auth.Principal{}, ErrInvalidCredentials
		}

		return auth.Principal{}, err
	}

	return auth.Principal{
		ID:       string(resp.User.ID),
		Username: resp.User.Username,
		Name:     resp.User.Name,
		Email:    resp.User.Email,
		Role:     resp.User.Role,
		Token:    resp.Token,
	}, nil
}

// List returns every record of resource.
func (c *Client) List(ctx context.Context, token string, resource auth.Resource) ([]Record, error) {
	p, err := c.endpoint(resource)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err = c.do(ctx, fiber.MethodGet, p, token, nil, &raw); err != nil {
		return nil, err
	}

	return decodeList(raw)
}

// Count returns the number of records of resource.
func (c *Client) Count(ctx context.Context, token string, resource auth.Resource) (int, error) {
	records, err := c.List(ctx, token, resource)
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

// Get returns one record.
func (c *Client) Get(ctx context.Context, token string, resource auth.Resource, id string) (Record, error) {
	p, err := c.recordPath(resource, id)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err = c.do(ctx, fiber.MethodGet, p, token, nil, &raw); err != nil {
		return nil, err
	}

	return decodeRecord(raw)
}

// Create posts a new record and returns what the backend stored.
func (c *Client) Create(ctx context.Context, token string, resource auth.Resource, rec Record) (Record, error) {
	p, err := c.endpoint(resource)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err = c.do(ctx, fiber.MethodPost, p, token, rec, &raw); err != nil {
		return nil, err
	}

	return decodeRecord(raw)
}

// Update replaces the record id.
func (c *Client) Update(ctx context.Context, token string, resource auth.Resource, id string, rec Record) (Record, error) {
	p, err := c.recordPath(resource, id)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err = c.do(ctx, fiber.MethodPut, p, token, rec, &raw); err != nil {
		return nil, err
	}

	return decodeRecord(raw)
}

// Delete removes the record id.
func (c *Client) Delete(ctx context.Context, token string, resource auth.Resource, id string) error {
	p, err := c.recordPath(resource, id)
	if err != nil {
		return err
	}

	return c.do(ctx, fiber.MethodDelete, p, token, nil, nil)
}

func (c *Client) endpoint(resource auth.Resource) (string, error) {
	cfg := c.Config()

	p, ok := cfg.Endpoints[resource.String()]
	if !ok || p == "" {
		return "", fmt.Errorf("%w: %s", ErrNoEndpoint, resource)
	}

	return "/" + strings.Trim(p, "/"), nil
}

func (c *Client) recordPath(resource auth.Resource, id string) (string, error) {
	if id == "" {
		return "", ErrEmptyID
	}

	p, err := c.endpoint(resource)
	if err != nil {
		return "", err
	}

	return p + "/" + url.PathEscape(id), nil
}

// do sends one request. in is encoded as JSON when not nil, out is decoded
// from the response body when not nil.
func (c *Client) do(ctx context.Context, method, p, token string, in, out any) error {
	cfg := c.Config()
	if cfg.BaseURL == "" {
		return ErrNotConfigured
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(cfg.BaseURL + p)

	a.Timeout(timeout)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	if cfg.APIKey != "" {
		a.Set("X-API-Key", cfg.APIKey)
	}

	if token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	if in != nil {
		a.JSON(in)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return err
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	switch {
	case code == fiber.StatusUnauthorized:
		return ErrUnauthorized
	case code < 200 || code > 299:
		return &StatusError{Method: method, Path: p, Code: code, Body: string(body)}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	return dec.Decode(out)
}

// decodeList accepts a bare array or an envelope {"data": [...]}.
func decodeList(raw json.RawMessage) ([]Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []Record{}, nil
	}

	var records []Record
	if raw[0] != '[' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}

		if err := unmarshal(raw, &envelope); err != nil {
			return nil, err
		}

		return decodeList(envelope.Data)
	}

	if err := unmarshal(raw, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// decodeRecord accepts a bare object or an envelope {"data": {...}}.
func decodeRecord(raw json.RawMessage) (Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Record{}, nil
	}

	var rec Record
	if err := unmarshal(raw, &rec); err != nil {
		return nil, err
	}

	if data, ok := rec["data"].(map[string]any); ok && len(rec) == 1 {
		return data, nil
	}

	return rec, nil
}

func unmarshal(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	return dec.Decode(v)
}
