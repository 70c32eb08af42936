// Package redisstore implements fiber.Storage on top of go-redis.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Config of the redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Storage is a redis backed fiber.Storage.
type Storage struct {
	db redis.UniversalClient
}

var _ fiber.Storage = (*Storage)(nil)

// New connects to redis as configured.
func New(cfg Config) *Storage {
	return NewFromClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))
}

// NewFromClient wraps an existing client.
func NewFromClient(client redis.UniversalClient) *Storage {
	return &Storage{db: client}
}

// Ping checks the connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx).Err()
}

// Get returns nil, nil for missing keys.
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	val, err := s.db.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	return val, err
}

// Set stores val for exp, zero means no expiry.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	return s.db.Set(context.Background(), key, val, exp).Err()
}

// Delete removes key.
func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}

	return s.db.Del(context.Background(), key).Err()
}

// Reset flushes the selected database.
func (s *Storage) Reset() error {
	return s.db.FlushDB(context.Background()).Err()
}

// Close closes the client.
func (s *Storage) Close() error {
	return s.db.Close()
}
