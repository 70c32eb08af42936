package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"

	"github.com/adcu-admin/adcu-admin/internal/config"
	"github.com/adcu-admin/adcu-admin/internal/db/dsn"
	"github.com/adcu-admin/adcu-admin/internal/web/session/redisstore"
)

// ErrUnknownSessionDriver is returned for a session storage driver other than redis, mysql or postgres.
var ErrUnknownSessionDriver = errors.New("unknown session storage driver")

const redisPingTimeout = 5 * time.Second

// sessionStorage opens the storage named by cfg.SessionStorage.Driver.
func sessionStorage(cfg *config.Config) (fiber.Storage, error) {
	switch cfg.SessionStorage.Driver {
	case "redis", "":
		store := redisstore.New(redisstore.Config{
			Addr:     cfg.SessionStorage.Redis.Addr,
			Password: cfg.SessionStorage.Redis.Password,
			DB:       cfg.SessionStorage.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis session storage: %w", err)
		}

		return store, nil
	case "mysql":
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         cfg.SessionStorage.Table,
		}), nil
	case "postgres":
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         cfg.SessionStorage.Table,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSessionDriver, cfg.SessionStorage.Driver)
	}
}
