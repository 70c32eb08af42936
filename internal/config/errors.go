package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownSessionDriver error if sessionStorage.driver is not redis, mysql or postgres.
	ErrUnknownSessionDriver = errors.New("toml config sessionStorage.driver must be redis, mysql or postgres")

	// ErrUnknownGormEngine error if db.gormEngine is not mysql, postgres or sqlite.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")

	// ErrEmptyBackendURL error if backend.baseURL is empty.
	ErrEmptyBackendURL = errors.New("toml config backend.baseURL can not be empty")
)
