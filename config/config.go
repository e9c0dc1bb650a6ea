// Package config provides type-safe environment variable loading with
// caching. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct
// fields:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil or non-pointer target.
var ErrNilConfig = errors.New("config: target must be a non-nil struct pointer")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> parsed config value
)

// Load parses environment variables into the given struct pointer.
// Each struct type is parsed only once per process; subsequent calls
// for the same type receive the cached value. A .env file in the
// working directory is loaded on first use if present.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		// Missing .env is the normal production case.
		_ = godotenv.Load()
	})

	typ := v.Elem().Type()
	if cached, ok := cache.Load(typ); ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", typ, err)
	}

	cached, _ := cache.LoadOrStore(typ, v.Elem().Interface())
	v.Elem().Set(reflect.ValueOf(cached))
	return nil
}

// MustLoad is like Load but panics on failure. Intended for application
// startup where a missing required variable should halt the process.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
