// Package config loads typed configuration structs from the environment.
//
// Struct fields are bound with caarlos0/env tags. A .env file in the working
// directory is loaded once, before the first parse, and never overrides
// variables already set in the process environment.
//
//	type FormConfig struct {
//	    SuccessDelay time.Duration `env:"FORM_SUCCESS_DELAY" envDefault:"4s"`
//	}
//
//	var cfg FormConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)

	defaultEnvLoaded sync.Once
)

// Load parses the environment into v. Each struct type is parsed once per
// process; later calls copy the cached value.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDefaultEnv()

	key := reflect.TypeFor[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[key] = parsed
	*v = parsed
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse parses the environment into v without touching the cache.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDefaultEnv()

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadEnv loads variables from the given .env files. Existing process
// variables win.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cache)
}

func loadDefaultEnv() {
	defaultEnvLoaded.Do(func() {
		// A missing .env file is fine.
		_ = godotenv.Load()
	})
}
