package main

import (
	"github.com/dmitrymomot/formvalidator/modules/signup"
	"github.com/dmitrymomot/formvalidator/pkg/httpserver"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"formvalidator"`
	LogLevel string `env:"LOG_LEVEL"`

	// TrustedHeaders name the proxy headers read for the client address.
	TrustedHeaders []string `env:"HTTP_TRUSTED_HEADERS" envSeparator:","`

	HTTP   httpserver.Config
	Signup signup.Config
}
