package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formvalidator/pkg/config"
)

type delayConfig struct {
	Delay  time.Duration `env:"TEST_FORM_DELAY" envDefault:"4s"`
	Redact []string      `env:"TEST_FORM_REDACT" envSeparator:"," envDefault:"password,confirmPassword"`
}

type singletonConfig struct {
	Value string `env:"TEST_SINGLETON_VALUE" envDefault:"default"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

type fileConfig struct {
	FromFile string `env:"TEST_FROM_FILE"`
}

func TestParse_Defaults(t *testing.T) {
	os.Unsetenv("TEST_FORM_DELAY")
	os.Unsetenv("TEST_FORM_REDACT")

	var cfg delayConfig
	require.NoError(t, config.Parse(&cfg))
	assert.Equal(t, 4*time.Second, cfg.Delay)
	assert.Equal(t, []string{"password", "confirmPassword"}, cfg.Redact)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("TEST_FORM_DELAY", "250ms")
	t.Setenv("TEST_FORM_REDACT", "password")

	var cfg delayConfig
	require.NoError(t, config.Parse(&cfg))
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.Equal(t, []string{"password"}, cfg.Redact)
}

func TestParse_InvalidValue(t *testing.T) {
	t.Setenv("TEST_FORM_DELAY", "soon")

	var cfg delayConfig
	err := config.Parse(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_CachesPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_SINGLETON_VALUE", "first")

	var first singletonConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_SINGLETON_VALUE", "second")

	var second singletonConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.ResetCache()
	var third singletonConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *singletonConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.Parse(cfg), config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_VALUE")
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("TEST_FROM_FILE")
	t.Cleanup(func() { os.Unsetenv("TEST_FROM_FILE") })

	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("TEST_FROM_FILE=loaded\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))

	var cfg fileConfig
	require.NoError(t, config.Parse(&cfg))
	assert.Equal(t, "loaded", cfg.FromFile)

	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
