package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halkit/halkit/config"
)

type testServerConfig struct {
	Addr    string `env:"TEST_SERVER_ADDR" envDefault:":8080"`
	Debug   bool   `env:"TEST_SERVER_DEBUG" envDefault:"false"`
	Workers int    `env:"TEST_SERVER_WORKERS" envDefault:"4"`
}

type testRequiredConfig struct {
	Token string `env:"TEST_REQUIRED_TOKEN,required"`
}

type testCachedConfig struct {
	Value string `env:"TEST_CACHED_VALUE" envDefault:"initial"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults_applied", func(t *testing.T) {
		var cfg testServerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":8080", cfg.Addr)
		assert.False(t, cfg.Debug)
		assert.Equal(t, 4, cfg.Workers)
	})

	t.Run("environment_overrides_defaults", func(t *testing.T) {
		t.Setenv("TEST_OVERRIDE_ADDR", ":9090")

		type overrideConfig struct {
			Addr string `env:"TEST_OVERRIDE_ADDR" envDefault:":8080"`
		}
		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9090", cfg.Addr)
	})

	t.Run("missing_required_fails", func(t *testing.T) {
		var cfg testRequiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TEST_REQUIRED_TOKEN")
	})

	t.Run("same_type_cached", func(t *testing.T) {
		t.Setenv("TEST_CACHED_VALUE", "first")

		var cfg1 testCachedConfig
		require.NoError(t, config.Load(&cfg1))
		assert.Equal(t, "first", cfg1.Value)

		// Environment changes after the first load are not observed.
		t.Setenv("TEST_CACHED_VALUE", "second")
		var cfg2 testCachedConfig
		require.NoError(t, config.Load(&cfg2))
		assert.Equal(t, "first", cfg2.Value)
	})

	t.Run("rejects_non_pointer", func(t *testing.T) {
		err := config.Load(testServerConfig{})
		assert.ErrorIs(t, err, config.ErrNilConfig)
	})

	t.Run("rejects_nil", func(t *testing.T) {
		var cfg *testServerConfig
		err := config.Load(cfg)
		assert.ErrorIs(t, err, config.ErrNilConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics_on_missing_required", func(t *testing.T) {
		type mustConfig struct {
			Secret string `env:"TEST_MUST_SECRET,required"`
		}
		assert.Panics(t, func() {
			var cfg mustConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("loads_valid_config", func(t *testing.T) {
		type okConfig struct {
			Name string `env:"TEST_MUST_NAME" envDefault:"halkit"`
		}
		var cfg okConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "halkit", cfg.Name)
	})
}
