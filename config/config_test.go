package config

import (
	"testing"
	"time"

	"connect4/meta"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestConfig(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		c := Default()
		require.NoError(t, c.Validate())
		require.Equal(t, meta.MAX_TABLE_SIZE, c.TableCeiling)
		require.Equal(t, meta.SESSION_TTL, c.SessionTTL)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		c, err := Default().overlay(env(map[string]string{
			"CONNECT4_ADDR":                 ":9090",
			"CONNECT4_LOG_LEVEL":            "debug",
			"CONNECT4_PRETTY_LOGS":          "false",
			"CONNECT4_TABLE_CEILING":        "500",
			"CONNECT4_MAINTENANCE_INTERVAL": "5s",
			"CONNECT4_SESSION_TTL":          "1h",
			"CONNECT4_SEED":                 "17",
		}))
		require.NoError(t, err)
		require.Equal(t, ":9090", c.Addr)
		require.False(t, c.PrettyLogs)
		require.Equal(t, 500, c.TableCeiling)
		require.Equal(t, 5*time.Second, c.MaintenanceInterval)
		require.Equal(t, time.Hour, c.SessionTTL)
		require.Equal(t, uint64(17), c.Seed)

		level, err := c.Level()
		require.NoError(t, err)
		require.Equal(t, zerolog.DebugLevel, level)
	})

	t.Run("unparsable values are rejected", func(t *testing.T) {
		_, err := Default().overlay(env(map[string]string{"CONNECT4_TABLE_CEILING": "lots"}))
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = Default().overlay(env(map[string]string{"CONNECT4_SESSION_TTL": "forever"}))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		c := Default()
		c.TableCeiling = 0
		require.ErrorIs(t, c.Validate(), ErrInvalidConfig)

		c = Default()
		c.LogLevel = "loud"
		require.ErrorIs(t, c.Validate(), ErrInvalidConfig)

		c = Default()
		c.MaintenanceInterval = -time.Second
		require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
	})
}
