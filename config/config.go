package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"connect4/meta"

	"github.com/rs/zerolog"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the process settings shared by all subcommands.
type Config struct {
	Addr                string        `json:"addr"`
	LogLevel            string        `json:"log_level"`
	PrettyLogs          bool          `json:"pretty_logs"`
	TableCeiling        int           `json:"table_ceiling"`
	MaintenanceInterval time.Duration `json:"maintenance_interval"`
	SessionTTL          time.Duration `json:"session_ttl"`
	DBPath              string        `json:"db_path"`
	Seed                uint64        `json:"seed"` // 0 seeds from the clock
}

func Default() Config {
	return Config{
		Addr:                ":8080",
		LogLevel:            "info",
		PrettyLogs:          true,
		TableCeiling:        meta.MAX_TABLE_SIZE,
		MaintenanceInterval: meta.MAINTENANCE_INTERVAL,
		SessionTTL:          meta.SESSION_TTL,
		DBPath:              "experiments/results.db",
	}
}

// FromEnv overlays CONNECT4_* environment variables on c. Unset variables keep
// their current value.
func (c Config) FromEnv() (Config, error) {
	return c.overlay(os.LookupEnv)
}

func (c Config) overlay(lookup func(string) (string, bool)) (Config, error) {
	var err error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	parse := func(key string, set func(string) error) {
		if v, ok := lookup(key); ok && err == nil {
			if perr := set(v); perr != nil {
				err = fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, key, v, perr)
			}
		}
	}

	str("CONNECT4_ADDR", &c.Addr)
	str("CONNECT4_LOG_LEVEL", &c.LogLevel)
	str("CONNECT4_DB_PATH", &c.DBPath)
	parse("CONNECT4_PRETTY_LOGS", func(v string) (perr error) {
		c.PrettyLogs, perr = strconv.ParseBool(v)
		return perr
	})
	parse("CONNECT4_TABLE_CEILING", func(v string) (perr error) {
		c.TableCeiling, perr = strconv.Atoi(v)
		return perr
	})
	parse("CONNECT4_MAINTENANCE_INTERVAL", func(v string) (perr error) {
		c.MaintenanceInterval, perr = time.ParseDuration(v)
		return perr
	})
	parse("CONNECT4_SESSION_TTL", func(v string) (perr error) {
		c.SessionTTL, perr = time.ParseDuration(v)
		return perr
	})
	parse("CONNECT4_SEED", func(v string) (perr error) {
		c.Seed, perr = strconv.ParseUint(v, 10, 64)
		return perr
	})
	return c, err
}

func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.TableCeiling <= 0 {
		return fmt.Errorf("%w: table ceiling must be positive, got %d", ErrInvalidConfig, c.TableCeiling)
	}
	if c.MaintenanceInterval <= 0 {
		return fmt.Errorf("%w: maintenance interval must be positive, got %s", ErrInvalidConfig, c.MaintenanceInterval)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive, got %s", ErrInvalidConfig, c.SessionTTL)
	}
	return nil
}

// Level is LogLevel as a zerolog level.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return level, nil
}
