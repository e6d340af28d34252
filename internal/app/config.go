package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the complete application configuration, loadable from
// environment variables (SHOP_ prefix), flags, or YAML config files.
type Config struct {
	Driver         string        `default:"sqlite" usage:"Storage driver: postgres or sqlite"`
	DatabaseURL    string        `usage:"PostgreSQL connection URL (SHOP_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	SQLitePath     string        `default:"shop.db" usage:"SQLite database file, :memory: for a throwaway database" flag:"sqlite-path"`
	NATSURL        string        `default:"" usage:"NATS server URL for publishing customer events; empty disables publishing" flag:"nats-url"`
	SeedFile       string        `default:"db/seed/shop.json" usage:"Seed file (JSON, or gzip JSON with a .gz suffix)" flag:"seed-file"`
	ConnectTimeout time.Duration `default:"30s" usage:"How long to retry the initial database connection" flag:"connect-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/shop/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected driver has what it needs.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database URL is required: set SHOP_DATABASE_URL or DATABASE_URL")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite path is required: set SHOP_SQLITE_PATH")
		}
	default:
		return errors.Errorf("unknown driver %q: want %q or %q", c.Driver, DriverPostgres, DriverSQLite)
	}
	return nil
}

// applyPlatformDefaults maps the platform-provided DATABASE_URL to the
// application's SHOP_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
}
