package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// SSHConfig is the configuration for the SSH server.
type SSHConfig struct {
	// ListenAddr is the address on which the SSH server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// PublicURL is the public URL of the SSH server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// KeyPath is the path to the SSH server's private key.
	KeyPath string `env:"KEY_PATH" yaml:"key_path"`

	// MaxTimeout is the maximum number of seconds a connection can take.
	MaxTimeout int `env:"MAX_TIMEOUT" yaml:"max_timeout"`

	// IdleTimeout is the number of seconds a connection can be idle before it is closed.
	IdleTimeout int `env:"IDLE_TIMEOUT" yaml:"idle_timeout"`

	// AuthorizedKeys restricts access to these public keys. Anyone can
	// connect when it is empty.
	AuthorizedKeys []string `env:"AUTHORIZED_KEYS" envSeparator:"\n" yaml:"authorized_keys"`
}

// HTTPConfig is the configuration for the HTTP API server.
type HTTPConfig struct {
	// Enabled toggles the HTTP API server.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// CacheConfig is the configuration of the dataset cache.
type CacheConfig struct {
	// Backend is the cache backend, "lru" or "noop".
	Backend string `env:"BACKEND" yaml:"backend"`

	// Size is the maximum number of cached datasets.
	Size int `env:"SIZE" yaml:"size"`

	// TTL expires cached datasets. Zero keeps them until evicted.
	TTL time.Duration `env:"TTL" yaml:"ttl"`
}

// DatasetConfig describes where organizations come from.
type DatasetConfig struct {
	// Source is either "mock" to generate organizations in memory, or "db" to
	// read them from the database.
	Source string `env:"SOURCE" yaml:"source"`

	// Organizations is the number of generated organizations.
	Organizations int `env:"ORGANIZATIONS" yaml:"organizations"`

	// Users is the maximum number of users generated per organization.
	Users int `env:"USERS" yaml:"users"`

	// Seed makes generated datasets reproducible. Zero picks a random seed.
	Seed int64 `env:"SEED" yaml:"seed"`

	// Delay is a simulated latency added to every load.
	Delay time.Duration `env:"DELAY" yaml:"delay"`

	// Refresh is a cron spec to drop the cached dataset. Empty disables it.
	Refresh string `env:"REFRESH" yaml:"refresh"`
}

// ListConfig is the layout of the organizations and users lists, in
// terminal lines.
type ListConfig struct {
	OrganizationRowHeight int `env:"ORGANIZATION_ROW_HEIGHT" yaml:"organization_row_height"`
	OrganizationOverscan  int `env:"ORGANIZATION_OVERSCAN" yaml:"organization_overscan"`
	UserRowHeight         int `env:"USER_ROW_HEIGHT" yaml:"user_row_height"`
	UserOverscan          int `env:"USER_OVERSCAN" yaml:"user_overscan"`
}

// Config is the configuration for Soft Orgs.
type Config struct {
	// Name is the name of the server.
	Name string `env:"NAME" yaml:"name"`

	// SSH is the configuration for the SSH server.
	SSH SSHConfig `envPrefix:"SSH_" yaml:"ssh"`

	// HTTP is the configuration for the HTTP API server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Cache is the dataset cache configuration.
	Cache CacheConfig `envPrefix:"CACHE_" yaml:"cache"`

	// Dataset is the dataset configuration.
	Dataset DatasetConfig `envPrefix:"DATASET_" yaml:"dataset"`

	// List is the list layout configuration.
	List ListConfig `envPrefix:"LIST_" yaml:"list"`

	// DataPath is the path to the directory where Soft Orgs will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`

	// path overrides the location of the config file.
	path string
}

var (
	// ErrUnknownSource is returned when the dataset source is not supported.
	ErrUnknownSource = errors.New("unknown dataset source")

	// ErrInvalidDataset is returned when dataset sizes are negative.
	ErrInvalidDataset = errors.New("invalid dataset size")

	// ErrInvalidList is returned when a list row height or overscan is out
	// of range.
	ErrInvalidList = errors.New("invalid list layout")
)

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("SOFT_ORGS_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("SOFT_ORGS_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the config file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	authorizedKeys := append([]string{}, cfg.SSH.AuthorizedKeys...)

	// Override with environment variables
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "SOFT_ORGS_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	// Merge authorized keys from the file and the environment.
	if keys := os.Getenv("SOFT_ORGS_SSH_AUTHORIZED_KEYS"); keys != "" {
		cfg.SSH.AuthorizedKeys = append(cfg.SSH.AuthorizedKeys, authorizedKeys...)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the config file, when it exists, and the
// environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if c.Exist() {
		if err := c.ParseFile(); err != nil {
			return err
		}
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the config file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the SOFT_ORGS_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("SOFT_ORGS_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// SetPath overrides the location of the config file.
func (c *Config) SetPath(path string) {
	c.path = path
}

// ConfigPath returns the path to the config file. In order of precedence:
// the path set with SetPath, SOFT_ORGS_CONFIG_LOCATION when that file
// exists, and config.yaml in the data directory.
func (c *Config) ConfigPath() string { // nolint:revive
	if c.path != "" {
		return c.path
	}
	if path := os.Getenv("SOFT_ORGS_CONFIG_LOCATION"); path != "" && exist(path) {
		return path
	}
	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Soft Orgs",
		DataPath: DefaultDataPath(),
		SSH: SSHConfig{
			ListenAddr:  ":23241",
			PublicURL:   "ssh://localhost:23241",
			KeyPath:     filepath.Join("ssh", "soft_orgs_host_ed25519"),
			MaxTimeout:  0,
			IdleTimeout: 10 * 60, // 10 minutes
		},
		HTTP: HTTPConfig{
			Enabled:    true,
			ListenAddr: "localhost:23242",
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:23243",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "soft-orgs.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		Cache: CacheConfig{
			Backend: "lru",
			Size:    4,
		},
		Dataset: DatasetConfig{
			Source:        "mock",
			Organizations: 1000,
			Users:         1000,
			Delay:         time.Second,
			Refresh:       "@every 10m",
		},
		List: ListConfig{
			OrganizationRowHeight: 1,
			OrganizationOverscan:  20,
			UserRowHeight:         2,
			UserOverscan:          10,
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.SSH.PublicURL = strings.TrimSuffix(c.SSH.PublicURL, "/")

	if c.SSH.KeyPath != "" && !filepath.IsAbs(c.SSH.KeyPath) {
		c.SSH.KeyPath = filepath.Join(c.DataPath, c.SSH.KeyPath)
	}

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	switch c.Dataset.Source {
	case "mock", "db":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Dataset.Source)
	}

	if c.Dataset.Organizations < 0 || c.Dataset.Users < 0 || c.Dataset.Delay < 0 {
		return ErrInvalidDataset
	}

	if c.Dataset.Refresh != "" {
		if _, err := cron.ParseStandard(c.Dataset.Refresh); err != nil {
			return fmt.Errorf("dataset refresh: %w", err)
		}
	}

	if c.List.OrganizationRowHeight < 1 || c.List.UserRowHeight < 1 ||
		c.List.OrganizationOverscan < 0 || c.List.UserOverscan < 0 {
		return ErrInvalidList
	}

	// Validate keys
	pks := make([]string, 0)
	for _, key := range parseAuthKeys(c.SSH.AuthorizedKeys) {
		pks = append(pks, marshalAuthorizedKey(key))
	}

	c.SSH.AuthorizedKeys = pks

	return nil
}
