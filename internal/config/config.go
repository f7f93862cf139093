// Package config loads launchdeck settings.
//
// Values are resolved in this order, later sources winning:
//  1. built-in defaults (New)
//  2. the YAML config file (~/.launchdeck/config.yaml or --config)
//  3. LAUNCHDECK_* environment variables
//  4. CLI flags, applied by the caller
//
// Validate must be called after the last source is applied.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/launchdeck/internal/browse"
	"github.com/rshade/launchdeck/internal/logging"
	"github.com/rshade/launchdeck/internal/spacex"
)

const (
	appDirName     = ".launchdeck"
	configFileName = "config.yaml"
	logDirName     = "logs"
	logFileName    = "launchdeck.log"
)

// Environment variables that override the config file.
const (
	EnvAPIURL     = "LAUNCHDECK_API_URL"
	EnvAPITimeout = "LAUNCHDECK_API_TIMEOUT"
	EnvPageSize   = "LAUNCHDECK_PAGE_SIZE"
	EnvLogLevel   = "LAUNCHDECK_LOG_LEVEL"
	EnvLogFormat  = "LAUNCHDECK_LOG_FORMAT"
	EnvLogFile    = "LAUNCHDECK_LOG_FILE"
)

var (
	// ErrInvalidPageSize is returned when the page size is not positive.
	ErrInvalidPageSize = errors.New("page size must be greater than 0")
	// ErrInvalidTimeout is returned when the API timeout is not positive.
	ErrInvalidTimeout = errors.New("api timeout must be greater than 0")
	// ErrInvalidBaseURL is returned when the API base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("api base url must be an absolute http or https url")
	// ErrInvalidLogFormat is returned for a log format other than json or console.
	ErrInvalidLogFormat = errors.New("log format must be 'json' or 'console'")
)

// Config is the complete launchdeck configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Browse  BrowseConfig  `yaml:"browse"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the launch API client.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// BrowseConfig configures the list.
type BrowseConfig struct {
	PageSize int `yaml:"page_size"`
}

// LoggingConfig configures the root logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: spacex.DefaultBaseURL,
			Timeout: spacex.DefaultTimeout,
		},
		Browse: BrowseConfig{
			PageSize: browse.DefaultPageSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
			File:   DefaultLogPath(),
		},
	}
}

// Load builds a Config from defaults, the file at path and the environment.
// An empty path selects DefaultConfigPath, which may be absent. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if err := cfg.mergeFile(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeFile decodes the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides values from LAUNCHDECK_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}

	if v := getenv(EnvAPITimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvAPITimeout, err)
		}
		c.API.Timeout = d
	}

	if v := getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvPageSize, err)
		}
		c.Browse.PageSize = n
	}

	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}

	return nil
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if c.Browse.PageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Browse.PageSize)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.API.Timeout)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}

	switch c.Logging.Format {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// ToLoggingConfig converts the logging section to a logging.Config.
// A non-empty File selects file output; otherwise entries go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// AppDir returns ~/.launchdeck, or a directory under the system temp dir
// when the home directory cannot be determined.
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "launchdeck")
	}
	return filepath.Join(home, appDirName)
}

// DefaultConfigPath returns the config file location used without --config.
func DefaultConfigPath() string {
	return filepath.Join(AppDir(), configFileName)
}

// DefaultLogPath returns the log file used by interactive sessions.
func DefaultLogPath() string {
	return filepath.Join(AppDir(), logDirName, logFileName)
}
