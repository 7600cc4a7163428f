// Package config holds the connection settings shared by all CellBase clients.
package config

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default connection settings.
const (
	DefaultHost    = "https://ws.zettagenomics.com/cellbase/webservices/rest"
	DefaultVersion = "v5"
	DefaultSpecies = "hsapiens"
)

// EnvPrefix is the prefix of environment variables that override file settings
// (CELLBASE_HOST, CELLBASE_VERSION, CELLBASE_SPECIES).
const EnvPrefix = "CELLBASE"

// ErrInvalidConfig is returned when a configuration cannot be used to query CellBase.
var ErrInvalidConfig = errors.New("cellbase configuration not properly set")

// Config is the set of values every query is built from.
type Config struct {
	Host    string         `mapstructure:"host" yaml:"host" json:"host"`
	Version string         `mapstructure:"version" yaml:"version" json:"version"`
	Species string         `mapstructure:"species" yaml:"species" json:"species"`
	Options map[string]any `mapstructure:"options" yaml:"options,omitempty" json:"options,omitempty"`
}

// Default returns a fresh default configuration.
func Default() Config {
	return Config{
		Host:    DefaultHost,
		Version: DefaultVersion,
		Species: DefaultSpecies,
		Options: map[string]any{},
	}
}

// Validate reports whether c can be used to build request URLs.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host is empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.Host)
	if err != nil {
		return fmt.Errorf("%w: host %q: %v", ErrInvalidConfig, c.Host, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: host %q must use http or https", ErrInvalidConfig, c.Host)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host %q has no server name", ErrInvalidConfig, c.Host)
	}
	if c.Version == "" {
		return fmt.Errorf("%w: version is empty", ErrInvalidConfig)
	}
	if c.Species == "" {
		return fmt.Errorf("%w: species is empty", ErrInvalidConfig)
	}
	return nil
}

func (c Config) clone() Config {
	out := c
	out.Options = maps.Clone(c.Options)
	return out
}

// Client holds the configuration of one CellBase facade. It is shared by
// reference between the facade and every resource client it creates, so a
// reconfiguration is visible to all of them.
type Client struct {
	mu  sync.RWMutex
	cfg Config
}

// New creates a configuration holder. A nil cfg loads the defaults.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return &Client{cfg: Default()}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg.clone()}, nil
}

// Load reads a YAML or JSON configuration file. Keys missing from the file
// keep their default values; CELLBASE_* environment variables win over both.
func Load(path string) (*Client, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := decode(v)

	// viper folds keys to lower case; CellBase query parameters are case
	// sensitive (skipCount), so options are read from the file directly.
	opts, err := ReadOptions(path)
	if err != nil {
		return nil, err
	}
	cfg.Options = opts

	return New(&cfg)
}

// FromMap builds a configuration from a plain mapping such as
// {"host": "...", "species": "mmusculus", "options": {"limit": 10}}.
func FromMap(m map[string]any) (*Client, error) {
	v := newViper()
	rest := make(map[string]any, len(m))
	var (
		rawOpts any
		hasOpts bool
	)
	for k, val := range m {
		if strings.EqualFold(k, "options") {
			rawOpts, hasOpts = val, true
			continue
		}
		rest[k] = val
	}
	if err := v.MergeConfigMap(rest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := decode(v)
	if hasOpts {
		opts, ok := rawOpts.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: options must be a mapping, got %T", ErrInvalidConfig, rawOpts)
		}
		cfg.Options = opts
	}

	return New(&cfg)
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("host", d.Host)
	v.SetDefault("version", d.Version)
	v.SetDefault("species", d.Species)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) Config {
	return Config{
		Host:    v.GetString("host"),
		Version: v.GetString("version"),
		Species: v.GetString("species"),
	}
}

// ReadOptions returns the options mapping of a YAML or JSON config file
// with the case of its keys preserved.
func ReadOptions(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var doc struct {
		Options map[string]any `yaml:"options"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse options in %s: %v", ErrInvalidConfig, path, err)
	}
	return doc.Options, nil
}

// Configuration returns a copy of the current settings.
func (c *Client) Configuration() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.clone()
}

// DefaultConfiguration returns the default settings regardless of the current state.
func (c *Client) DefaultConfiguration() Config {
	return Default()
}

// Host returns the base URL of the REST service.
func (c *Client) Host() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Host
}

// Version returns the API version, e.g. "v5".
func (c *Client) Version() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Version
}

// Species returns the target species, e.g. "hsapiens".
func (c *Client) Species() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Species
}

// Options returns a copy of the default query options.
func (c *Client) Options() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.cfg.Options)
}

// Reset restores the default settings.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = Default()
}

// SetHost changes the base URL of the REST service.
func (c *Client) SetHost(host string) error {
	return c.update(func(cfg *Config) { cfg.Host = host })
}

// SetVersion changes the API version.
func (c *Client) SetVersion(version string) error {
	return c.update(func(cfg *Config) { cfg.Version = version })
}

// SetSpecies changes the target species.
func (c *Client) SetSpecies(species string) error {
	return c.update(func(cfg *Config) { cfg.Species = species })
}

// SetOption sets a default query option sent with every request.
func (c *Client) SetOption(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg.Options == nil {
		c.cfg.Options = map[string]any{}
	}
	c.cfg.Options[key] = value
}

func (c *Client) update(fn func(*Config)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.cfg.clone()
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	c.cfg = next
	return nil
}

// YAML renders the current settings as YAML.
func (c *Client) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c.Configuration())
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return out, nil
}
