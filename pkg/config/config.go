// Package config loads textvary settings.
//
// Settings come from three layers, later layers winning:
//
//  1. [Default] values
//  2. a TOML file, by default $XDG_CONFIG_HOME/textvary/config.toml
//  3. TEXTVARY_* environment variables
//
// CLI flags are applied on top by the caller.
//
// # File format
//
//	[levels]
//	letter = 20
//	word = 20
//	emoji = 40
//	typo = 15
//	caps = 10
//	punct = 30
//
//	[generate]
//	count = 5
//	format = "text"
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "168h"
//
//	[store]
//	backend = "file"   # file, mongo or memory
//
//	[server]
//	addr = ":8080"
//	cors_origins = ["http://localhost:3000"]
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/textvary/pkg/errors"
	textio "github.com/matzehuels/textvary/pkg/io"
	"github.com/matzehuels/textvary/pkg/variation"
)

// Backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	StoreFile   = "file"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config is the complete textvary configuration.
type Config struct {
	Levels   variation.Intensities `toml:"levels"`
	Generate GenerateConfig        `toml:"generate"`
	Cache    CacheConfig           `toml:"cache"`
	Store    StoreConfig           `toml:"store"`
	Server   ServerConfig          `toml:"server"`
}

// GenerateConfig holds generation defaults.
type GenerateConfig struct {
	Count  int    `toml:"count"`
	Seed   uint64 `toml:"seed,omitempty"` // 0 draws a fresh seed per run
	Format string `toml:"format"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir,omitempty"` // file backend; default under the user cache dir
	TTL     Duration    `toml:"ttl"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// StoreConfig selects and configures the run store.
type StoreConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir,omitempty"` // file backend; default under the user data dir
	Mongo   MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	CORSOrigins     []string `toml:"cors_origins"`
	BodyLimit       int64    `toml:"body_limit"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration written as a string such as "30s" in TOML.
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Levels: variation.DefaultIntensities(),
		Generate: GenerateConfig{
			Count:  variation.DefaultCount,
			Format: textio.FormatText,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{7 * 24 * time.Hour},
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "textvary:",
			},
		},
		Store: StoreConfig{
			Backend: StoreFile,
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "textvary",
				Collection: "runs",
			},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
			BodyLimit:       1 << 20,
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/textvary/config.toml, falling back
// to ~/.config/textvary/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "textvary", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "textvary", "config.toml"), nil
}

// Load reads the configuration.
//
// With an empty path the default file is used if it exists. An explicit path
// must exist. Environment overrides are applied after the file, then the
// result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// no config file: defaults
	case os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode merges TOML data into cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "config file already exists: %s", path)
		}
	}
	data, err := Encode(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges and backend names.
func (c Config) Validate() error {
	if c.Levels != c.Levels.Clamp() {
		return errors.New(errors.ErrCodeInvalidConfig, "levels must be between 0 and 100")
	}
	if c.Generate.Count < variation.MinCount || c.Generate.Count > variation.MaxCount {
		return errors.New(errors.ErrCodeInvalidConfig, "generate.count must be between %d and %d", variation.MinCount, variation.MaxCount)
	}
	if err := textio.ValidateFormat(c.Generate.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "generate.format")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of: file, redis, none (got %q)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreFile, StoreMongo, StoreMemory:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend must be one of: file, mongo, memory (got %q)", c.Store.Backend)
	}
	if c.Server.BodyLimit <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.body_limit must be positive")
	}
	return nil
}
