// Package config loads asset pipeline settings from a YAML file: where the
// asset tree lives, the hot-reload debounce window, watcher filtering and the
// optional raw-bytes cache in front of the filesystem.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/modfox/assetcache/bytecache"
	bigcacheprov "github.com/modfox/assetcache/bytecache/bigcache"
	ristrettoprov "github.com/modfox/assetcache/bytecache/ristretto"
	"github.com/modfox/assetcache/source"
)

// Duration is a time.Duration that unmarshals from YAML strings like "150ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the file-level configuration.
type Config struct {
	// RootDir is the asset tree root. Required.
	RootDir string `yaml:"root_dir"`

	// DebounceInterval is the reload worker's coalescing window.
	// Default: 100ms.
	DebounceInterval Duration `yaml:"debounce_interval"`

	// Extensions limits watching to the given file extensions.
	// Default: watch everything.
	Extensions []string `yaml:"extensions"`

	// SkipHidden drops dot-files from watching. Default: true.
	SkipHidden *bool `yaml:"skip_hidden"`

	// ByteCache optionally fronts the filesystem with a raw-bytes cache.
	ByteCache ByteCacheConfig `yaml:"byte_cache"`
}

// ByteCacheConfig selects and sizes the raw-bytes cache.
type ByteCacheConfig struct {
	// Backend is "", "ristretto" or "bigcache". Empty disables byte caching.
	Backend string `yaml:"backend"`

	// MaxBytes caps resident cached bytes where the backend supports it.
	MaxBytes int64 `yaml:"max_bytes"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	return Parse(data)
}

// Parse is Load for in-memory bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = Duration(100 * time.Millisecond)
	}
	if cfg.SkipHidden == nil {
		t := true
		cfg.SkipHidden = &t
	}
}

func validate(cfg *Config) error {
	if cfg.RootDir == "" {
		return fmt.Errorf("root_dir is required")
	}
	switch cfg.ByteCache.Backend {
	case "", "ristretto", "bigcache":
	default:
		return fmt.Errorf("unknown byte_cache backend %q", cfg.ByteCache.Backend)
	}
	return nil
}

// BuildSource constructs the configured source chain: a directory source,
// wrapped in source.Cached when a byte cache backend is selected.
func (cfg *Config) BuildSource() (source.Source, error) {
	dir := source.NewDir(cfg.RootDir)

	var provider bytecache.Provider
	var err error
	switch cfg.ByteCache.Backend {
	case "":
		return dir, nil
	case "ristretto":
		provider, err = ristrettoprov.New(ristrettoprov.Config{MaxBytes: cfg.ByteCache.MaxBytes})
	case "bigcache":
		mb := int(cfg.ByteCache.MaxBytes >> 20)
		provider, err = bigcacheprov.New(bigcacheprov.Config{HardMaxCacheSizeMB: mb})
	default:
		return nil, fmt.Errorf("unknown byte_cache backend %q", cfg.ByteCache.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("build byte cache: %w", err)
	}
	return source.NewCached(dir, provider), nil
}
