package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the configuration file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// DefaultListenAddr is the address the HTTP service binds to when the
// configuration does not name one.
const DefaultListenAddr = ":8722"

// Config holds settings read from the TOML configuration file.
type Config struct {
	// CacheBackend selects the cache implementation: file, redis, or none.
	CacheBackend string `toml:"cache_backend"`

	// CacheDir overrides the file cache directory.
	CacheDir string `toml:"cache_dir"`

	// RedisURL is the connection URL for the redis backend.
	RedisURL string `toml:"redis_url"`

	// Listen is the address the serve command binds to.
	Listen string `toml:"listen"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		CacheBackend: CacheBackendFile,
		Listen:       DefaultListenAddr,
	}
}

// configPath returns the path to the configuration file, preferring an
// explicit --config flag over the XDG default (~/.config/grapheq/config.toml).
func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the configuration file, falling back to defaults when
// the file does not exist. A file named explicitly via --config must exist.
func (c *CLI) loadConfig() (Config, error) {
	path, err := c.resolveConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && c.configPath == "" {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	switch cfg.CacheBackend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return Config{}, fmt.Errorf("%s: unknown cache backend %q", path, cfg.CacheBackend)
	}

	return cfg, nil
}
