// Package config loads settings from an optional YAML file and
// TASKDECK_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	StorageBackend string // file | redis | memory
	StorageDir     string
	RedisAddr      string

	CachePolicy  string
	CacheDB      string
	ManifestPath string

	ServeAddr   string
	ServeOrigin string

	Language string
	Theme    string
}

// Load reads the config file at path (optional; "" checks the default
// locations) and applies environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.dir", defaultDataDir())
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("cache.policy", "cache-first")
	v.SetDefault("cache.db", filepath.Join(defaultDataDir(), "cache.db"))
	v.SetDefault("cache.manifest", "")
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.origin", "http://localhost:3000")
	v.SetDefault("language", "en")
	v.SetDefault("theme", "dark")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("taskdeck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(defaultDataDir())
		// A missing default config file is fine.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return Config{
		StorageBackend: v.GetString("storage.backend"),
		StorageDir:     v.GetString("storage.dir"),
		RedisAddr:      v.GetString("redis.addr"),
		CachePolicy:    v.GetString("cache.policy"),
		CacheDB:        v.GetString("cache.db"),
		ManifestPath:   v.GetString("cache.manifest"),
		ServeAddr:      v.GetString("serve.addr"),
		ServeOrigin:    v.GetString("serve.origin"),
		Language:       v.GetString("language"),
		Theme:          v.GetString("theme"),
	}, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskdeck"
	}
	return filepath.Join(home, ".taskdeck")
}
