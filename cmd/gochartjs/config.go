package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/raykavin/gochartjs/pkg/axis"
	"github.com/raykavin/gochartjs/pkg/logger"
	zlog "github.com/raykavin/gochartjs/pkg/logger/zerolog"
	"github.com/raykavin/gochartjs/pkg/storage"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

const envPrefix = "GOCHARTJS"

// AppConfig holds the CLI configuration
type AppConfig struct {
	Log        LogConfig     `mapstructure:"log"`
	TimePolicy string        `mapstructure:"time_policy"`
	Preview    PreviewConfig `mapstructure:"preview"`
	Storage    StorageConfig `mapstructure:"storage"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level   string `mapstructure:"level"`
	JSON    bool   `mapstructure:"json"`
	Colored bool   `mapstructure:"colored"`
}

// PreviewConfig holds preview server settings
type PreviewConfig struct {
	Addr   string `mapstructure:"addr"`
	Linger string `mapstructure:"linger"`
}

// StorageConfig holds document store settings
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// flagKeys maps persistent flags onto configuration keys
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"log-json":    "log.json",
	"log-colored": "log.colored",
	"time-policy": "time_policy",
	"addr":        "preview.addr",
	"linger":      "preview.linger",
	"store":       "storage.driver",
	"store-path":  "storage.path",
}

// LoadAppConfig merges defaults, an optional YAML file, GOCHARTJS_* variables
// and command line flags, in increasing priority.
func LoadAppConfig(file string, flags *pflag.FlagSet) (*AppConfig, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.colored", true)
	v.SetDefault("time_policy", axis.RFC3339.String())
	v.SetDefault("preview.addr", "127.0.0.1:8080")
	v.SetDefault("preview.linger", "")
	v.SetDefault("storage.driver", "buntdb")
	v.SetDefault("storage.path", ":memory:")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	config := &AppConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return config, nil
}

// Logger builds the zerolog logger described by the configuration.
func (c *AppConfig) Logger() (logger.Logger, error) {
	return zlog.New(zlog.Config{
		Level:   c.Log.Level,
		JSON:    c.Log.JSON,
		Colored: c.Log.Colored,
		Out:     os.Stderr,
	})
}

// Registry builds the axis registry with the configured time policy.
func (c *AppConfig) Registry(log logger.Logger) (*axis.Registry, error) {
	policy, err := axis.ParseTimePolicy(c.TimePolicy)
	if err != nil {
		return nil, err
	}
	return axis.NewRegistry(axis.WithTimePolicy(policy), axis.WithLogger(log)), nil
}

// LingerDuration parses preview.linger; zero means serve until interrupted.
func (c *AppConfig) LingerDuration() (time.Duration, error) {
	if c.Preview.Linger == "" {
		return 0, nil
	}

	linger, err := str2duration.ParseDuration(c.Preview.Linger)
	if err != nil {
		return 0, fmt.Errorf("invalid linger %q: %w", c.Preview.Linger, err)
	}
	if linger < 0 {
		return 0, fmt.Errorf("invalid linger %q: must not be negative", c.Preview.Linger)
	}
	return linger, nil
}

// OpenStore opens the configured document store.
func (c *AppConfig) OpenStore(log logger.Logger) (storage.DocumentStore, error) {
	switch strings.ToLower(c.Storage.Driver) {
	case "buntdb":
		return storage.FromFile(c.Storage.Path, storage.WithLogger(log))
	case "sqlite":
		return storage.FromSQLite(c.Storage.Path, storage.WithLogger(log))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
}
