package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/schmitthub/tplresolve/internal/logger"
)

func newViperConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every leaf key so environment overrides reach
// Unmarshal even when the file does not mention the key.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("directory", d.Directory)
	v.SetDefault("file_extension", d.FileExtension)
	v.SetDefault("strategy", d.Strategy)
	v.SetDefault("cache.synchronized", d.Cache.Synchronized)
	v.SetDefault("watch.debounce", d.Watch.Debounce.String())
	v.SetDefault("logging.file_enabled", *d.Logging.FileEnabled)
	v.SetDefault("logging.logs_dir", d.Logging.LogsDir)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}

func decodeHooks() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// Load reads the configuration file at path and validates it. An empty path
// searches for tplresolve.yaml in the working directory, then in ConfigDir.
// When nothing is found the defaults (plus environment overrides) are used.
func Load(path string) (*Config, error) {
	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	v := newViperConfig()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHooks()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving config path %s: %w", path, err)
		}
		cfg.path = abs
		cfg.baseDir = filepath.Dir(abs)
	}

	logger.Debug().Str("path", cfg.path).Str("strategy", cfg.Strategy).Msg("configuration loaded")

	if err := NewValidator().Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile() string {
	var candidates []string
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, FileName))
	}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, FileName))
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c
		}
	}
	return ""
}

// DefaultWritePath is where a new configuration file is created when no
// --config flag is given: tplresolve.yaml in the working directory.
func DefaultWritePath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, FileName), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir()
	}
	if !os.IsNotExist(err) {
		logger.Debug().Err(err).Str("path", path).Msg("unexpected error checking file existence")
	}
	return false
}
