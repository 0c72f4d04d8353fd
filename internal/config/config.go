// Package config loads and persists tplresolve.yaml, the file that describes
// the template directory, the file extension, the registered folders and the
// resolution strategy.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/logger"
)

const (
	// FileName is the configuration file searched for in the working directory.
	FileName = "tplresolve.yaml"
	// EnvPrefix prefixes every environment override (TPLRESOLVE_STRATEGY, ...).
	EnvPrefix = "TPLRESOLVE"
	// ConfigDirEnv overrides the user configuration directory.
	ConfigDirEnv = "TPLRESOLVE_CONFIG_DIR"

	configSubdir = "tplresolve"
	logsSubdir   = "logs"
)

// Config is the tplresolve.yaml schema.
//
// Path fields hold what the file says. Relative values are resolved against
// the directory of the file they were loaded from by the *Path accessors, so
// a loaded config can be written back without baking in absolute paths.
type Config struct {
	Directory     string         `mapstructure:"directory" yaml:"directory"`
	FileExtension string         `mapstructure:"file_extension" yaml:"file_extension"`
	Strategy      string         `mapstructure:"strategy" yaml:"strategy"`
	Folders       []FolderConfig `mapstructure:"folders" yaml:"folders,omitempty"`
	Cache         CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Watch         WatchConfig    `mapstructure:"watch" yaml:"watch"`
	Logging       LoggingConfig  `mapstructure:"logging" yaml:"logging"`

	// path is the file the config was loaded from, "" for defaults.
	path string
	// baseDir anchors relative paths.
	baseDir string
}

// FolderConfig registers a folder alias.
type FolderConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	Path string `mapstructure:"path" yaml:"path"`
}

// CacheConfig controls the resolution cache.
type CacheConfig struct {
	// Synchronized guards the cache with a lock so one resolver can be shared
	// across goroutines.
	Synchronized bool `mapstructure:"synchronized" yaml:"synchronized"`
}

// WatchConfig controls the cache invalidation watcher.
type WatchConfig struct {
	// Debounce coalesces bursts of filesystem events into one invalidation.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// MarshalYAML writes the debounce as a duration string ("250ms").
func (w WatchConfig) MarshalYAML() (any, error) {
	return struct {
		Debounce string `yaml:"debounce"`
	}{Debounce: w.Debounce.String()}, nil
}

// LoggingConfig configures the optional rotated log file.
type LoggingConfig struct {
	FileEnabled *bool  `mapstructure:"file_enabled" yaml:"file_enabled"`
	LogsDir     string `mapstructure:"logs_dir" yaml:"logs_dir,omitempty"`
	MaxSizeMB   int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxAgeDays  int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	fileEnabled := false
	return &Config{
		Directory:     "templates",
		FileExtension: engine.DefaultFileExtension,
		Strategy:      "reverse-fallback",
		Watch:         WatchConfig{Debounce: 100 * time.Millisecond},
		Logging: LoggingConfig{
			FileEnabled: &fileEnabled,
			MaxSizeMB:   10,
			MaxAgeDays:  7,
			MaxBackups:  3,
		},
	}
}

// Path returns the file the configuration was loaded from, or "" when the
// defaults are in use.
func (c *Config) Path() string { return c.path }

// BaseDir returns the directory relative paths are resolved against.
func (c *Config) BaseDir() string {
	if c.baseDir != "" {
		return c.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir(), p)
}

// DirectoryPath returns the absolute default template directory, or "" when
// none is configured.
func (c *Config) DirectoryPath() string {
	return c.resolvePath(c.Directory)
}

// FolderPaths returns the configured folders with absolute paths.
func (c *Config) FolderPaths() []engine.Folder {
	folders := make([]engine.Folder, 0, len(c.Folders))
	for _, f := range c.Folders {
		folders = append(folders, engine.Folder{Name: f.Name, Path: c.resolvePath(f.Path)})
	}
	return folders
}

// AddFolder appends a folder registration. It does not validate.
func (c *Config) AddFolder(name, path string) {
	c.Folders = append(c.Folders, FolderConfig{Name: name, Path: path})
}

// LogsDir returns the directory for the rotated log file.
func (c *Config) LogsDir() string {
	if c.Logging.LogsDir != "" {
		return c.resolvePath(c.Logging.LogsDir)
	}
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, logsSubdir)
}

// LoggerConfig converts the logging section for logger.InitWithFile.
func (c *Config) LoggerConfig() *logger.LoggingConfig {
	return &logger.LoggingConfig{
		FileEnabled: c.Logging.FileEnabled,
		MaxSizeMB:   c.Logging.MaxSizeMB,
		MaxAgeDays:  c.Logging.MaxAgeDays,
		MaxBackups:  c.Logging.MaxBackups,
	}
}

// ConfigDir returns the user configuration directory. It checks
// TPLRESOLVE_CONFIG_DIR first, then defaults to <user config dir>/tplresolve.
func ConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configSubdir), nil
}
