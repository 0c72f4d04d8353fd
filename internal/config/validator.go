package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/logger"
	"github.com/schmitthub/tplresolve/internal/resolver"
)

// Validator validates a Config for correctness
type Validator struct {
	errors   []error
	warnings []string
}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the configuration and returns every problem found as a
// *MultiValidationError.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = nil
	v.warnings = nil

	v.validateDirectory(cfg)
	v.validateFileExtension(cfg)
	v.validateStrategy(cfg)
	v.validateFolders(cfg)
	v.validateWatch(cfg)
	v.validateLogging(cfg)

	if len(v.errors) > 0 {
		return &MultiValidationError{Errors: v.errors}
	}
	return nil
}

// Warnings returns the list of validation warnings
func (v *Validator) Warnings() []string {
	return v.warnings
}

func (v *Validator) addError(field, message string, value any) {
	v.errors = append(v.errors, &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	})
}

func (v *Validator) addWarning(field, message string) {
	v.warnings = append(v.warnings, fmt.Sprintf("%s: %s", field, message))
	logger.Warn().
		Str("field", field).
		Msg(message)
}

func (v *Validator) validateDirectory(cfg *Config) {
	if cfg.Directory == "" {
		if len(cfg.Folders) == 0 {
			v.addError("directory", "is required when no folders are registered", nil)
		}
		return
	}

	dir := cfg.DirectoryPath()
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		v.addWarning("directory", "does not exist: "+dir)
	case err == nil && !info.IsDir():
		v.addError("directory", "must be a directory", cfg.Directory)
	}
}

func (v *Validator) validateFileExtension(cfg *Config) {
	ext := strings.TrimPrefix(cfg.FileExtension, ".")
	if strings.ContainsAny(ext, `/\`) || strings.TrimSpace(ext) != ext {
		v.addError("file_extension", "must not contain path separators or spaces", cfg.FileExtension)
	}
}

func (v *Validator) validateStrategy(cfg *Config) {
	if _, err := resolver.ParseStrategy(cfg.Strategy); err != nil {
		v.addError("strategy", fmt.Sprintf("must be one of %s, %s", resolver.StrategyDirect, resolver.StrategyReverseFallback), cfg.Strategy)
	}
}

func (v *Validator) validateFolders(cfg *Config) {
	seen := make(map[string]bool, len(cfg.Folders))
	for i, f := range cfg.Folders {
		field := fmt.Sprintf("folders[%d]", i)
		if err := engine.ValidateFolderName(f.Name); err != nil {
			v.addError(field+".name", err.Error(), f.Name)
			continue
		}
		if seen[f.Name] {
			v.addError(field+".name", "is registered more than once", f.Name)
		}
		seen[f.Name] = true
		if f.Path == "" {
			v.addError(field+".path", "is required", nil)
		}
	}
}

func (v *Validator) validateWatch(cfg *Config) {
	if cfg.Watch.Debounce < 0 {
		v.addError("watch.debounce", "must not be negative", cfg.Watch.Debounce)
	}
}

func (v *Validator) validateLogging(cfg *Config) {
	if cfg.Logging.MaxSizeMB < 0 {
		v.addError("logging.max_size_mb", "must not be negative", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxAgeDays < 0 {
		v.addError("logging.max_age_days", "must not be negative", cfg.Logging.MaxAgeDays)
	}
	if cfg.Logging.MaxBackups < 0 {
		v.addError("logging.max_backups", "must not be negative", cfg.Logging.MaxBackups)
	}
}
