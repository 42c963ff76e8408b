package config // import "github.com/Xunop/book-faker/internal/config"

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/Xunop/book-faker/internal/generator"
	"github.com/Xunop/book-faker/internal/textsource"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "BOOK_FAKER"

var Opts *Options

// v is shared with cobra so command-line flags override file and env values.
var v = newViper()

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetEnvPrefix(envPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	nv.AutomaticEnv()
	return nv
}

// Viper returns the instance the options are read from.
func Viper() *viper.Viper {
	return v
}

// GetConfig loads options from defaults, environment and an optional
// config file, in increasing priority, with flags bound on Viper() on top.
func GetConfig(file string) (*Options, error) {
	setDefaults(v, GetDefaultOptions())

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, errors.Wrapf(err, "unable to access config file %s", file)
		}
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", file)
		}
	}

	if err := v.Unmarshal(Opts); err != nil {
		return nil, errors.Wrap(err, "unable to decode options")
	}
	if err := Opts.Validate(); err != nil {
		return nil, err
	}
	return Opts, nil
}

// ParseFile reads options from file only, on top of the defaults.
func ParseFile(file string) (*Options, error) {
	if _, err := os.Stat(file); err != nil {
		return nil, errors.Wrapf(err, "unable to access config file %s", file)
	}

	fv := viper.New()
	opts := GetDefaultOptions()
	setDefaults(fv, opts)
	fv.SetConfigFile(file)
	if err := fv.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := fv.Unmarshal(opts); err != nil {
		return nil, err
	}
	return opts, opts.Validate()
}

// Validate reports the first option that can not work.
func (o *Options) Validate() error {
	if o.Port <= 0 || o.Port > 65535 {
		return errors.Errorf("port %d out of range", o.Port)
	}
	if o.WorkerPoolSize <= 0 {
		return errors.Errorf("worker_pool_size must be positive, got %d", o.WorkerPoolSize)
	}
	if o.MaxExportPages <= 0 {
		return errors.Errorf("max_export_pages must be positive, got %d", o.MaxExportPages)
	}
	if o.MaxAverage <= 0 || o.MaxAverage > generator.MaxReviewAverage {
		return errors.Errorf("max_average must be in (0, %d], got %v", generator.MaxReviewAverage, o.MaxAverage)
	}
	if o.CacheSize < 0 {
		return errors.Errorf("cache_size must not be negative, got %d", o.CacheSize)
	}
	if o.RateLimitRPS < 0 || o.RateLimitBurst < 0 {
		return errors.New("rate limit must not be negative")
	}
	locale, err := textsource.Resolve(o.DefaultLocale)
	if err != nil {
		return errors.Wrap(err, "invalid default_locale")
	}
	o.DefaultLocale = locale
	return nil
}

// Addr is the listen address of the HTTP server.
func (o *Options) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// CheckExportFormat checks if the export format is enabled
func CheckExportFormat(format string) bool {
	if Opts == nil || len(Opts.ExportFormats) == 0 {
		return false
	}

	for _, f := range Opts.ExportFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}

	return false
}

// CheckExportDir returns an absolute, existing export directory, creating
// it when missing. Falls back to ~/.book-faker/exports if the default
// location is not writable.
func CheckExportDir(exportDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(exportDir) {
		absDir, err := filepath.Abs(exportDir)
		if err != nil {
			return "", err
		}
		exportDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	exportDir = strings.TrimRight(exportDir, "\\/")
	if _, err := os.Stat(exportDir); err == nil {
		return exportDir, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrapf(err, "unable to access export folder %s", exportDir)
	}

	err := os.MkdirAll(exportDir, 0755)
	if err == nil {
		return exportDir, nil
	}
	if !errors.Is(err, os.ErrPermission) {
		return "", errors.Wrapf(err, "unable to create export folder %s", exportDir)
	}

	// Permission denied, try to create in user's home directory
	currentUser, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, "unable to get current user")
	}
	if currentUser.HomeDir == "" {
		return "", errors.New("unable to get home directory")
	}
	homeExportDir := filepath.Join(currentUser.HomeDir, ".book-faker", "exports")
	if err := os.MkdirAll(homeExportDir, 0755); err != nil {
		return "", errors.Wrapf(err, "unable to create export folder %s", homeExportDir)
	}
	return homeExportDir, nil
}
