package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/jamesainslie/targetsweep/pkg/sweep/logging"
	"github.com/jamesainslie/targetsweep/pkg/sweep/trash"
)

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size" yaml:"max_size"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level    string         `mapstructure:"level" yaml:"level"`
	Path     string         `mapstructure:"path" yaml:"path"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

// TrashConfig configures where deleted directories go.
type TrashConfig struct {
	Backend        string `mapstructure:"backend" yaml:"backend"`
	AllowPermanent bool   `mapstructure:"allow_permanent" yaml:"allow_permanent"`
	DryRun         bool   `mapstructure:"dry_run" yaml:"dry_run"`
	Home           string `mapstructure:"home" yaml:"home"`
}

// Config represents the application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Trash   TrashConfig   `mapstructure:"trash" yaml:"trash"`

	// file is the configuration file that was read, if any.
	file string
}

// Load reads configuration from file, or from Dir()/config.yaml when file is
// empty, and applies TARGETSWEEP_* environment overrides. A missing default
// file is not an error; a missing explicit file is.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		expanded, err := ExpandPath(file)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.file = v.ConfigFileUsed()

	return &cfg, nil
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
			Rotation: RotationConfig{
				MaxSize:    DefaultMaxSize,
				MaxAge:     DefaultMaxAge,
				MaxBackups: DefaultMaxBackups,
			},
		},
		Trash: TrashConfig{
			Backend: DefaultTrashBackend,
		},
	}
}

// File returns the configuration file that was read, or "" when running on
// defaults.
func (c *Config) File() string {
	return c.file
}

// LoggingOptions converts the logging section for logging.Init.
func (c *Config) LoggingOptions() (logging.Config, error) {
	out := logging.DefaultConfig()

	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			return out, fmt.Errorf("logging.level: %w", err)
		}
		out.Level = c.Logging.Level
	}

	if c.Logging.Path != "" {
		path, err := ExpandPath(c.Logging.Path)
		if err != nil {
			return out, fmt.Errorf("logging.path: %w", err)
		}
		out.Path = path
	}

	rot := c.Logging.Rotation
	if rot.MaxSize != "" {
		size, err := humanize.ParseBytes(rot.MaxSize)
		if err != nil {
			return out, fmt.Errorf("logging.rotation.max_size: %w", err)
		}
		out.Rotation.MaxSize = int64(size)
	}
	out.Rotation.MaxAge = rot.MaxAge
	out.Rotation.MaxBackups = rot.MaxBackups
	out.Rotation.Compress = rot.Compress

	return out, nil
}

// TrashOptions converts the trash section for trash.New.
func (c *Config) TrashOptions() (trash.Options, error) {
	out := trash.DefaultOptions()

	backend, err := trash.ParseBackend(c.Trash.Backend)
	if err != nil {
		return out, fmt.Errorf("trash.backend: %w", err)
	}
	out.Backend = backend

	if c.Trash.Home != "" {
		home, err := ExpandPath(c.Trash.Home)
		if err != nil {
			return out, fmt.Errorf("trash.home: %w", err)
		}
		out.Home = home
	}

	out.AllowPermanent = c.Trash.AllowPermanent
	out.DryRun = c.Trash.DryRun

	return out, nil
}

// Validate checks values that are parsed later.
func (c *Config) Validate() error {
	_, lerr := c.LoggingOptions()
	_, terr := c.TrashOptions()
	return errors.Join(lerr, terr)
}

// Dir returns $XDG_CONFIG_HOME/targetsweep.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultFile returns the path Load reads when no file is given.
func DefaultFile() string {
	return filepath.Join(Dir(), FileName)
}

// WriteDefault writes a commented default configuration to path unless a
// file already exists there. It reports whether a file was created.
func WriteDefault(path string) (bool, error) {
	if path == "" {
		path = DefaultFile()
	}

	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultFile), 0o644); err != nil {
		return false, fmt.Errorf("failed to write default config: %w", err)
	}

	return true, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// EnvOverrides returns the TARGETSWEEP_* variables that are set, as
// NAME=value strings.
func EnvOverrides() []string {
	var out []string
	for _, key := range Keys() {
		name := EnvName(key)
		if val, ok := os.LookupEnv(name); ok {
			out = append(out, name+"="+val)
		}
	}
	return out
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// Keys returns every configuration key in a stable order.
func Keys() []string {
	return []string{
		"logging.level",
		"logging.path",
		"logging.rotation.max_size",
		"logging.rotation.max_age",
		"logging.rotation.max_backups",
		"logging.rotation.compress",
		"trash.backend",
		"trash.allow_permanent",
		"trash.dry_run",
		"trash.home",
	}
}
