// Package config loads targetsweep's optional configuration from a YAML file
// and TARGETSWEEP_* environment variables. Every setting has a default, so the
// tool runs without a file.
package config

// Default configuration values.
const (
	// AppName names the configuration directory.
	AppName = "targetsweep"

	// EnvPrefix prefixes environment overrides, e.g. TARGETSWEEP_TRASH_BACKEND.
	EnvPrefix = "TARGETSWEEP"

	// FileName is the configuration file name inside Dir().
	FileName = "config.yaml"

	DefaultLogLevel   = "info"
	DefaultMaxSize    = "10MB"
	DefaultMaxAge     = 30
	DefaultMaxBackups = 5

	// DefaultTrashBackend lets the trash package pick per platform.
	DefaultTrashBackend = "auto"
)

// defaults maps every configuration key to its default value. Keys that are
// not listed here are not read from the environment.
var defaults = map[string]interface{}{
	"logging.level":                DefaultLogLevel,
	"logging.path":                 "",
	"logging.rotation.max_size":    DefaultMaxSize,
	"logging.rotation.max_age":     DefaultMaxAge,
	"logging.rotation.max_backups": DefaultMaxBackups,
	"logging.rotation.compress":    false,
	"trash.backend":                DefaultTrashBackend,
	"trash.allow_permanent":        false,
	"trash.dry_run":                false,
	"trash.home":                   "",
}

const defaultFile = `# targetsweep configuration
#
# Every key can be overridden with an environment variable, for example
# TARGETSWEEP_TRASH_BACKEND=native or TARGETSWEEP_LOGGING_LEVEL=debug.

logging:
  # debug, info, warn or error
  level: info
  # Empty means $XDG_STATE_HOME/targetsweep/targetsweep.log
  path: ""
  rotation:
    max_size: 10MB
    max_age: 30      # days
    max_backups: 5
    compress: false

trash:
  # auto, native, gio, trash-put or finder
  backend: auto
  # Delete permanently when no trash backend works
  allow_permanent: false
  # Report what would be trashed without moving anything
  dry_run: false
  # Trash directory for the native backend; empty means $XDG_DATA_HOME/Trash
  home: ""
`
