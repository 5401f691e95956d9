package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/targetsweep/pkg/sweep/trash"
)

// isolate points the XDG directories and HOME at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	for _, key := range Keys() {
		t.Setenv(EnvName(key), "")
		require.NoError(t, os.Unsetenv(EnvName(key)))
	}
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	want := Default()
	assert.Equal(t, want.Logging, cfg.Logging)
	assert.Equal(t, want.Trash, cfg.Trash)
	assert.Empty(t, cfg.File())
}

func TestLoad_DefaultFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".config", "targetsweep", "config.yaml")
	writeConfig(t, path, `
logging:
  level: debug
  rotation:
    max_size: 1MB
trash:
  backend: native
  home: ~/MyTrash
  dry_run: true
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "1MB", cfg.Logging.Rotation.MaxSize)
	assert.Equal(t, DefaultMaxBackups, cfg.Logging.Rotation.MaxBackups)
	assert.Equal(t, "native", cfg.Trash.Backend)
	assert.True(t, cfg.Trash.DryRun)

	opts, err := cfg.TrashOptions()
	require.NoError(t, err)
	assert.Equal(t, trash.BackendNative, opts.Backend)
	assert.Equal(t, filepath.Join(home, "MyTrash"), opts.Home)
	assert.True(t, opts.DryRun)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "trash:\n  allow_permanent: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Trash.AllowPermanent)
	assert.Equal(t, path, cfg.File())
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, ".config", "targetsweep", "config.yaml"), "logging: [unclosed\n")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TARGETSWEEP_TRASH_BACKEND", "trash-put")
	t.Setenv("TARGETSWEEP_LOGGING_LEVEL", "warn")
	t.Setenv("TARGETSWEEP_LOGGING_ROTATION_MAX_BACKUPS", "9")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "trash-put", cfg.Trash.Backend)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 9, cfg.Logging.Rotation.MaxBackups)

	assert.ElementsMatch(t, []string{
		"TARGETSWEEP_TRASH_BACKEND=trash-put",
		"TARGETSWEEP_LOGGING_LEVEL=warn",
		"TARGETSWEEP_LOGGING_ROTATION_MAX_BACKUPS=9",
	}, EnvOverrides())
}

func TestLoggingOptions(t *testing.T) {
	home := isolate(t)

	cfg := Default()
	cfg.Logging.Path = "~/logs/ts.log"
	cfg.Logging.Rotation.MaxSize = "2MiB"

	opts, err := cfg.LoggingOptions()
	require.NoError(t, err)
	assert.Equal(t, "info", opts.Level)
	assert.Equal(t, filepath.Join(home, "logs", "ts.log"), opts.Path)
	assert.Equal(t, int64(2*1024*1024), opts.Rotation.MaxSize)
	assert.Equal(t, DefaultMaxAge, opts.Rotation.MaxAge)
}

func TestLoggingOptions_Invalid(t *testing.T) {
	cfg := Default()
	cfg.Logging.Rotation.MaxSize = "lots"
	_, err := cfg.LoggingOptions()
	assert.ErrorContains(t, err, "max_size")

	cfg = Default()
	cfg.Logging.Level = "chatty"
	_, err = cfg.LoggingOptions()
	assert.ErrorContains(t, err, "logging.level")
}

func TestTrashOptions_InvalidBackend(t *testing.T) {
	cfg := Default()
	cfg.Trash.Backend = "shredder"

	_, err := cfg.TrashOptions()
	assert.ErrorIs(t, err, trash.ErrUnknownBackend)
	assert.Error(t, cfg.Validate())
}

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestWriteDefault(t *testing.T) {
	isolate(t)

	created, err := WriteDefault("")
	require.NoError(t, err)
	assert.True(t, created)
	assert.FileExists(t, DefaultFile())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Logging, cfg.Logging)
	assert.Equal(t, Default().Trash, cfg.Trash)

	created, err = WriteDefault("")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: home},
		{in: "~/src", want: filepath.Join(home, "src")},
		{in: "/abs/path", want: "/abs/path"},
		{in: "relative", want: "relative"},
		{in: "~other/x", want: "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "TARGETSWEEP_TRASH_ALLOW_PERMANENT", EnvName("trash.allow_permanent"))
	assert.Equal(t, "TARGETSWEEP_LOGGING_ROTATION_MAX_SIZE", EnvName("logging.rotation.max_size"))
}

func TestKeysMatchDefaults(t *testing.T) {
	assert.Len(t, Keys(), len(defaults))
	for _, key := range Keys() {
		_, ok := defaults[key]
		assert.True(t, ok, key)
	}
}
