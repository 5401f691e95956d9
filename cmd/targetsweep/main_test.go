package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/targetsweep/cmd/targetsweep/tui"
)

// isolate points configuration, state and trash at a temp home.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return home
}

func project(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "target"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\n"), 0o644))
	return filepath.Join(dir, "target")
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "scan", err: &ExitError{Code: exitScanFailed, Err: errors.New("x")}, want: 1},
		{name: "tui", err: &ExitError{Code: exitTUIFailed, Err: errors.New("x")}, want: 2},
		{name: "plain error", err: errors.New("usage"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &ExitError{Code: 2, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "inner", err.Error())
}

func TestRun_MissingRoot(t *testing.T) {
	isolate(t)
	code := run([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Equal(t, 1, code)
}

func TestRun_TooManyArgs(t *testing.T) {
	isolate(t)
	assert.Equal(t, 1, run([]string{"a", "b"}))
}

func TestRoot_NoMatches(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	stdout, stderr, err := execute(t, root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No target folders found!")
	assert.Contains(t, stderr, "Scanning "+root+"...")
}

func TestRoot_RootIsFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, _, err := execute(t, file)
	require.Error(t, err)
	assert.Equal(t, exitScanFailed, exitCode(err))
}

func TestRoot_PipedOutputListsPaths(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	a := project(t, filepath.Join(root, "a"))
	b := project(t, filepath.Join(root, "a", "sub"))

	stdout, _, err := execute(t, root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, strings.Fields(stdout))
}

func TestRoot_RunsTUIOnTerminal(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	target := project(t, filepath.Join(root, "proj"))

	var got tui.Options
	restore := stubTUI(t, func(_ context.Context, opts tui.Options) error {
		got = opts
		return nil
	})
	defer restore()

	_, _, err := execute(t, root)
	require.NoError(t, err)
	require.NotNil(t, got.Result)
	assert.Equal(t, []string{target}, got.Result.Matches)
	assert.NotNil(t, got.Deleter)
}

func TestRoot_TUIErrorExitsTwo(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	project(t, filepath.Join(root, "proj"))

	restore := stubTUI(t, func(context.Context, tui.Options) error {
		return errors.New("terminal gone")
	})
	defer restore()

	_, _, err := execute(t, root)
	require.Error(t, err)
	assert.Equal(t, exitTUIFailed, exitCode(err))
	assert.Contains(t, err.Error(), "terminal gone")
}

func TestRoot_DryRunFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("TARGETSWEEP_TRASH_DRY_RUN", "true")
	root := t.TempDir()
	target := project(t, filepath.Join(root, "proj"))

	restore := stubTUI(t, func(_ context.Context, opts tui.Options) error {
		assert.True(t, opts.DryRun)
		return opts.Deleter.Delete(target)
	})
	defer restore()

	_, _, err := execute(t, root)
	require.NoError(t, err)
	assert.DirExists(t, target)
}

func TestList_JSON(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	target := project(t, filepath.Join(root, "proj"))

	stdout, _, err := execute(t, "list", "-o", "json", root)
	require.NoError(t, err)

	var doc struct {
		Root    string `json:"root"`
		RunID   string `json:"run_id"`
		Matches []struct {
			Path string `json:"path"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, root, doc.Root)
	assert.NotEmpty(t, doc.RunID)
	require.Len(t, doc.Matches, 1)
	assert.Equal(t, target, doc.Matches[0].Path)
}

func TestList_Table(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	project(t, filepath.Join(root, "proj"))

	stdout, _, err := execute(t, "list", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "PROJECT")
	assert.Contains(t, stdout, "Found 1 target folder (")
}

func TestList_UnknownFormat(t *testing.T) {
	isolate(t)
	_, stderr, err := execute(t, "list", "-o", "xml", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.NotContains(t, stderr, "Scanning")
}

func TestVersion(t *testing.T) {
	isolate(t)
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "targetsweep dev")
}

func TestConfigCommands(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.yaml")

	stdout, _, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created default config file: "+path)
	assert.FileExists(t, path)

	stdout, _, err = execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "already exists")

	stdout, _, err = execute(t, "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", stdout)

	t.Setenv("TARGETSWEEP_TRASH_BACKEND", "native")
	stdout, _, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Config file: "+path)
	assert.Contains(t, stdout, "# Environment: TARGETSWEEP_TRASH_BACKEND=native")
	assert.Contains(t, stdout, "backend: native")
}

func TestConfig_InvalidValue(t *testing.T) {
	isolate(t)
	t.Setenv("TARGETSWEEP_TRASH_BACKEND", "shredder")

	_, _, err := execute(t, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestPrintError_NoColorWhenPiped(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
	assert.False(t, isTerminal(io.Discard))
}

// stubTUI pretends stdout is a terminal and replaces the TUI runner.
func stubTUI(t *testing.T, fn func(context.Context, tui.Options) error) func() {
	t.Helper()
	prevRun, prevTerm := runTUI, outputIsTerminal
	runTUI = fn
	outputIsTerminal = func(io.Writer) bool { return true }
	return func() {
		runTUI, outputIsTerminal = prevRun, prevTerm
	}
}
