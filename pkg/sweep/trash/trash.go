// Package trash moves directories to the platform trash so a sweep can be
// undone from the desktop's trash can.
//
// On Linux the gio and trash-put commands are tried first, then a built-in
// implementation of the freedesktop.org trash specification. On macOS the
// Finder is asked to delete the path. Permanent removal happens only when
// Options.AllowPermanent is set and every trash backend failed.
package trash

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/jamesainslie/targetsweep/pkg/sweep/logging"
)

// commandTimeout is the maximum time to wait for trash commands.
const commandTimeout = 30 * time.Second

var (
	// ErrNoBackend is returned when no trash backend accepted the path.
	ErrNoBackend = errors.New("no trash backend available")

	// ErrCrossDevice is returned when the trash lives on another filesystem
	// than the path, so it cannot be moved there by rename.
	ErrCrossDevice = errors.New("trash is on a different device")

	// ErrUnknownBackend is returned by ParseBackend.
	ErrUnknownBackend = errors.New("unknown trash backend")
)

var logger = logging.Get("trash")

// Backend names a trash implementation.
type Backend string

// Supported backends.
const (
	BackendAuto     Backend = "auto"
	BackendNative   Backend = "native"
	BackendGio      Backend = "gio"
	BackendTrashPut Backend = "trash-put"
	BackendFinder   Backend = "finder"
)

// Backends lists every accepted backend name.
func Backends() []Backend {
	return []Backend{BackendAuto, BackendNative, BackendGio, BackendTrashPut, BackendFinder}
}

// ParseBackend converts a configuration value to a Backend.
// The empty string selects BackendAuto.
func ParseBackend(s string) (Backend, error) {
	if s == "" {
		return BackendAuto, nil
	}
	for _, b := range Backends() {
		if strings.EqualFold(s, string(b)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// Options configures a Trasher.
type Options struct {
	// Home is the freedesktop trash directory used by the native backend.
	// Empty uses DefaultHome().
	Home string

	// Backend selects the implementation. Empty means BackendAuto.
	Backend Backend

	// AllowPermanent permits os.RemoveAll when every backend failed.
	AllowPermanent bool

	// DryRun reports success without touching the filesystem.
	DryRun bool
}

// DefaultHome returns $XDG_DATA_HOME/Trash.
func DefaultHome() string {
	return filepath.Join(xdg.DataHome, "Trash")
}

// DefaultOptions returns options for the platform trash.
func DefaultOptions() Options {
	return Options{
		Home:    DefaultHome(),
		Backend: BackendAuto,
	}
}

// Trasher moves paths to the trash. It satisfies results.Deleter.
type Trasher struct {
	opts   Options
	native *nativeTrash

	goos     string
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// New creates a Trasher with the given options.
func New(opts Options) *Trasher {
	if opts.Home == "" {
		opts.Home = DefaultHome()
	}
	if opts.Backend == "" {
		opts.Backend = BackendAuto
	}

	return &Trasher{
		opts:     opts,
		native:   newNativeTrash(opts.Home),
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// Options returns the options in effect.
func (t *Trasher) Options() Options {
	return t.opts
}

// MoveToTrash moves path to the platform trash using DefaultOptions.
func MoveToTrash(path string) error {
	return New(DefaultOptions()).Delete(path)
}

// Delete moves path to the trash. The path is either fully moved or left in
// place.
func (t *Trasher) Delete(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path for %q: %w", path, err)
	}

	if _, err := os.Lstat(absPath); err != nil {
		return fmt.Errorf("cannot trash %q: %w", absPath, err)
	}

	if t.opts.DryRun {
		logger.Info("dry run, not trashing", "path", absPath)
		return nil
	}

	chain := t.chain()
	errs := make([]error, 0, len(chain))
	for _, backend := range chain {
		err := t.put(backend, absPath)
		if err == nil {
			logger.Info("moved to trash", "path", absPath, "backend", backend)
			return nil
		}
		logger.Debug("trash backend failed", "path", absPath, "backend", backend, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", backend, err))
	}

	if t.opts.AllowPermanent {
		logger.Warn("no trash backend succeeded, deleting permanently", "path", absPath)
		return permanentDelete(absPath)
	}

	return fmt.Errorf("cannot trash %q: %w: %w", absPath, ErrNoBackend, errors.Join(errs...))
}

// chain returns the backends to try, in order.
func (t *Trasher) chain() []Backend {
	if t.opts.Backend != BackendAuto {
		return []Backend{t.opts.Backend}
	}

	switch t.goos {
	case "darwin":
		return []Backend{BackendFinder}
	case "windows", "plan9", "js", "wasip1":
		return nil
	default:
		return []Backend{BackendGio, BackendTrashPut, BackendNative}
	}
}

// put hands path to a single backend.
func (t *Trasher) put(backend Backend, path string) error {
	switch backend {
	case BackendNative:
		return t.native.put(path)
	case BackendGio:
		return t.command("gio", "trash", path)
	case BackendTrashPut:
		return t.command("trash-put", path)
	case BackendFinder:
		// Finder integration keeps "Put Back" working.
		script := fmt.Sprintf(`tell application "Finder" to delete POSIX file %q`, path)
		return t.command("osascript", "-e", script)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// command runs an external trash tool found on PATH.
func (t *Trasher) command(name string, args ...string) error {
	bin, err := t.lookPath(name)
	if err != nil {
		return fmt.Errorf("%s not found: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	return t.run(ctx, bin, args...)
}

// runCommand executes name and includes its output in the error.
func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return err
		}
		return fmt.Errorf("%w: %s", err, msg)
	}
	return nil
}

// permanentDelete removes a file or directory for good.
func permanentDelete(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete %q: %w", path, err)
	}
	return nil
}
