package trash

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	filesDirName = "files"
	infoDirName  = "info"
	infoSuffix   = ".trashinfo"
	lockFileName = ".targetsweep.lock"

	// deletionDateLayout is the trashinfo DeletionDate format, local time.
	deletionDateLayout = "2006-01-02T15:04:05"

	maxNameAttempts = 10000
)

// nativeTrash implements the freedesktop.org trash specification for a
// single trash directory.
type nativeTrash struct {
	home string
	now  func() time.Time
}

func newNativeTrash(home string) *nativeTrash {
	return &nativeTrash{home: home, now: time.Now}
}

func (n *nativeTrash) filesDir() string { return filepath.Join(n.home, filesDirName) }
func (n *nativeTrash) infoDir() string  { return filepath.Join(n.home, infoDirName) }

// put moves path into the trash and records where it came from.
func (n *nativeTrash) put(path string) error {
	for _, dir := range []string{n.filesDir(), n.infoDir()} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create trash directory: %w", err)
		}
	}

	lock := flock.New(filepath.Join(n.home, lockFileName))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock trash: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	name, infoPath, err := n.reserve(filepath.Base(path), path)
	if err != nil {
		return err
	}

	dest := filepath.Join(n.filesDir(), name)
	if err := os.Rename(path, dest); err != nil {
		_ = os.Remove(infoPath)
		if isCrossDevice(err) {
			return fmt.Errorf("cannot move %q to %s: %w", path, n.home, ErrCrossDevice)
		}
		return fmt.Errorf("failed to move %q to trash: %w", path, err)
	}

	return nil
}

// reserve picks a free name in the trash and claims it by creating the
// info file exclusively. Collisions get ".2", ".3", ... suffixes.
func (n *nativeTrash) reserve(base, original string) (string, string, error) {
	content := n.info(original)

	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		name := base
		if attempt > 1 {
			name = fmt.Sprintf("%s.%d", base, attempt)
		}

		if _, err := os.Lstat(filepath.Join(n.filesDir(), name)); err == nil {
			continue
		}

		infoPath := filepath.Join(n.infoDir(), name+infoSuffix)
		f, err := os.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("failed to create trash info: %w", err)
		}

		_, werr := f.WriteString(content)
		cerr := f.Close()
		if err := errors.Join(werr, cerr); err != nil {
			_ = os.Remove(infoPath)
			return "", "", fmt.Errorf("failed to write trash info: %w", err)
		}

		return name, infoPath, nil
	}

	return "", "", fmt.Errorf("no free trash name for %q after %d attempts", base, maxNameAttempts)
}

// info renders the .trashinfo content for original.
func (n *nativeTrash) info(original string) string {
	escaped := (&url.URL{Path: original}).EscapedPath()
	return fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escaped, n.now().Format(deletionDateLayout))
}
