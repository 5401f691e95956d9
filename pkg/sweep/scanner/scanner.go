package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jamesainslie/targetsweep/pkg/sweep/logging"
	"github.com/jamesainslie/targetsweep/pkg/sweep/marker"
	"github.com/jamesainslie/targetsweep/pkg/sweep/types"
)

// progressInterval throttles OnProgress callbacks.
const progressInterval = 50 * time.Millisecond

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

var logger = logging.Get("scanner")

// Scanner finds artifact directories below a root. A Scanner is single-use
// and not safe for concurrent use.
type Scanner struct {
	opts Options

	// root is the resolved absolute path being scanned.
	root string

	matches     []string
	errors      []types.ScanError
	dirsScanned int64

	// lastProgress tracks when we last reported progress.
	lastProgress time.Time
}

// New creates a new Scanner with the given options.
func New(opts Options) *Scanner {
	_ = opts.Validate()

	return &Scanner{
		opts:    opts,
		matches: make([]string, 0),
		errors:  make([]types.ScanError, 0),
	}
}

// Scan walks the tree and returns the matches in discovery order.
//
// Unreadable directories below the root are recorded in ScanResult.Errors and
// do not stop the walk. An error is returned only when the root itself cannot
// be resolved or read, or when ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context) (*types.ScanResult, error) {
	startTime := time.Now()

	root, err := s.validateRoot()
	if err != nil {
		return nil, err
	}
	s.root = root

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", root, err)
	}

	logger.Debug("scan started", "root", root)
	s.reportProgress(root, true)

	if err := s.visit(ctx, root, entries); err != nil {
		return nil, err
	}

	s.reportProgress(root, true)

	result := &types.ScanResult{
		Root:        root,
		Matches:     s.matches,
		DirsScanned: s.dirsScanned,
		Elapsed:     time.Since(startTime),
		Errors:      s.errors,
	}
	logger.Info("scan finished",
		"root", root,
		"matches", len(result.Matches),
		"dirs", result.DirsScanned,
		"errors", len(result.Errors),
		"elapsed", result.Elapsed)

	return result, nil
}

// validateRoot resolves the root path to absolute and verifies it is a directory.
func (s *Scanner) validateRoot() (string, error) {
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", s.opts.Root, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	return root, nil
}

// walk lists dir and visits it. Read failures are recorded, not returned.
func (s *Scanner) walk(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.addError(dir, err)
		// ReadDir may return the entries read before the failure.
		if len(entries) == 0 {
			return nil
		}
	}

	return s.visit(ctx, dir, entries)
}

// visit checks one listed directory for the marker, then descends into its
// subdirectories using the same listing.
func (s *Scanner) visit(ctx context.Context, dir string, entries []fs.DirEntry) error {
	s.dirsScanned++
	s.reportProgress(dir, false)

	var found marker.Match
	subdirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		class := marker.Classify(entry.Name(), entry.Type())
		if class.Skipped() {
			continue
		}
		found.Observe(class)
		if entry.IsDir() {
			subdirs = append(subdirs, entry.Name())
		}
	}

	if found.Complete() {
		match := filepath.Join(dir, marker.ArtifactDirName)
		s.matches = append(s.matches, match)
		logger.Debug("found target", "path", match)
	}

	for _, name := range subdirs {
		if err := s.walk(ctx, filepath.Join(dir, name)); err != nil {
			return err
		}
	}

	return nil
}

// addError records an unreadable directory.
func (s *Scanner) addError(path string, err error) {
	logger.Warn("cannot scan", "path", path, "err", err)
	s.errors = append(s.errors, types.ScanError{
		Path:  path,
		Error: err.Error(),
	})
}

// reportProgress calls the progress callback if configured, at most once
// per progressInterval unless force is set.
func (s *Scanner) reportProgress(current string, force bool) {
	if s.opts.OnProgress == nil {
		return
	}

	now := time.Now()
	if !force && now.Sub(s.lastProgress) < progressInterval {
		return
	}
	s.lastProgress = now

	s.opts.OnProgress(types.ScanProgress{
		DirsScanned: s.dirsScanned,
		Matches:     int64(len(s.matches)),
		CurrentPath: current,
	})
}
