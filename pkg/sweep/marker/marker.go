// Package marker decides which directory entries take part in a scan and
// which of them form the Cargo project marker: a Cargo.toml file next to a
// target directory.
package marker

import (
	"io/fs"
	"strings"
)

const (
	// HiddenPrefix marks entries that are never scanned.
	HiddenPrefix = "."

	// ManifestName is the project manifest file.
	ManifestName = "Cargo.toml"

	// ArtifactDirName is the generated output directory.
	ArtifactDirName = "target"
)

// Class is the classification of a single directory entry.
type Class int

const (
	// Plain is an ordinary entry with no marker meaning.
	Plain Class = iota
	// SkipHidden is an entry whose name starts with HiddenPrefix.
	SkipHidden
	// SkipSymlink is a symbolic link, whatever it points at.
	SkipSymlink
	// ArtifactDir is a real directory named ArtifactDirName.
	ArtifactDir
	// ManifestFile is a regular file named ManifestName.
	ManifestFile
)

// String returns the class name used in logs.
func (c Class) String() string {
	switch c {
	case Plain:
		return "plain"
	case SkipHidden:
		return "skip-hidden"
	case SkipSymlink:
		return "skip-symlink"
	case ArtifactDir:
		return "artifact-dir"
	case ManifestFile:
		return "manifest-file"
	default:
		return "unknown"
	}
}

// Skipped reports whether entries of this class are excluded from the scan.
func (c Class) Skipped() bool {
	return c == SkipHidden || c == SkipSymlink
}

// Traversable reports whether a directory of this class may be descended into.
// The caller still has to check that the entry is a directory.
func (c Class) Traversable() bool {
	return !c.Skipped()
}

// Classify classifies an entry by name and mode. The mode must come from an
// lstat-style source (fs.DirEntry.Type or os.Lstat) so that symlinks are seen
// as symlinks rather than as their targets.
func Classify(name string, mode fs.FileMode) Class {
	if strings.HasPrefix(name, HiddenPrefix) {
		return SkipHidden
	}
	if mode&fs.ModeSymlink != 0 {
		return SkipSymlink
	}
	switch {
	case name == ArtifactDirName && mode.IsDir():
		return ArtifactDir
	case name == ManifestName && mode.IsRegular():
		return ManifestFile
	}
	return Plain
}

// Match tracks the marker pieces seen while listing one directory.
type Match struct {
	Artifact bool
	Manifest bool
}

// Observe records a classified entry.
func (m *Match) Observe(c Class) {
	switch c {
	case ArtifactDir:
		m.Artifact = true
	case ManifestFile:
		m.Manifest = true
	}
}

// Complete reports whether both marker pieces were seen.
func (m Match) Complete() bool {
	return m.Artifact && m.Manifest
}
