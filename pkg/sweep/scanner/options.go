// Package scanner walks a directory tree looking for Cargo build output:
// every directory that holds both a Cargo.toml file and a target directory
// yields one match, the path of that target directory.
//
// The walk is sequential and depth-first. Hidden entries and symlinks are
// never followed, which keeps the walk inside the requested subtree and
// makes it terminate on trees with symlink cycles.
package scanner

import "github.com/jamesainslie/targetsweep/pkg/sweep/types"

// DefaultRoot is scanned when Options.Root is empty.
const DefaultRoot = "."

// Options configures the scanner behavior.
type Options struct {
	// Root is the starting directory for the scan.
	Root string

	// OnProgress is called periodically with scan progress updates.
	// It is called from the goroutine running Scan.
	OnProgress func(types.ScanProgress)
}

// DefaultOptions returns options that scan the working directory.
func DefaultOptions() Options {
	return Options{
		Root: DefaultRoot,
	}
}

// Validate applies defaults for unset fields.
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	return nil
}
