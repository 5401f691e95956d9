// Package types provides the data shared between the scanner, the result
// list and the user interfaces of targetsweep.
package types

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ScanResult contains the outcome of one scan.
type ScanResult struct {
	// Root is the absolute path the scan started from.
	Root string `json:"root"`

	// Matches holds the absolute path of every artifact directory found,
	// in discovery order. No path appears twice.
	Matches []string `json:"matches"`

	// DirsScanned is the number of directories that were listed.
	DirsScanned int64 `json:"dirs_scanned"`

	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration `json:"elapsed"`

	// Errors contains the directories that could not be read.
	Errors []ScanError `json:"errors,omitempty"`
}

// Stats returns the run statistics derived from the result.
func (r *ScanResult) Stats() RunStats {
	return RunStats{
		Elapsed: r.Elapsed,
		Found:   len(r.Matches),
		Dirs:    r.DirsScanned,
		Errors:  len(r.Errors),
	}
}

// ScanError represents a directory the scanner could not read.
type ScanError struct {
	// Path is the directory where the error occurred.
	Path string `json:"path"`

	// Error is the error message.
	Error string `json:"error"`
}

// ScanProgress is a snapshot of a running scan.
type ScanProgress struct {
	DirsScanned int64  `json:"dirs_scanned"`
	Matches     int64  `json:"matches"`
	CurrentPath string `json:"current_path"`
}

// RunStats is written once after the scan and only read afterwards.
type RunStats struct {
	// Elapsed is how long the scan took.
	Elapsed time.Duration

	// Found is the number of matches the scan produced.
	Found int

	// Dirs is the number of directories listed.
	Dirs int64

	// Errors is the number of unreadable directories.
	Errors int
}

// Seconds returns the elapsed scan time in fractional seconds.
func (s RunStats) Seconds() float64 {
	return s.Elapsed.Seconds()
}

// Summary returns a one-line description such as
// "Found 3 target folders (0.42s)".
func (s RunStats) Summary() string {
	noun := "folders"
	if s.Found == 1 {
		noun = "folder"
	}
	return fmt.Sprintf("Found %s target %s (%.2fs)", humanize.Comma(int64(s.Found)), noun, s.Seconds())
}

// Detail describes the walk itself: directories listed and read failures.
func (s RunStats) Detail() string {
	detail := fmt.Sprintf("%s dirs scanned", humanize.Comma(s.Dirs))
	if s.Errors > 0 {
		detail += fmt.Sprintf(", %s unreadable", humanize.Comma(int64(s.Errors)))
	}
	return detail
}
