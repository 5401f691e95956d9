// Package output renders scan results for non-interactive use
// (targetsweep list, and piped output of the root command).
//
// Formatters are looked up by name in a registry:
//
//	formatter, err := output.Get("json")
//	if err != nil {
//	    return err
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, output.FromScan(res, runID)); err != nil {
//	    return err
//	}
package output

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/jamesainslie/targetsweep/pkg/sweep/logging"
	"github.com/jamesainslie/targetsweep/pkg/sweep/types"
)

var logger = logging.Get("output")

// ErrUnknownFormat is returned by Get for unregistered names.
var ErrUnknownFormat = errors.New("unknown output format")

// Match is one artifact directory in the output.
type Match struct {
	// Path is the absolute path of the artifact directory.
	Path string `json:"path" yaml:"path"`

	// Project is the directory holding the manifest.
	Project string `json:"project" yaml:"project"`

	// Name is the base name of Project.
	Name string `json:"name" yaml:"name"`
}

// Stats summarizes the scan.
type Stats struct {
	DirsScanned int64         `json:"dirs_scanned" yaml:"dirs_scanned"`
	Found       int           `json:"found" yaml:"found"`
	Unreadable  int           `json:"unreadable" yaml:"unreadable"`
	Duration    time.Duration `json:"-" yaml:"-"`
}

// Result is everything a formatter may render.
type Result struct {
	Root    string            `json:"root" yaml:"root"`
	RunID   string            `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Matches []Match           `json:"matches" yaml:"matches"`
	Stats   Stats             `json:"stats" yaml:"stats"`
	Errors  []types.ScanError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Summary returns the one-line scan summary.
func (r *Result) Summary() string {
	return types.RunStats{
		Elapsed: r.Stats.Duration,
		Found:   r.Stats.Found,
		Dirs:    r.Stats.DirsScanned,
		Errors:  r.Stats.Unreadable,
	}.Summary()
}

// FromScan converts a scan result for formatting.
func FromScan(res *types.ScanResult, runID string) *Result {
	matches := make([]Match, len(res.Matches))
	for i, path := range res.Matches {
		project := filepath.Dir(path)
		matches[i] = Match{
			Path:    path,
			Project: project,
			Name:    filepath.Base(project),
		}
	}

	return &Result{
		Root:    res.Root,
		RunID:   runID,
		Matches: matches,
		Stats: Stats{
			DirsScanned: res.DirsScanned,
			Found:       len(res.Matches),
			Unreadable:  len(res.Errors),
			Duration:    res.Elapsed,
		},
		Errors: res.Errors,
	}
}

// Formatter renders a Result.
type Formatter interface {
	Format(w *bytes.Buffer, r *Result) error
}

// FormatterFactory creates a Formatter.
type FormatterFactory func() Formatter

// Registry maps format names to formatter factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]FormatterFactory),
	}
}

// Register adds or replaces a formatter.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return factory(), nil
}

// Available returns the registered names, sorted.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry holds the built-in formatters.
var DefaultRegistry = NewRegistry()

// Register adds a formatter to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a formatter from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns the names in the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}

// Render formats r with the named formatter.
func Render(name string, r *Result) ([]byte, error) {
	f, err := Get(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, r); err != nil {
		return nil, fmt.Errorf("formatting %s: %w", name, err)
	}
	logger.Debug("rendered output", "format", name, "matches", len(r.Matches), "bytes", buf.Len())
	return buf.Bytes(), nil
}
