package results

import (
	"errors"
	"fmt"
)

// ErrNothingSelected is returned by DeleteSelected when the cursor is none.
var ErrNothingSelected = errors.New("nothing selected")

// Deleter moves a directory out of the way, typically to the trash.
// A nil error means the path is gone.
type Deleter interface {
	Delete(path string) error
}

// DeleterFunc adapts a function to the Deleter interface.
type DeleterFunc func(path string) error

// Delete calls f(path).
func (f DeleterFunc) Delete(path string) error {
	return f(path)
}

// DeleteOutcome describes a successful DeleteSelected.
type DeleteOutcome struct {
	// Index is the position the path occupied before removal.
	Index int

	// Path is the deleted path.
	Path string
}

// DeleteFailure is a path the deleter could not handle.
type DeleteFailure struct {
	Path string
	Err  error
}

// Error implements error.
func (f DeleteFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// Unwrap returns the deleter's error.
func (f DeleteFailure) Unwrap() error {
	return f.Err
}

// BulkReport is the outcome of DeleteAll.
type BulkReport struct {
	Deleted []string
	Failed  []DeleteFailure
}

// OK reports whether every path was deleted.
func (r BulkReport) OK() bool {
	return len(r.Failed) == 0
}

// Err joins the failures into one error, or returns nil.
func (r BulkReport) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// List pairs a ResultSet with its Cursor. After every operation the
// selection is either none or a valid index into the set.
type List struct {
	set    *ResultSet
	cursor Cursor
}

// NewList creates a list over paths with the first item selected.
func NewList(paths []string) *List {
	l := &List{set: NewResultSet(paths)}
	if l.set.Len() > 0 {
		l.cursor.Select(0)
	}
	return l
}

// Len returns the number of listed paths.
func (l *List) Len() int {
	return l.set.Len()
}

// Items returns a copy of the listed paths.
func (l *List) Items() []string {
	return l.set.Items()
}

// Cursor returns the list's cursor for rendering. Callers should move the
// selection through Next and Previous.
func (l *List) Cursor() *Cursor {
	return &l.cursor
}

// Selected returns the selected index and path.
func (l *List) Selected() (int, string, bool) {
	i, ok := l.cursor.Selected()
	if !ok {
		return 0, "", false
	}
	path, ok := l.set.Get(i)
	if !ok {
		return 0, "", false
	}
	return i, path, true
}

// Next moves the selection down, wrapping.
func (l *List) Next() {
	l.cursor.Next(l.set.Len())
}

// Previous moves the selection up, wrapping.
func (l *List) Previous() {
	l.cursor.Previous(l.set.Len())
}

// DeleteSelected deletes the selected path with d. On failure the list and
// cursor are unchanged and the deleter's error is returned.
func (l *List) DeleteSelected(d Deleter) (DeleteOutcome, error) {
	i, path, ok := l.Selected()
	if !ok {
		return DeleteOutcome{}, ErrNothingSelected
	}

	if err := d.Delete(path); err != nil {
		return DeleteOutcome{}, fmt.Errorf("delete %s: %w", path, err)
	}

	if err := l.set.Remove(i); err != nil {
		return DeleteOutcome{}, err
	}
	l.cursor.Resync(l.set.Len())

	return DeleteOutcome{Index: i, Path: path}, nil
}

// DeleteAll attempts every listed path in order and never stops early.
// Deleted paths leave the list; failed paths stay listed so they can be
// retried. The selection moves to the first remaining item, or none.
func (l *List) DeleteAll(d Deleter) BulkReport {
	var report BulkReport
	failed := make(map[string]bool)

	for _, path := range l.set.Items() {
		if err := d.Delete(path); err != nil {
			report.Failed = append(report.Failed, DeleteFailure{Path: path, Err: err})
			failed[path] = true
			continue
		}
		report.Deleted = append(report.Deleted, path)
	}

	if len(failed) == 0 {
		l.set.Clear()
	} else {
		l.set.retain(func(path string) bool { return failed[path] })
	}

	l.cursor.Reset()
	if l.set.Len() > 0 {
		l.cursor.Select(0)
	}

	return report
}
