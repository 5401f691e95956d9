package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

// TableFormatter writes an aligned PROJECT/TARGET table followed by the
// scan summary.
type TableFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *TableFormatter) Format(w *bytes.Buffer, r *Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "PROJECT\tTARGET"); err != nil {
		return err
	}
	for _, m := range r.Matches {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", m.Name, m.Path); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", r.Summary())
	for _, e := range r.Errors {
		fmt.Fprintf(w, "cannot scan %s: %s\n", e.Path, e.Error)
	}
	return nil
}

func init() {
	Register("table", func() Formatter { return &TableFormatter{} })
}

var _ Formatter = (*TableFormatter)(nil)
