package output

import "bytes"

// PlainFormatter writes one artifact path per line, for piping into other
// tools.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Result) error {
	for _, m := range r.Matches {
		w.WriteString(m.Path)
		w.WriteByte('\n')
	}
	return nil
}

// NullFormatter writes NUL-terminated paths for xargs -0.
type NullFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *NullFormatter) Format(w *bytes.Buffer, r *Result) error {
	for _, m := range r.Matches {
		w.WriteString(m.Path)
		w.WriteByte(0)
	}
	return nil
}

func init() {
	Register("plain", func() Formatter { return &PlainFormatter{} })
	Register("null", func() Formatter { return &NullFormatter{} })
}

var (
	_ Formatter = (*PlainFormatter)(nil)
	_ Formatter = (*NullFormatter)(nil)
)
