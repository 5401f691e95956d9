package output

import (
	"bytes"
	"encoding/json"
)

// document is the structure shared by the json and yaml formats.
type document struct {
	Root     string        `json:"root" yaml:"root"`
	RunID    string        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Duration string        `json:"duration" yaml:"duration"`
	Stats    Stats         `json:"stats" yaml:"stats"`
	Matches  []Match       `json:"matches" yaml:"matches"`
	Errors   []scanFailure `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type scanFailure struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

func newDocument(r *Result) document {
	matches := r.Matches
	if matches == nil {
		matches = []Match{}
	}

	var failures []scanFailure
	for _, e := range r.Errors {
		failures = append(failures, scanFailure{Path: e.Path, Error: e.Error})
	}

	return document{
		Root:     r.Root,
		RunID:    r.RunID,
		Duration: r.Stats.Duration.String(),
		Stats:    r.Stats,
		Matches:  matches,
		Errors:   failures,
	}
}

// JSONFormatter writes the result as one indented JSON document.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newDocument(r))
}

// JSONLFormatter writes one compact JSON object per match.
type JSONLFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONLFormatter) Format(w *bytes.Buffer, r *Result) error {
	encoder := json.NewEncoder(w)
	for _, m := range r.Matches {
		if err := encoder.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	Register("json", func() Formatter { return &JSONFormatter{} })
	Register("jsonl", func() Formatter { return &JSONLFormatter{} })
}

var (
	_ Formatter = (*JSONFormatter)(nil)
	_ Formatter = (*JSONLFormatter)(nil)
)
