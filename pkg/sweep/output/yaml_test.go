package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(&buf, FromScan(sampleScan(), "run-1")))

	var parsed document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))

	assert.Equal(t, "/src", parsed.Root)
	assert.Equal(t, "run-1", parsed.RunID)
	assert.Equal(t, "420ms", parsed.Duration)
	require.Len(t, parsed.Matches, 2)
	assert.Equal(t, "/src/a/target", parsed.Matches[0].Path)
	assert.Equal(t, 2, parsed.Stats.Found)
	require.Len(t, parsed.Errors, 1)
	assert.Equal(t, "permission denied", parsed.Errors[0].Error)
}

func TestYAMLFormatter_Keys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(&buf, FromScan(sampleScan(), "")))

	out := buf.String()
	assert.Contains(t, out, "root: /src\n")
	assert.Contains(t, out, "dirs_scanned: 1500")
	assert.Contains(t, out, "- path: /src/a/target\n")
	assert.NotContains(t, out, "run_id")
}
